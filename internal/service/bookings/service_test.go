package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PetSittingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PetSittingService/pkg/logger"
	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	err        error
	lastFilter domain.BookingsFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", bookingRepo.ErrBookingNotFound, id)
	}
	return b, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Booking
	for _, b := range f.bookings {
		if filter.Status == nil || b.Status == *filter.Status {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeRepo) CancelConfirmed(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != domain.StatusConfirmed {
		return false, nil
	}
	b.Status = domain.StatusCancelled
	return true, nil
}

type fakeNotifier struct{ cancelled []int64 }

func (f *fakeNotifier) BookingCancelled(_ context.Context, id int64) {
	f.cancelled = append(f.cancelled, id)
}

func newTestService() (*Service, *fakeRepo, *fakeNotifier) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:              1,
			Status:          domain.StatusConfirmed,
			TotalPriceCents: 10000,
			Customer:        &domain.Customer{ID: 3, Email: "jane@example.com"},
			Items: []domain.BookingItem{{
				ID:             10,
				ServiceID:      1,
				Start:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				End:            time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				UnitPriceCents: 10000,
			}},
		},
		2: {ID: 2, Status: domain.StatusCancelled},
	}}
	notifier := &fakeNotifier{}
	return NewService(repo, notifier, logger.NewNop()), repo, notifier
}

func TestService_Cancel(t *testing.T) {
	svc, repo, notifier := newTestService()
	ctx := context.Background()

	changed, err := svc.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)

	changed, err = svc.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.Cancel(ctx, 404)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, []int64{1}, notifier.cancelled)

	_, err = svc.Cancel(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.err = errors.New("db down")
	_, err = svc.Cancel(ctx, 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "jane@example.com", resp.Customer.Email)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2024-06-01 00:00:00", resp.Items[0].Start)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("cancelled"), Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
	assert.Equal(t, uint64(10), repo.lastFilter.Limit)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{CreatedFrom: &from, CreatedTo: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
