package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAvailabilityCache(client, time.Minute, "test", loc), mr, loc
}

func TestAvailabilityCache_RoundTrip(t *testing.T) {
	cache, _, loc := newTestCache(t)
	ctx := context.Background()
	query := domain.AvailabilityQuery{
		From:      time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
		To:        time.Date(2024, 6, 8, 0, 0, 0, 0, loc),
		ServiceID: ptr.Ptr(int64(2)),
	}

	_, version, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, version)

	events := []domain.AvailabilityEvent{{
		ID:    "booking-1",
		Title: domain.TitleBooked,
		Start: time.Date(2024, 6, 2, 10, 0, 0, 0, loc),
		End:   time.Date(2024, 6, 2, 11, 0, 0, 0, loc),
		Kind:  domain.EventKindBooking,
	}}
	require.NoError(t, cache.Set(ctx, query, version, events))

	got, _, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "booking-1", got[0].ID)
	assert.True(t, events[0].Start.Equal(got[0].Start))
	assert.Equal(t, loc, got[0].Start.Location())

	other := query
	other.ServiceID = nil
	_, _, ok, err = cache.Get(ctx, other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailabilityCache_Invalidate(t *testing.T) {
	cache, mr, loc := newTestCache(t)
	ctx := context.Background()
	query := domain.AvailabilityQuery{From: time.Date(2024, 6, 1, 0, 0, 0, 0, loc), To: time.Date(2024, 6, 2, 0, 0, 0, 0, loc)}

	require.NoError(t, cache.Set(ctx, query, 0, nil))
	_, _, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.Invalidate(ctx))
	_, version, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), version)

	version, err := mr.Get("test:version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestAvailabilityCache_InvalidateBetweenGetAndSet(t *testing.T) {
	cache, _, loc := newTestCache(t)
	ctx := context.Background()
	query := domain.AvailabilityQuery{From: time.Date(2024, 6, 1, 0, 0, 0, 0, loc), To: time.Date(2024, 6, 8, 0, 0, 0, 0, loc)}

	// промах, затем отмена бронирования инвалидирует кэш до записи прочитанных данных
	_, version, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Invalidate(ctx))

	stale := []domain.AvailabilityEvent{{
		ID:    "booking-1",
		Title: domain.TitleBooked,
		Start: time.Date(2024, 6, 2, 10, 0, 0, 0, loc),
		End:   time.Date(2024, 6, 2, 11, 0, 0, 0, loc),
		Kind:  domain.EventKindBooking,
	}}
	require.NoError(t, cache.Set(ctx, query, version, stale))

	_, current, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, version+1, current)
}

func TestAvailabilityCache_TTL(t *testing.T) {
	cache, mr, loc := newTestCache(t)
	ctx := context.Background()
	query := domain.AvailabilityQuery{From: time.Date(2024, 6, 1, 0, 0, 0, 0, loc), To: time.Date(2024, 6, 2, 0, 0, 0, 0, loc)}

	require.NoError(t, cache.Set(ctx, query, 0, []domain.AvailabilityEvent{}))
	mr.FastForward(2 * time.Minute)

	_, _, ok, err := cache.Get(ctx, query)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailabilityCache_Unavailable(t *testing.T) {
	loc := time.UTC
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewAvailabilityCache(client, time.Minute, "test", loc)

	query := domain.AvailabilityQuery{From: time.Date(2024, 6, 1, 0, 0, 0, 0, loc), To: time.Date(2024, 6, 2, 0, 0, 0, 0, loc)}
	_, _, _, err := cache.Get(context.Background(), query)
	assert.ErrorIs(t, err, ErrCacheGet)
}
