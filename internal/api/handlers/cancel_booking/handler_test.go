package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/service/bookings"
)

type fakeService struct {
	cancelled map[int64]bool
	err       error
}

func (f *fakeService) Cancel(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.cancelled[id] {
		return false, nil
	}
	f.cancelled[id] = true
	return true, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, nil))
	return rec
}

func TestHandler_SecondCancelReturnsFalse(t *testing.T) {
	svc := &fakeService{cancelled: map[int64]bool{}}

	for _, want := range []bool{true, false} {
		rec := serve(svc, "/api/v1/bookings/42/cancel")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp CancelBookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, CancelBookingResponse{BookingID: 42, Cancelled: want}, resp)
	}
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/bookings/abc/cancel").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: bookings.ErrInvalidInput}, "/api/v1/bookings/0/cancel").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("down")}, "/api/v1/bookings/1/cancel").Code)
}
