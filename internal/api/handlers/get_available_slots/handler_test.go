package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PetSittingService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/services/{serviceId}/available-slots", NewHandler(uc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:      date,
		ServiceID: 2,
		Slots: []domain.AvailableSlot{
			{Start: date.Add(8 * time.Hour), End: date.Add(9 * time.Hour), Label: "08:00 - 09:00"},
		},
	}}

	rec := serve(uc, "/api/v1/services/2/available-slots?date=2024-06-03")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getAvailableSlots.Request{ServiceID: 2, Date: "2024-06-03"}, uc.got)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-03", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, AvailableSlot{Start: "2024-06-03 08:00:00", End: "2024-06-03 09:00:00", Label: "08:00 - 09:00", DurationMinutes: 60}, resp.Slots[0])
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad id", target: "/api/v1/services/abc/available-slots?date=2024-06-03", want: http.StatusBadRequest},
		{name: "zero id", target: "/api/v1/services/0/available-slots?date=2024-06-03", want: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/services/1/available-slots", want: http.StatusBadRequest},
		{name: "invalid date", target: "/api/v1/services/1/available-slots?date=03.06.2024", err: getAvailableSlots.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/services/1/available-slots?date=2024-06-03", err: fmt.Errorf("%w: db down", getAvailableSlots.ErrInternal), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
