package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-PetSittingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"customer": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "phone": "+33 6 12 34 56 78"},
	"serviceId": 1,
	"occurrences": [{"start": "2024-06-01T00:00:00", "end": "2024-06-03T00:00:00"}],
	"notes": "two cats"
}`

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func TestHandler_Created(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              77,
		CustomerID:      2,
		ServiceID:       1,
		TotalPriceCents: 10000,
		Status:          "confirmed",
		Items: []createBooking.Item{{
			ID:             501,
			Start:          time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
			End:            time.Date(2024, 6, 3, 0, 0, 0, 0, loc),
			UnitPriceCents: 10000,
		}},
		CreatedAt: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
	}}

	rec := doRequest(NewHandler(uc, nopLogger{}), validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "jane@example.com", uc.got.Customer.Email)
	require.Len(t, uc.got.Occurrences, 1)
	assert.Equal(t, "2024-06-03T00:00:00", uc.got.Occurrences[0].End)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, int64(10000), resp.TotalPriceCents)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2024-06-01 00:00:00", resp.Items[0].Start)
}

func TestHandler_Errors(t *testing.T) {
	index := 1
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "malformed body", body: `{"serviceId":`, wantStatus: http.StatusBadRequest, wantKind: handlers.KindInvalidArgument},
		{
			name:       "validation",
			body:       validBody,
			err:        &createBooking.ValidationError{Field: "end", OccurrenceIndex: &index, Reason: "must be after start"},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   handlers.KindValidation,
		},
		{
			name:       "slot unavailable",
			body:       validBody,
			err:        &createBooking.SlotUnavailableError{OccurrenceIndex: 0},
			wantStatus: http.StatusConflict,
			wantKind:   handlers.KindSlotUnavailable,
		},
		{name: "service not found", body: validBody, err: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound, wantKind: handlers.KindServiceNotFound},
		{name: "service inactive", body: validBody, err: createBooking.ErrServiceInactive, wantStatus: http.StatusConflict, wantKind: handlers.KindServiceInactive},
		{
			name:       "storage",
			body:       validBody,
			err:        fmt.Errorf("%w: commit failed", createBooking.ErrStorage),
			wantStatus: http.StatusInternalServerError,
			wantKind:   handlers.KindStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
