package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PetSittingService/internal/api/handlers"
	"github.com/m04kA/SMC-PetSittingService/internal/service/availability"
)

const (
	msgMissingInterval = "параметры start и end обязательны"
	msgInvalidInterval = "некорректный интервал, ожидается start < end в формате YYYY-MM-DDTHH:MM:SS"
	msgInvalidID       = "некорректный ID"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
// Query params: start, end (required), serviceId, excludeBookingId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end := query.Get("start"), query.Get("end")
	if start == "" || end == "" {
		h.logger.Warn("GET /availability/check - Missing interval: start=%q, end=%q", start, end)
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}

	serviceID, err := parseOptionalID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	excludeBookingID, err := parseOptionalID(query.Get("excludeBookingId"))
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid exclude booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	available, err := h.service.IsSlotAvailable(r.Context(), start, end, serviceID, excludeBookingID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidArgument):
			h.logger.Warn("GET /availability/check - Invalid interval: start=%s, end=%s, error=%v", start, end, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /availability/check - Failed to check slot: start=%s, end=%s, error=%v", start, end, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/check - Slot checked: start=%s, end=%s, available=%t", start, end, available)
	handlers.RespondJSON(w, http.StatusOK, CheckAvailabilityResponse{Start: start, End: end, Available: available})
}

func parseOptionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, strconv.ErrRange
	}
	return &id, nil
}
