package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetSittingService/internal/api/handlers"
	"github.com/m04kA/SMC-PetSittingService/internal/service/availability"
)

const (
	msgMissingRange     = "параметры from и to обязательны"
	msgInvalidRange     = "некорректный период, ожидается from < to в формате YYYY-MM-DDTHH:MM:SS"
	msgInvalidServiceID = "некорректный ID услуги"
)

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

// Handle GET /api/v1/availability
// Query params: from, to (required), serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")
	if from == "" || to == "" {
		h.logger.Warn("GET /availability - Missing range: from=%q, to=%q", from, to)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	serviceID, err := parseOptionalID(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	events, err := h.service.GetAvailability(r.Context(), from, to, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidArgument):
			h.logger.Warn("GET /availability - Invalid range: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability computed: from=%s, to=%s, events=%d", from, to, len(events))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEvents(events))
}
