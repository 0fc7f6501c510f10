package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-PetSittingService/internal/api/handlers"
	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	createBooking "github.com/m04kA/SMC-PetSittingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidation         = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный интервал недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var validationErr *createBooking.ValidationError
		var slotErr *createBooking.SlotUnavailableError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Validation failed: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondValidationError(w, fmt.Sprintf("%s: %s", msgValidation, validationErr.Error()))

		case errors.As(err, &slotErr):
			h.logger.Warn("POST /bookings - Slot not available: service_id=%d, occurrence=%d", req.ServiceID, slotErr.OccurrenceIndex)
			handlers.RespondConflict(w, handlers.KindSlotUnavailable, fmt.Sprintf("%s: %s - %s",
				msgSlotNotAvailable, domain.FormatDateTime(slotErr.Start), domain.FormatDateTime(slotErr.End)))

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusNotFound, handlers.KindServiceNotFound, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, handlers.KindServiceInactive, msgServiceInactive)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, service_id=%d, items=%d",
		result.ID, result.CustomerID, result.ServiceID, len(result.Items))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
