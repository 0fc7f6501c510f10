package get_available_slots

import (
	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PetSittingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	Start           string `json:"start"` // "2024-06-01 10:00:00"
	End             string `json:"end"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start:           domain.FormatDateTime(slot.Start),
			End:             domain.FormatDateTime(slot.End),
			Label:           slot.Label,
			DurationMinutes: slot.DurationMinutes(),
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
