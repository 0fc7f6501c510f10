package get_availability

import (
	"strconv"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// EventResponse занятый интервал календаря
type EventResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"` // "2024-06-01 10:00:00"
	End   string `json:"end"`
	Kind  string `json:"kind"`
}

// FromDomainEvents конвертирует события календаря в HTTP response
func FromDomainEvents(events []domain.AvailabilityEvent) []EventResponse {
	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, EventResponse{
			ID:    e.ID,
			Title: e.Title,
			Start: domain.FormatDateTime(e.Start),
			End:   domain.FormatDateTime(e.End),
			Kind:  e.Kind,
		})
	}
	return resp
}

// parseOptionalID разбирает необязательный положительный ID из query
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
