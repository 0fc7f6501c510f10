package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Customer    CustomerData      // Данные клиента
	ServiceID   int64             // ID услуги
	Occurrences []OccurrenceInput // Запрошенные интервалы (не пусто)
	Notes       *string           // Комментарий (опционально)
}

// CustomerData данные клиента; email - ключ идентичности
type CustomerData struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email,max=255"`
	Phone     string `validate:"required,max=50"`
}

// OccurrenceInput интервал в виде строк (ISO дата-время)
type OccurrenceInput struct {
	Start string
	End   string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	CustomerID      int64
	ServiceID       int64
	TotalPriceCents int64
	Status          string
	Notes           *string
	Items           []Item
	CreatedAt       time.Time
}

// Item созданный интервал бронирования
type Item struct {
	ID             int64
	Start          time.Time
	End            time.Time
	UnitPriceCents int64
}

func toResponse(serviceID int64, booking *domain.Booking) *Response {
	items := make([]Item, 0, len(booking.Items))
	for _, item := range booking.Items {
		items = append(items, Item{
			ID:             item.ID,
			Start:          item.Start,
			End:            item.End,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return &Response{
		ID:              booking.ID,
		CustomerID:      booking.CustomerID,
		ServiceID:       serviceID,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		Notes:           booking.Notes,
		Items:           items,
		CreatedAt:       booking.CreatedAt,
	}
}
