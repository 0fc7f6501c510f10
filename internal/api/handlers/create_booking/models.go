package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	createBooking "github.com/m04kA/SMC-PetSittingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Customer    CustomerRequest     `json:"customer"`
	ServiceID   int64               `json:"serviceId"`
	Occurrences []OccurrenceRequest `json:"occurrences"`
	Notes       *string             `json:"notes,omitempty"`
}

// CustomerRequest данные клиента
type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OccurrenceRequest запрошенный интервал
type OccurrenceRequest struct {
	Start string `json:"start"` // "2024-06-01T10:00:00" или "2024-06-01 10:00:00"
	End   string `json:"end"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64          `json:"id"`
	CustomerID      int64          `json:"customerId"`
	ServiceID       int64          `json:"serviceId"`
	TotalPriceCents int64          `json:"totalPriceCents"`
	Status          string         `json:"status"`
	Notes           *string        `json:"notes,omitempty"`
	Items           []ItemResponse `json:"items"`
	CreatedAt       string         `json:"createdAt"`
}

// ItemResponse созданный интервал
type ItemResponse struct {
	ID             int64  `json:"id"`
	Start          string `json:"start"`
	End            string `json:"end"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	occurrences := make([]createBooking.OccurrenceInput, 0, len(r.Occurrences))
	for _, o := range r.Occurrences {
		occurrences = append(occurrences, createBooking.OccurrenceInput{Start: o.Start, End: o.End})
	}

	return &createBooking.Request{
		Customer: createBooking.CustomerData{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		ServiceID:   r.ServiceID,
		Occurrences: occurrences,
		Notes:       r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	items := make([]ItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, ItemResponse{
			ID:             item.ID,
			Start:          domain.FormatDateTime(item.Start),
			End:            domain.FormatDateTime(item.End),
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		ServiceID:       resp.ServiceID,
		TotalPriceCents: resp.TotalPriceCents,
		Status:          resp.Status,
		Notes:           resp.Notes,
		Items:           items,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
