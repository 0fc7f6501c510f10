package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPeriod возвращается, если начало периода позже конца
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Status        *string    `json:"status,omitempty"`        // Фильтр по статусу (опционально)
	CreatedFrom   *time.Time `json:"createdFrom,omitempty"`   // Начало периода (опционально)
	CreatedTo     *time.Time `json:"createdTo,omitempty"`     // Конец периода (опционально)
	CustomerEmail *string    `json:"customerEmail,omitempty"` // Фильтр по email (опционально)
	Limit         uint64     `json:"limit,omitempty"`
	Offset        uint64     `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CreatedFrom:   r.CreatedFrom,
		CreatedTo:     r.CreatedTo,
		CustomerEmail: r.CustomerEmail,
		Limit:         r.Limit,
		Offset:        r.Offset,
	}

	if r.CreatedFrom != nil && r.CreatedTo != nil && r.CreatedTo.Before(*r.CreatedFrom) {
		return filter, ErrInvalidPeriod
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64             `json:"id"`
	Status          string            `json:"status"`
	TotalPriceCents int64             `json:"totalPriceCents"`
	Notes           *string           `json:"notes,omitempty"`
	Customer        *CustomerResponse `json:"customer,omitempty"`
	Items           []ItemResponse    `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerResponse данные клиента бронирования
type CustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ItemResponse интервал бронирования
type ItemResponse struct {
	ID             int64  `json:"id"`
	ServiceID      int64  `json:"serviceId"`
	Start          string `json:"start"` // "2024-06-01 00:00:00"
	End            string `json:"end"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		Status:          string(b.Status),
		TotalPriceCents: b.TotalPriceCents,
		Notes:           b.Notes,
		Items:           make([]ItemResponse, 0, len(b.Items)),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.Customer != nil {
		resp.Customer = &CustomerResponse{
			ID:        b.Customer.ID,
			FirstName: b.Customer.FirstName,
			LastName:  b.Customer.LastName,
			Email:     b.Customer.Email,
			Phone:     b.Customer.Phone,
		}
	}

	for _, item := range b.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:             item.ID,
			ServiceID:      item.ServiceID,
			Start:          domain.FormatDateTime(item.Start),
			End:            domain.FormatDateTime(item.End),
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
