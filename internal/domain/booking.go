package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking is a priced reservation made of one or more occurrences.
// Status moves one way only: confirmed -> cancelled.
type Booking struct {
	ID              int64
	CustomerID      int64
	TotalPriceCents int64
	Notes           *string
	Status          BookingStatus

	Items    []BookingItem
	Customer *Customer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingItem is one reserved interval of a booking
type BookingItem struct {
	ID             int64
	BookingID      int64
	ServiceID      int64
	Start          time.Time
	End            time.Time
	UnitPriceCents int64
	CreatedAt      time.Time
}

// ItemsTotal sums unit prices of the booking items
func (b *Booking) ItemsTotal() int64 {
	var total int64
	for _, item := range b.Items {
		total += item.UnitPriceCents
	}
	return total
}

// BookingsFilter фильтр для списка бронирований (админка)
type BookingsFilter struct {
	Status        *BookingStatus // Фильтр по статусу (опционально)
	CreatedFrom   *time.Time     // Создано не раньше (опционально)
	CreatedTo     *time.Time     // Создано раньше (опционально)
	CustomerEmail *string        // Фильтр по email клиента (опционально)
	Limit         uint64         // 0 = без ограничения
	Offset        uint64
}
