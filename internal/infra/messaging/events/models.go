package events

import "time"

// Типы событий
const (
	TypeBookingCreated   = "booking.created.v1"
	TypeBookingCancelled = "booking.cancelled.v1"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	EventID         string      `json:"eventId"`
	EventType       string      `json:"eventType"`
	OccurredAt      time.Time   `json:"occurredAt"`
	BookingID       int64       `json:"bookingId"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	TotalPriceCents int64       `json:"totalPriceCents,omitempty"`
	Items           []EventItem `json:"items,omitempty"`
}

// EventItem интервал бронирования в событии
type EventItem struct {
	ServiceID      int64  `json:"serviceId"`
	Start          string `json:"start"`
	End            string `json:"end"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}
