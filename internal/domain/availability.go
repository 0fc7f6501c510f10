package domain

import (
	"strconv"
	"time"
)

// AvailabilityEvent is one blocked interval shown on the calendar.
// ID is derived from the source row so repeated queries yield the same id.
type AvailabilityEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  string    `json:"kind"`
}

// CleanupStats describes what a retention sweep would remove
type CleanupStats struct {
	Cutoff                time.Time
	OldBookings           int64
	OrphanedCustomers     int64
	OldUnavailabilities   int64
	TotalBookings         int64
	TotalCustomers        int64
	TotalUnavailabilities int64
}

// AvailabilityQuery identifies one calendar request
type AvailabilityQuery struct {
	From      time.Time
	To        time.Time
	ServiceID *int64
}

// Key returns a stable textual key for the query
func (q AvailabilityQuery) Key() string {
	service := "all"
	if q.ServiceID != nil {
		service = strconv.FormatInt(*q.ServiceID, 10)
	}
	return FormatDateTime(q.From) + "|" + FormatDateTime(q.To) + "|" + service
}
