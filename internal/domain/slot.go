package domain

import "time"

// AvailableSlot is a bookable candidate for a service on a given day
type AvailableSlot struct {
	Start time.Time
	End   time.Time
	Label string
}

// DurationMinutes returns the slot length in minutes
func (s *AvailableSlot) DurationMinutes() int {
	return int(WallDuration(s.Start, s.End) / time.Minute)
}
