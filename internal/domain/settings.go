package domain

import "time"

// Settings is the immutable runtime configuration shared by the booking components
type Settings struct {
	Location           *time.Location
	RetentionYears     int
	DefaultStepMinutes int
	BusinessHours      BusinessHours

	// PerServiceCapacity scopes booking conflicts to the same service.
	// When false the whole business is one shared calendar.
	PerServiceCapacity bool
}

// DefaultSettings returns the built-in defaults (Europe/Paris, 2 years, 30 min step).
// Falls back to UTC when the tz database is unavailable.
func DefaultSettings() Settings {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Settings{
		Location:           loc,
		RetentionYears:     DefaultRetentionYears,
		DefaultStepMinutes: DefaultStepMinutes,
	}
}

// ConflictScope returns the service filter for conflict checks:
// nil under the shared calendar, the service id under per-service capacity.
func (s Settings) ConflictScope(serviceID int64) *int64 {
	if !s.PerServiceCapacity || serviceID <= 0 {
		return nil
	}
	return &serviceID
}
