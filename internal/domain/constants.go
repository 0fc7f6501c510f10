package domain

import "time"

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04:05" // naive local timestamp as stored
)

// Default configuration values
const (
	DefaultTimezone           = "Europe/Paris"
	DefaultRetentionYears     = 2
	DefaultStepMinutes        = 30
	DefaultMinuteStepFallback = 15
)

// Slot scan window used by the available-slots listing for hourly/minute services.
// It is a fixed policy and does not follow business hours.
const (
	OperatingDayStart = "08:00"
	OperatingDayEnd   = "20:00"
)

// Business validation constants
const (
	MaxOccurrenceSpan = 7 * 24 * time.Hour
	MinPhoneLength    = 8
	MaxNotesLength    = 2000

	// MaxAvailabilityWindow bounds a single calendar query.
	MaxAvailabilityWindow = 366 * 24 * time.Hour
)

// Display titles and kinds of availability events
const (
	EventKindBooking       = "booking"
	EventKindUnavailable   = "unavailable"
	EventKindRecurring     = "recurring"
	EventKindBusinessHours = "business_hours"

	TitleBooked      = "Booked"
	TitleUnavailable = "Unavailable"
	TitleClosed      = "Closed"
	TitleFullDay     = "Full day"
)
