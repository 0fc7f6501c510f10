package check_availability

import "context"

type AvailabilityService interface {
	IsSlotAvailable(ctx context.Context, start, end string, serviceID, excludeBookingID *int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
