package get_availability

import (
	"context"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, from, to string, serviceID *int64) ([]domain.AvailabilityEvent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
