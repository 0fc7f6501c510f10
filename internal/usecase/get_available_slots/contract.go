package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	// GetByID получает услугу, в том числе неактивную
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityChecker проверка свободности интервала
type AvailabilityChecker interface {
	SlotAvailable(ctx context.Context, start, end time.Time, serviceID, excludeBookingID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
