package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// BookingRepository чтение подтвержденных бронирований
type BookingRepository interface {
	ListConfirmedItems(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.BookingItem, error)
	HasConflict(ctx context.Context, start, end time.Time, serviceID, excludeBookingID *int64) (bool, error)
}

// UnavailabilityRepository чтение разовых и повторяющихся блокировок
type UnavailabilityRepository interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Unavailability, error)
	HasOverlap(ctx context.Context, start, end time.Time) (bool, error)
	ListRecurringBetween(ctx context.Context, from, to time.Time) ([]domain.RecurringUnavailability, error)
}

// Cache кэш результатов GetAvailability (может быть nil).
// Get возвращает версию кэша, под которой нужно сохранить результат при промахе.
type Cache interface {
	Get(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailabilityEvent, int64, bool, error)
	Set(ctx context.Context, query domain.AvailabilityQuery, version int64, events []domain.AvailabilityEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
