package retention_cleanup

import (
	"context"
	"time"
)

// BookingRepository удаление и подсчет старых бронирований
type BookingRepository interface {
	DeleteItemsOfBookingsCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// CustomerRepository удаление и подсчет клиентов без бронирований
type CustomerRepository interface {
	DeleteOrphans(ctx context.Context) (int64, error)
	CountOrphans(ctx context.Context) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// UnavailabilityRepository удаление и подсчет закончившихся блокировок
type UnavailabilityRepository interface {
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteRecurringEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик удаленных строк
type Metrics interface {
	AddRetentionDeleted(kind string, n int64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
