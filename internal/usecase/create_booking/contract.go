package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// LockCalendar сериализует создателей бронирований до конца транзакции
	LockCalendar(ctx context.Context, serviceID *int64) error
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateItems(ctx context.Context, bookingID int64, items []domain.BookingItem) ([]domain.BookingItem, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	// Upsert создает клиента или обновляет имя и телефон по email
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityChecker повторная проверка свободности внутри транзакции
type AvailabilityChecker interface {
	SlotAvailable(ctx context.Context, start, end time.Time, serviceID, excludeBookingID *int64) (bool, error)
}

// PriceCalculator расчет цены интервала
type PriceCalculator interface {
	PriceForInterval(service *domain.Service, start, end time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier уведомление после успешного коммита
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
