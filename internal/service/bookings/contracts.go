package bookings

import (
	"context"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	// CancelConfirmed переводит confirmed -> cancelled; false, если строка не изменилась
	CancelConfirmed(ctx context.Context, id int64) (bool, error)
}

// Notifier уведомление об отмене после записи
type Notifier interface {
	BookingCancelled(ctx context.Context, bookingID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
