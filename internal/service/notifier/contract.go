package notifier

import (
	"context"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// Cache инвалидация кэша календаря
type Cache interface {
	Invalidate(ctx context.Context) error
}

// Publisher публикация событий бронирований
type Publisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error
	PublishBookingCancelled(ctx context.Context, bookingID int64) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingsCreated()
	IncBookingsCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
