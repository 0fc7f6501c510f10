package notifier

import (
	"context"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// Notifier реакция на изменения бронирований после коммита.
// Ошибки только логируются: бронирование уже сохранено.
type Notifier struct {
	cache     Cache
	publisher Publisher
	metrics   Metrics
	logger    Logger
}

// New создает notifier. cache, publisher и metrics могут быть nil.
func New(cache Cache, publisher Publisher, metrics Metrics, logger Logger) *Notifier {
	return &Notifier{
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// BookingCreated вызывается после создания бронирования
func (n *Notifier) BookingCreated(ctx context.Context, booking *domain.Booking) {
	if n.metrics != nil {
		n.metrics.IncBookingsCreated()
	}
	n.invalidate(ctx, "BookingCreated")

	if n.publisher != nil {
		if err := n.publisher.PublishBookingCreated(ctx, booking); err != nil {
			n.logger.Warn("Notifier.BookingCreated: booking id=%d: %v", booking.ID, err)
		}
	}
}

// BookingCancelled вызывается после отмены бронирования
func (n *Notifier) BookingCancelled(ctx context.Context, bookingID int64) {
	if n.metrics != nil {
		n.metrics.IncBookingsCancelled()
	}
	n.invalidate(ctx, "BookingCancelled")

	if n.publisher != nil {
		if err := n.publisher.PublishBookingCancelled(ctx, bookingID); err != nil {
			n.logger.Warn("Notifier.BookingCancelled: booking id=%d: %v", bookingID, err)
		}
	}
}

func (n *Notifier) invalidate(ctx context.Context, op string) {
	if n.cache == nil {
		return
	}
	if err := n.cache.Invalidate(ctx); err != nil {
		n.logger.Warn("Notifier.%s: cache invalidation failed: %v", op, err)
	}
}
