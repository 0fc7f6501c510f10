package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// MessageWriter отправка сообщений в kafka (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события бронирований
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	now     func() time.Time
}

// NewWriter создает kafka writer для топика событий
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewPublisher создает publisher. timeout ограничивает одну отправку.
func NewPublisher(writer MessageWriter, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{writer: writer, timeout: timeout, now: time.Now}
}

// PublishBookingCreated публикует booking.created.v1
func (p *Publisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	event := p.newEvent(TypeBookingCreated, booking.ID)
	event.TotalPriceCents = booking.TotalPriceCents
	if booking.Customer != nil {
		event.CustomerEmail = booking.Customer.Email
	}
	for _, item := range booking.Items {
		event.Items = append(event.Items, EventItem{
			ServiceID:      item.ServiceID,
			Start:          domain.FormatDateTime(item.Start),
			End:            domain.FormatDateTime(item.End),
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return p.publish(ctx, event)
}

// PublishBookingCancelled публикует booking.cancelled.v1
func (p *Publisher) PublishBookingCancelled(ctx context.Context, bookingID int64) error {
	return p.publish(ctx, p.newEvent(TypeBookingCancelled, bookingID))
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) newEvent(eventType string, bookingID int64) BookingEvent {
	return BookingEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: p.now().UTC(),
		BookingID:  bookingID,
	}
}

func (p *Publisher) publish(ctx context.Context, event BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, event.EventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s booking=%d: %v", ErrPublish, event.EventType, event.BookingID, err)
	}
	return nil
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(context.Context, *domain.Booking) error { return nil }

func (NoopPublisher) PublishBookingCancelled(context.Context, int64) error { return nil }

func (NoopPublisher) Close() error { return nil }
