package availability

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// Calculator считает занятые интервалы календаря и проверяет свободность слотов
type Calculator struct {
	bookings       BookingRepository
	unavailability UnavailabilityRepository
	cache          Cache
	settings       domain.Settings
	logger         Logger
}

// NewCalculator создает калькулятор доступности. cache может быть nil.
func NewCalculator(
	bookings BookingRepository,
	unavailability UnavailabilityRepository,
	cache Cache,
	settings domain.Settings,
	logger Logger,
) *Calculator {
	return &Calculator{
		bookings:       bookings,
		unavailability: unavailability,
		cache:          cache,
		settings:       settings,
		logger:         logger,
	}
}

// Location часовой пояс календаря
func (c *Calculator) Location() *time.Location {
	return c.settings.Location
}

// GetAvailability разбирает границы окна и возвращает занятые интервалы
func (c *Calculator) GetAvailability(ctx context.Context, from, to string, serviceID *int64) ([]domain.AvailabilityEvent, error) {
	fromTime, err := domain.ParseDateTime(from, c.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidArgument, err)
	}
	toTime, err := domain.ParseDateTime(to, c.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrInvalidArgument, err)
	}
	return c.Availability(ctx, fromTime, toTime, serviceID)
}

// Availability объединяет подтвержденные бронирования, разовые блокировки,
// повторяющиеся блокировки и нерабочие часы, пересекающие [from, to).
// Порядок: по источнику, внутри источника по началу и id.
func (c *Calculator) Availability(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.AvailabilityEvent, error) {
	from, to = from.In(c.settings.Location), to.In(c.settings.Location)
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidArgument)
	}
	if to.Sub(from) > domain.MaxAvailabilityWindow {
		return nil, fmt.Errorf("%w: window is longer than %d days", ErrInvalidArgument, int(domain.MaxAvailabilityWindow/(24*time.Hour)))
	}

	query := domain.AvailabilityQuery{From: from, To: to, ServiceID: serviceID}

	// Версия кэша фиксируется до чтения из БД: запись после инвалидации попадет под устаревший ключ
	var (
		version   int64
		cacheable bool
	)
	if c.cache != nil {
		events, v, ok, err := c.cache.Get(ctx, query)
		switch {
		case err != nil:
			c.logger.Warn("Availability: cache get failed: %v", err)
		case ok:
			c.logger.Debug("Availability: cache hit key=%s", query.Key())
			return events, nil
		default:
			version, cacheable = v, true
		}
	}

	items, err := c.bookings.ListConfirmedItems(ctx, from, to, serviceID)
	if err != nil {
		c.logger.Error("Availability: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: list bookings: %w", ErrStorage, err)
	}
	blackouts, err := c.unavailability.ListOverlapping(ctx, from, to)
	if err != nil {
		c.logger.Error("Availability: failed to list unavailabilities: %v", err)
		return nil, fmt.Errorf("%w: list unavailabilities: %w", ErrStorage, err)
	}
	rules, err := c.unavailability.ListRecurringBetween(ctx, from, to)
	if err != nil {
		c.logger.Error("Availability: failed to list recurring rules: %v", err)
		return nil, fmt.Errorf("%w: list recurring rules: %w", ErrStorage, err)
	}

	events := make([]domain.AvailabilityEvent, 0, len(items)+len(blackouts))
	events = append(events, bookingEvents(items, from, to)...)
	events = append(events, blackoutEvents(blackouts, from, to)...)
	events = append(events, recurringEvents(rules, from, to)...)
	events = append(events, closureEvents(c.settings.BusinessHours, from, to)...)

	if cacheable {
		if err := c.cache.Set(ctx, query, version, events); err != nil {
			c.logger.Warn("Availability: cache set failed: %v", err)
		}
	}

	return events, nil
}

// IsSlotAvailable разбирает границы слота и проверяет его свободность
func (c *Calculator) IsSlotAvailable(ctx context.Context, start, end string, serviceID, excludeBookingID *int64) (bool, error) {
	startTime, err := domain.ParseDateTime(start, c.settings.Location)
	if err != nil {
		return false, fmt.Errorf("%w: start: %v", ErrInvalidArgument, err)
	}
	endTime, err := domain.ParseDateTime(end, c.settings.Location)
	if err != nil {
		return false, fmt.Errorf("%w: end: %v", ErrInvalidArgument, err)
	}
	if !startTime.Before(endTime) {
		return false, fmt.Errorf("%w: start must be before end", ErrInvalidArgument)
	}
	return c.SlotAvailable(ctx, startTime, endTime, serviceID, excludeBookingID)
}

// SlotAvailable сообщает, свободен ли [start, end).
// Бронирования других услуг блокируют слот, если не включена раздельная емкость услуг.
func (c *Calculator) SlotAvailable(ctx context.Context, start, end time.Time, serviceID, excludeBookingID *int64) (bool, error) {
	start, end = start.In(c.settings.Location), end.In(c.settings.Location)

	for closure := range c.settings.BusinessHours.Closures(start, end) {
		if domain.Overlaps(start, end, closure.Start, closure.End) {
			return false, nil
		}
	}

	var scope *int64
	if serviceID != nil {
		scope = c.settings.ConflictScope(*serviceID)
	}
	conflict, err := c.bookings.HasConflict(ctx, start, end, scope, excludeBookingID)
	if err != nil {
		return false, fmt.Errorf("%w: check bookings: %w", ErrStorage, err)
	}
	if conflict {
		return false, nil
	}

	blocked, err := c.unavailability.HasOverlap(ctx, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: check unavailabilities: %w", ErrStorage, err)
	}
	if blocked {
		return false, nil
	}

	rules, err := c.unavailability.ListRecurringBetween(ctx, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: list recurring rules: %w", ErrStorage, err)
	}
	for i := range rules {
		for occ := range rules[i].Occurrences(start, end) {
			if domain.Overlaps(start, end, occ.Start, occ.End) {
				return false, nil
			}
		}
	}

	return true, nil
}

func bookingEvents(items []domain.BookingItem, from, to time.Time) []domain.AvailabilityEvent {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b domain.BookingItem) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.ID, b.ID))
	})

	events := make([]domain.AvailabilityEvent, 0, len(sorted))
	for _, item := range sorted {
		if !domain.Overlaps(item.Start, item.End, from, to) {
			continue
		}
		events = append(events, domain.AvailabilityEvent{
			ID:    "booking-" + strconv.FormatInt(item.ID, 10),
			Title: domain.TitleBooked,
			Start: item.Start,
			End:   item.End,
			Kind:  domain.EventKindBooking,
		})
	}
	return events
}

func blackoutEvents(blackouts []domain.Unavailability, from, to time.Time) []domain.AvailabilityEvent {
	sorted := slices.Clone(blackouts)
	slices.SortStableFunc(sorted, func(a, b domain.Unavailability) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.ID, b.ID))
	})

	events := make([]domain.AvailabilityEvent, 0, len(sorted))
	for i := range sorted {
		u := &sorted[i]
		if !domain.Overlaps(u.Start, u.End, from, to) {
			continue
		}
		events = append(events, domain.AvailabilityEvent{
			ID:    "unavailable-" + strconv.FormatInt(u.ID, 10),
			Title: u.Title(),
			Start: u.Start,
			End:   u.End,
			Kind:  domain.EventKindUnavailable,
		})
	}
	return events
}

func recurringEvents(rules []domain.RecurringUnavailability, from, to time.Time) []domain.AvailabilityEvent {
	var events []domain.AvailabilityEvent
	for i := range rules {
		rule := &rules[i]
		for occ := range rule.Occurrences(from, to) {
			if !domain.Overlaps(occ.Start, occ.End, from, to) {
				continue
			}
			events = append(events, domain.AvailabilityEvent{
				ID:    fmt.Sprintf("recurring-%d-%s", rule.ID, occ.Date.Format(domain.DateFormat)),
				Title: rule.Title(),
				Start: occ.Start,
				End:   occ.End,
				Kind:  domain.EventKindRecurring,
			})
		}
	}

	slices.SortStableFunc(events, func(a, b domain.AvailabilityEvent) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.ID, b.ID))
	})
	return events
}

func closureEvents(hours domain.BusinessHours, from, to time.Time) []domain.AvailabilityEvent {
	var events []domain.AvailabilityEvent
	for closure := range hours.Closures(from, to) {
		if !domain.Overlaps(closure.Start, closure.End, from, to) {
			continue
		}
		events = append(events, domain.AvailabilityEvent{
			ID:    fmt.Sprintf("business-hours-%s-%s", closure.Date.Format(domain.DateFormat), closure.Kind),
			Title: domain.TitleClosed,
			Start: closure.Start,
			End:   closure.End,
			Kind:  domain.EventKindBusinessHours,
		})
	}
	return events
}
