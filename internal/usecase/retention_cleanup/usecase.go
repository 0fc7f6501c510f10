package retention_cleanup

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// UseCase очистка данных старше срока хранения
type UseCase struct {
	bookingRepo        BookingRepository
	customerRepo       CustomerRepository
	unavailabilityRepo UnavailabilityRepository
	txManager          TransactionManager
	metrics            Metrics
	settings           domain.Settings
	cleanupBlackouts   bool
	timeProvider       TimeProvider
	logger             Logger

	group singleflight.Group
}

// NewUseCase создает use case очистки. metrics может быть nil.
// cleanupBlackouts включает удаление закончившихся разовых и повторяющихся блокировок.
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	unavailabilityRepo UnavailabilityRepository,
	txManager TransactionManager,
	metrics Metrics,
	settings domain.Settings,
	cleanupBlackouts bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		customerRepo:       customerRepo,
		unavailabilityRepo: unavailabilityRepo,
		txManager:          txManager,
		metrics:            metrics,
		settings:           settings,
		cleanupBlackouts:   cleanupBlackouts,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Cutoff граница удаления: сейчас минус retention_years
func (uc *UseCase) Cutoff() time.Time {
	return uc.timeProvider.Now().In(uc.settings.Location).AddDate(-uc.settings.RetentionYears, 0, 0)
}

// Execute запускает очистку. Параллельные вызовы объединяются в один запуск.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	v, err, shared := uc.group.Do("retention", func() (interface{}, error) {
		return uc.run(ctx)
	})
	if shared {
		uc.logger.Info("RetentionCleanup: joined a run already in progress")
	}
	if err != nil {
		return nil, err
	}
	result := *v.(*Result)
	return &result, nil
}

func (uc *UseCase) run(ctx context.Context) (*Result, error) {
	result := &Result{Cutoff: uc.Cutoff()}
	uc.logger.Info("RetentionCleanup: started, cutoff=%s", domain.FormatDateTime(result.Cutoff))

	// 1. Интервалы, затем сами бронирования
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		items, err := uc.bookingRepo.DeleteItemsOfBookingsCreatedBefore(txCtx, result.Cutoff)
		if err != nil {
			return err
		}
		bookings, err := uc.bookingRepo.DeleteCreatedBefore(txCtx, result.Cutoff)
		if err != nil {
			return err
		}
		result.DeletedItems, result.DeletedBookings = items, bookings
		return nil
	})
	if err != nil {
		uc.logger.Error("RetentionCleanup: bookings phase failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBookingsPhase, err)
	}
	uc.record(KindBookingItems, result.DeletedItems)
	uc.record(KindBookings, result.DeletedBookings)

	// 2. Клиенты без бронирований
	customers, err := uc.customerRepo.DeleteOrphans(ctx)
	if err != nil {
		uc.logger.Error("RetentionCleanup: customers phase failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCustomersPhase, err)
	}
	result.DeletedCustomers = customers
	uc.record(KindCustomers, customers)

	// 3. Закончившиеся блокировки (опционально)
	if uc.cleanupBlackouts {
		blackouts, err := uc.unavailabilityRepo.DeleteEndedBefore(ctx, result.Cutoff)
		if err != nil {
			uc.logger.Error("RetentionCleanup: unavailabilities phase failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailabilitiesPhase, err)
		}
		rules, err := uc.unavailabilityRepo.DeleteRecurringEndedBefore(ctx, result.Cutoff)
		if err != nil {
			uc.logger.Error("RetentionCleanup: recurring rules phase failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrUnavailabilitiesPhase, err)
		}
		result.DeletedUnavailabilities, result.DeletedRecurringRules = blackouts, rules
		uc.record(KindUnavailabilities, blackouts)
		uc.record(KindRecurringUnavailables, rules)
	}

	uc.logger.Info("RetentionCleanup: completed, items=%d, bookings=%d, customers=%d, unavailabilities=%d, recurring=%d",
		result.DeletedItems, result.DeletedBookings, result.DeletedCustomers,
		result.DeletedUnavailabilities, result.DeletedRecurringRules)

	return result, nil
}

// Stats считает, что удалит следующий запуск, и общие размеры таблиц
func (uc *UseCase) Stats(ctx context.Context) (*domain.CleanupStats, error) {
	stats := &domain.CleanupStats{Cutoff: uc.Cutoff()}

	counters := []struct {
		name  string
		dest  *int64
		count func() (int64, error)
	}{
		{"old_bookings", &stats.OldBookings, func() (int64, error) { return uc.bookingRepo.CountCreatedBefore(ctx, stats.Cutoff) }},
		{"orphaned_customers", &stats.OrphanedCustomers, func() (int64, error) { return uc.customerRepo.CountOrphans(ctx) }},
		{"old_unavailabilities", &stats.OldUnavailabilities, func() (int64, error) { return uc.unavailabilityRepo.CountEndedBefore(ctx, stats.Cutoff) }},
		{"total_bookings", &stats.TotalBookings, func() (int64, error) { return uc.bookingRepo.CountAll(ctx) }},
		{"total_customers", &stats.TotalCustomers, func() (int64, error) { return uc.customerRepo.CountAll(ctx) }},
		{"total_unavailabilities", &stats.TotalUnavailabilities, func() (int64, error) { return uc.unavailabilityRepo.CountAll(ctx) }},
	}

	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			uc.logger.Error("RetentionStats: %s failed: %v", c.name, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrStats, c.name, err)
		}
		*c.dest = n
	}

	return stats, nil
}

func (uc *UseCase) record(kind string, n int64) {
	if uc.metrics != nil && n > 0 {
		uc.metrics.AddRetentionDeleted(kind, n)
	}
}
