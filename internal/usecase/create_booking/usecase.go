package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	serviceRepo  ServiceRepository
	availability AvailabilityChecker
	pricing      PriceCalculator
	txManager    TransactionManager
	notifier     Notifier
	settings     domain.Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. notifier может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	serviceRepo ServiceRepository,
	availability AvailabilityChecker,
	pricing PriceCalculator,
	txManager TransactionManager,
	notifier Notifier,
	settings domain.Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		availability: availability,
		pricing:      pricing,
		txManager:    txManager,
		notifier:     notifier,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Повторная проверка доступности и все вставки выполняются в одной SERIALIZABLE транзакции.
// Снимок транзакции берется до ожидания advisory-блокировки, поэтому блокировка только
// уменьшает число конфликтов: от двойного бронирования защищает SSI, а ошибки
// сериализации (40001, 40P01) приводят к повтору всей функции в DoSerializable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, occurrences=%d", req.ServiceID, len(req.Occurrences))

	// 1. Валидация входных данных (запрос вызывающего не изменяется)
	normalized := *req
	normalized.Customer = normalizeCustomer(req.Customer)
	req = &normalized

	occurrences, err := validateRequest(req, uc.timeProvider.Now(), uc.settings.Location)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем календарь (общий или календарь услуги), чтобы конкурирующие запросы шли по очереди
		if err := uc.bookingRepo.LockCalendar(txCtx, uc.settings.ConflictScope(req.ServiceID)); err != nil {
			return fmt.Errorf("lock calendar: %w", err)
		}

		// 2.2. Повторная проверка каждого интервала
		for i, occ := range occurrences {
			free, err := uc.availability.SlotAvailable(txCtx, occ.start, occ.end, ptr.Ptr(req.ServiceID), nil)
			if err != nil {
				return fmt.Errorf("check occurrence %d: %w", i, err)
			}
			if !free {
				return &SlotUnavailableError{OccurrenceIndex: i, Start: occ.start, End: occ.end}
			}
		}

		// 2.3. Клиент по email
		customer, err := uc.customerRepo.Upsert(txCtx, &domain.Customer{
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Email:     req.Customer.Email,
			Phone:     req.Customer.Phone,
		})
		if err != nil {
			return fmt.Errorf("upsert customer: %w", err)
		}

		// 2.4. Услуга должна существовать и быть активной
		service, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
			}
			return fmt.Errorf("get service: %w", err)
		}
		if !service.Active {
			return fmt.Errorf("%w: id=%d", ErrServiceInactive, req.ServiceID)
		}

		// 2.5. Цена каждого интервала и итог
		items := make([]domain.BookingItem, 0, len(occurrences))
		var total int64
		for i, occ := range occurrences {
			price, err := uc.pricing.PriceForInterval(service, occ.start, occ.end)
			if err != nil {
				return fmt.Errorf("price occurrence %d: %w", i, err)
			}
			total += price
			items = append(items, domain.BookingItem{
				ServiceID:      service.ID,
				Start:          occ.start,
				End:            occ.end,
				UnitPriceCents: price,
			})
		}

		// 2.6. Бронирование и его интервалы
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerID:      customer.ID,
			TotalPriceCents: total,
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
		})
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		created, err := uc.bookingRepo.CreateItems(txCtx, booking.ID, items)
		if err != nil {
			return fmt.Errorf("create booking items: %w", err)
		}

		booking.Items = created
		booking.Customer = customer
		result = booking
		return nil
	})

	if err != nil {
		return nil, uc.classify(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%d", result.ID, result.TotalPriceCents)

	if uc.notifier != nil {
		uc.notifier.BookingCreated(ctx, result)
	}

	return toResponse(req.ServiceID, result), nil
}

// classify оставляет доменные ошибки как есть, остальное становится ErrStorage
func (uc *UseCase) classify(err error) error {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		uc.logger.Warn("CreateBooking: %v", err)
		return err
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrServiceInactive):
		uc.logger.Warn("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
