package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов услуги на дату
type UseCase struct {
	serviceRepo  ServiceRepository
	availability AvailabilityChecker
	settings     domain.Settings
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availability AvailabilityChecker,
	settings domain.Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		availability: availability,
		settings:     settings,
		logger:       logger,
	}
}

// Execute выполняет перебор слотов: каждый кандидат проверяется отдельно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req, uc.settings.Location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		Date:      date,
		ServiceID: req.ServiceID,
		Slots:     []domain.AvailableSlot{},
	}

	// 2. Получаем услугу; отсутствующая или неактивная услуга дает пустой список
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Info("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Info("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return response, nil
	}

	// 3. Генерируем кандидатов
	var candidates []candidate
	if service.IsDaily() {
		candidates = []candidate{fullDayCandidate(date)}
	} else {
		candidates = generateCandidates(date, service.MinDuration, service.StepOr(uc.settings.DefaultStepMinutes))
	}

	// 4. Проверяем каждого кандидата
	for _, c := range candidates {
		free, err := uc.availability.SlotAvailable(ctx, c.start, c.end, ptr.Ptr(service.ID), nil)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to check slot %s: %v", c.label, err)
			return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if free {
			response.Slots = append(response.Slots, domain.AvailableSlot{
				Start: c.start,
				End:   c.end,
				Label: c.label,
			})
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d candidates free for service=%d, date=%s",
		len(response.Slots), len(candidates), req.ServiceID, date.Format(domain.DateFormat))

	return response, nil
}
