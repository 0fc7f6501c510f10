package pricing

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

const (
	secondsPerDay  = int64(24 * 60 * 60)
	secondsPerHour = int64(60 * 60)
)

// Engine считает стоимость интервала по модели тарификации услуги
type Engine struct {
	minuteStepFallback int
}

// NewEngine создает движок тарификации
func NewEngine() *Engine {
	return &Engine{minuteStepFallback: domain.DefaultMinuteStepFallback}
}

// BillableUnits количество оплачиваемых единиц (дней, часов или шагов) для интервала.
// Неполная единица округляется вверх, минимум одна единица.
// Длительность считается по настенным часам, переход на летнее время её не меняет.
func (e *Engine) BillableUnits(service *domain.Service, start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s > %s", ErrInvalidInterval,
			domain.FormatDateTime(start), domain.FormatDateTime(end))
	}

	seconds := int64(domain.WallDuration(start, end) / time.Second)

	var unit int64
	switch service.Type {
	case domain.ServiceTypeDaily:
		unit = secondsPerDay
	case domain.ServiceTypeHourly:
		unit = secondsPerHour
	case domain.ServiceTypeMinute:
		unit = int64(service.StepOr(e.minuteStepFallback)) * 60
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownServiceType, service.Type)
	}

	return max(ceilDiv(seconds, unit), 1), nil
}

// PriceForInterval стоимость интервала в центах: price_cents * оплачиваемые единицы
func (e *Engine) PriceForInterval(service *domain.Service, start, end time.Time) (int64, error) {
	units, err := e.BillableUnits(service, start, end)
	if err != nil {
		return 0, err
	}
	return service.PriceCents * units, nil
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
