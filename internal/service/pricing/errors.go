package pricing

import "errors"

var (
	// ErrUnknownServiceType возвращается для неизвестной модели тарификации
	ErrUnknownServiceType = errors.New("pricing: unknown service type")

	// ErrInvalidInterval возвращается, если конец интервала раньше начала
	ErrInvalidInterval = errors.New("pricing: end is before start")
)
