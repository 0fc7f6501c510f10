package retention_cleanup

import "errors"

var (
	// ErrBookingsPhase возвращается при ошибке удаления старых бронирований
	ErrBookingsPhase = errors.New("retention: failed to delete old bookings")

	// ErrCustomersPhase возвращается при ошибке удаления клиентов без бронирований
	ErrCustomersPhase = errors.New("retention: failed to delete orphaned customers")

	// ErrUnavailabilitiesPhase возвращается при ошибке удаления старых блокировок
	ErrUnavailabilitiesPhase = errors.New("retention: failed to delete old unavailabilities")

	// ErrStats возвращается при ошибке подсчета статистики
	ErrStats = errors.New("retention: failed to collect stats")
)
