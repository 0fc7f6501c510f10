package retention_cleanup

import "time"

// Метки вида удаленных строк для метрик
const (
	KindBookingItems          = "booking_items"
	KindBookings              = "bookings"
	KindCustomers             = "customers"
	KindUnavailabilities      = "unavailabilities"
	KindRecurringUnavailables = "recurring_unavailabilities"
)

// Result количество удаленных строк за один запуск
type Result struct {
	Cutoff                  time.Time
	DeletedItems            int64
	DeletedBookings         int64
	DeletedCustomers        int64
	DeletedUnavailabilities int64
	DeletedRecurringRules   int64
}
