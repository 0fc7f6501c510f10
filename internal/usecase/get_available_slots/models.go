package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64  // ID услуги
	Date      string // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time              // Дата, на которую запрашивались слоты (полночь)
	ServiceID int64                  // ID услуги
	Slots     []domain.AvailableSlot // Свободные слоты в порядке начала
}
