package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает дату запроса
func validateRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req.ServiceID <= 0 {
		return time.Time{}, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	date, err := domain.ParseDate(req.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	return date, nil
}
