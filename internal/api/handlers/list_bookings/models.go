package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from и to - даты YYYY-MM-DD в часовом поясе календаря, to включительно.
func ToServiceRequest(query url.Values, loc *time.Location) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if email := query.Get("email"); email != "" {
		req.CustomerEmail = &email
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := domain.ParseDate(fromStr, loc)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.CreatedFrom = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := domain.ParseDate(toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		// Верхняя граница исключающая: начало следующего дня
		next := to.AddDate(0, 0, 1)
		req.CreatedTo = &next
	}

	var err error
	if req.Limit, err = parseUint(query.Get("limit")); err != nil {
		return nil, fmt.Errorf("limit: %w", err)
	}
	if req.Offset, err = parseUint(query.Get("offset")); err != nil {
		return nil, fmt.Errorf("offset: %w", err)
	}

	return req, nil
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
