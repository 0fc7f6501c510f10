package create_booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// phoneNoise символы, которые не могут быть частью номера телефона
var phoneNoise = regexp.MustCompile(`[^0-9+\-\s()]`)

// occurrence разобранный интервал запроса
type occurrence struct {
	start time.Time
	end   time.Time
}

// normalizeCustomer обрезает пробелы, email приводится к нижнему регистру
func normalizeCustomer(c CustomerData) CustomerData {
	return CustomerData{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Email:     strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:     strings.TrimSpace(c.Phone),
	}
}

// validateRequest проверяет запрос до любого обращения к хранилищу
// и возвращает интервалы в часовом поясе календаря
func validateRequest(req *Request, now time.Time, loc *time.Location) ([]occurrence, error) {
	if err := validateCustomer(req.Customer); err != nil {
		return nil, err
	}

	if req.ServiceID <= 0 {
		return nil, fieldError("serviceId", "must be a positive integer")
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fieldError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	if len(req.Occurrences) == 0 {
		return nil, fieldError("occurrences", "at least one occurrence is required")
	}

	now = now.In(loc)
	result := make([]occurrence, 0, len(req.Occurrences))
	for i, input := range req.Occurrences {
		occ, err := parseOccurrence(i, input, now, loc)
		if err != nil {
			return nil, err
		}

		for j, prev := range result {
			if domain.Overlaps(prev.start, prev.end, occ.start, occ.end) {
				return nil, occurrenceError(i, "occurrences", fmt.Sprintf("overlaps occurrence %d", j))
			}
		}
		result = append(result, occ)
	}

	return result, nil
}

func validateCustomer(c CustomerData) error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fieldError(customerField(fe.Field()), validationReason(fe))
		}
		return fieldError("customer", err.Error())
	}

	if len(phoneNoise.ReplaceAllString(c.Phone, "")) < domain.MinPhoneLength {
		return fieldError("customer.phone", "invalid phone number")
	}

	return nil
}

func parseOccurrence(index int, input OccurrenceInput, now time.Time, loc *time.Location) (occurrence, error) {
	if strings.TrimSpace(input.Start) == "" || strings.TrimSpace(input.End) == "" {
		return occurrence{}, occurrenceError(index, "start/end", "both start and end are required")
	}

	start, err := domain.ParseDateTime(input.Start, loc)
	if err != nil {
		return occurrence{}, occurrenceError(index, "start", "invalid date-time")
	}
	end, err := domain.ParseDateTime(input.End, loc)
	if err != nil {
		return occurrence{}, occurrenceError(index, "end", "invalid date-time")
	}

	if !start.Before(end) {
		return occurrence{}, occurrenceError(index, "end", "end must be after start")
	}
	if start.Before(now) {
		return occurrence{}, occurrenceError(index, "start", "cannot book in the past")
	}
	if domain.WallDuration(start, end) > domain.MaxOccurrenceSpan {
		return occurrence{}, occurrenceError(index, "end", "occurrence cannot exceed 7 days")
	}

	return occurrence{start: start, end: end}, nil
}

func customerField(name string) string {
	switch name {
	case "FirstName":
		return "customer.firstName"
	case "LastName":
		return "customer.lastName"
	case "Email":
		return "customer.email"
	case "Phone":
		return "customer.phone"
	default:
		return "customer"
	}
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
