package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

var (
	// ErrValidation некорректный или нарушающий политику запрос; повтор без изменений бессмысленен
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrSlotUnavailable интервал пересекается с существующими данными
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive услуга выключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrStorage ошибка транзакции; ничего не сохранено, операцию можно повторить
	ErrStorage = errors.New("create_booking: storage failure")
)

// ValidationError описывает причину отказа и, если есть, номер интервала
type ValidationError struct {
	Field           string
	OccurrenceIndex *int
	Reason          string
}

func (e *ValidationError) Error() string {
	if e.OccurrenceIndex != nil {
		return fmt.Sprintf("occurrence %d: %s: %s", *e.OccurrenceIndex, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// SlotUnavailableError интервал, не прошедший повторную проверку
type SlotUnavailableError struct {
	OccurrenceIndex int
	Start           time.Time
	End             time.Time
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("occurrence %d: slot %s - %s is not available",
		e.OccurrenceIndex, domain.FormatDateTime(e.Start), domain.FormatDateTime(e.End))
}

func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}

func fieldError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func occurrenceError(index int, field, reason string) *ValidationError {
	return &ValidationError{Field: field, OccurrenceIndex: &index, Reason: reason}
}
