package domain

import (
	"errors"
	"fmt"
)

// ServiceType is the billing model of a service
type ServiceType string

const (
	ServiceTypeDaily  ServiceType = "daily"
	ServiceTypeHourly ServiceType = "hourly"
	ServiceTypeMinute ServiceType = "minute"
)

// ErrInvalidService is returned when a service record breaks its invariants
var ErrInvalidService = errors.New("domain: invalid service")

// Service is a bookable offering.
// MinDuration is in days for daily services and in minutes otherwise.
type Service struct {
	ID          int64
	Name        string
	Description string
	Type        ServiceType
	MinDuration int
	StepMinutes *int
	PriceCents  int64
	Active      bool
}

// Validate checks the record invariants
func (s *Service) Validate() error {
	switch s.Type {
	case ServiceTypeDaily:
		if s.StepMinutes != nil {
			return fmt.Errorf("%w: daily service %d must not define step_minutes", ErrInvalidService, s.ID)
		}
	case ServiceTypeHourly, ServiceTypeMinute:
		if s.StepMinutes != nil && *s.StepMinutes <= 0 {
			return fmt.Errorf("%w: service %d has non-positive step_minutes", ErrInvalidService, s.ID)
		}
	default:
		return fmt.Errorf("%w: service %d has unknown type %q", ErrInvalidService, s.ID, s.Type)
	}

	if s.PriceCents < 0 {
		return fmt.Errorf("%w: service %d has negative price", ErrInvalidService, s.ID)
	}
	if s.MinDuration < 1 {
		return fmt.Errorf("%w: service %d has min_duration < 1", ErrInvalidService, s.ID)
	}

	return nil
}

// IsDaily returns true for day-billed services
func (s *Service) IsDaily() bool {
	return s.Type == ServiceTypeDaily
}

// StepOr returns step_minutes or the fallback when it is not set
func (s *Service) StepOr(fallback int) int {
	if s.StepMinutes == nil || *s.StepMinutes <= 0 {
		return fallback
	}
	return *s.StepMinutes
}
