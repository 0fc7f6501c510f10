package models

import "github.com/m04kA/SMC-PetSittingService/internal/domain"

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`        // daily, hourly, minute
	MinDuration int    `json:"minDuration"` // дни для daily, минуты иначе
	StepMinutes *int   `json:"stepMinutes"` // null для daily
	PriceCents  int64  `json:"priceCents"`  // цена за единицу тарификации
	Active      bool   `json:"active"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Type:        string(s.Type),
		MinDuration: s.MinDuration,
		StepMinutes: s.StepMinutes,
		PriceCents:  s.PriceCents,
		Active:      s.Active,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if dto := FromDomainService(s); dto != nil {
			resp.Services = append(resp.Services, *dto)
		}
	}
	return resp
}
