package catalogservice

import "github.com/elegantstudio/ES-SchedulingService/internal/domain"

// Service каталожная услуга студии
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CategoryID      int64   `json:"categoryId"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"isActive"`
}

// ToDomain конвертирует услугу в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		CategoryID:      s.CategoryID,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
	}
}

// Offering настройка услуги у конкретного мастера
type Offering struct {
	MasterID             int64   `json:"masterId"`
	ServiceID            int64   `json:"serviceId"`
	PriceModifier        float64 `json:"priceModifier"`
	DurationDeltaMinutes int     `json:"durationDeltaMinutes"`
	Active               bool    `json:"isActive"`
}

// ToDomain конвертирует настройку в доменную модель
func (o *Offering) ToDomain() *domain.MasterServiceOffering {
	return &domain.MasterServiceOffering{
		MasterID:             o.MasterID,
		ServiceID:            o.ServiceID,
		PriceModifier:        o.PriceModifier,
		DurationDeltaMinutes: o.DurationDeltaMinutes,
		Active:               o.Active,
	}
}
