package domain

// MasterServiceOffering настройка каталожной услуги у конкретного мастера
// Пара (MasterID, ServiceID) уникальна
type MasterServiceOffering struct {
	MasterID             int64
	ServiceID            int64
	PriceModifier        float64 // множитель каталожной цены
	DurationDeltaMinutes int     // добавка к каталожной длительности, может быть отрицательной
	Active               bool
}

// ResolveDuration вычисляет эффективную длительность услуги в минутах
// base - каталожная длительность; offering - настройка мастера (может быть nil)
// Без активной настройки возвращается base; иначе base + delta
// Возвращает ErrInvalidDuration, если итоговая длительность <= 0
func ResolveDuration(base int, offering *MasterServiceOffering) (int, error) {
	duration := base
	if offering != nil && offering.Active {
		duration = base + offering.DurationDeltaMinutes
	}
	if duration <= 0 {
		return 0, ErrInvalidDuration
	}
	return duration, nil
}

// ResolvePrice вычисляет эффективную цену услуги
// Без активной настройки возвращается каталожная цена
func ResolvePrice(base float64, offering *MasterServiceOffering) float64 {
	if offering != nil && offering.Active {
		return base * offering.PriceModifier
	}
	return base
}
