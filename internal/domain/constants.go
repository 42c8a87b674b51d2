package domain

// Значения по умолчанию для рабочего окна студии
// Реальные значения приходят из конфигурации, эти используются как fallback
const (
	DefaultOpenTime               = "09:00"
	DefaultCloseTime              = "21:00"
	DefaultSlotGranularityMinutes = 30
)

// Ограничения бизнес-валидации
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MaxNotesLength            = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, участвующие в проверках пересечений
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не участвующие в проверках пересечений
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
