package domain

import "errors"

var (
	// ErrInvalidDuration возвращается, когда эффективная длительность услуги <= 0
	ErrInvalidDuration = errors.New("domain: resolved duration is not positive")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса записи
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus возвращается при неизвестном статусе записи
	ErrUnknownStatus = errors.New("domain: unknown appointment status")
)
