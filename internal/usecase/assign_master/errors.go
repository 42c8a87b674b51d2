package assign_master

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("assign_master: service not found")

	// ErrNoEligibleMaster возвращается, когда нет ни одного мастера для услуги
	ErrNoEligibleMaster = errors.New("assign_master: no eligible master for service")

	// ErrInvalidDuration возвращается, когда эффективная длительность некорректна
	ErrInvalidDuration = errors.New("assign_master: invalid effective duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_master: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_master: internal error")
)
