package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrMasterNotFound возвращается, когда мастер не найден или неактивен
	ErrMasterNotFound = errors.New("get_available_slots: master not found")

	// ErrInvalidDuration возвращается, когда эффективная длительность услуги <= 0
	ErrInvalidDuration = errors.New("get_available_slots: invalid effective duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
