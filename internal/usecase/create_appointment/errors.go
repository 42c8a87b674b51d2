package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrMasterNotFound возвращается, когда выбранный мастер не найден или неактивен
	ErrMasterNotFound = errors.New("create_appointment: master not found")

	// ErrNoEligibleMaster возвращается, когда автоподбор не нашел ни одного мастера
	ErrNoEligibleMaster = errors.New("create_appointment: no eligible master for service")

	// ErrInvalidDuration возвращается, когда эффективная длительность услуги <= 0
	ErrInvalidDuration = errors.New("create_appointment: invalid effective duration")

	// ErrPastDate возвращается при попытке записи на прошедшее время
	ErrPastDate = errors.New("create_appointment: appointment starts in the past")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочее окно
	ErrOutsideWorkingHours = errors.New("create_appointment: interval is outside working hours")

	// ErrSlotConflict возвращается, когда слот пересекается с активной записью мастера
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
