package edit_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("edit_appointment: appointment not found")

	// ErrNotOwner возвращается, когда запись принадлежит другому клиенту
	ErrNotOwner = errors.New("edit_appointment: appointment belongs to another client")

	// ErrInvalidTransition возвращается при попытке редактировать запись
	// в терминальном статусе
	ErrInvalidTransition = errors.New("edit_appointment: appointment can no longer be edited")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("edit_appointment: service not found")

	// ErrMasterNotFound возвращается, когда мастер не найден или неактивен
	ErrMasterNotFound = errors.New("edit_appointment: master not found")

	// ErrInvalidDuration возвращается, когда эффективная длительность услуги <= 0
	ErrInvalidDuration = errors.New("edit_appointment: invalid effective duration")

	// ErrPastDate возвращается при попытке переноса на прошедшее время
	ErrPastDate = errors.New("edit_appointment: appointment starts in the past")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочее окно
	ErrOutsideWorkingHours = errors.New("edit_appointment: interval is outside working hours")

	// ErrSlotConflict возвращается, когда новый слот пересекается с активной записью
	ErrSlotConflict = errors.New("edit_appointment: slot conflicts with an existing appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_appointment: internal error")
)
