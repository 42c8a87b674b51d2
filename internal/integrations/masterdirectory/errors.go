package masterdirectory

import "errors"

var (
	// ErrMasterNotFound возвращается, когда мастер не найден
	ErrMasterNotFound = errors.New("masterdirectory: master not found")

	// ErrScheduleNotFound возвращается, когда у мастера нет недельного расписания
	ErrScheduleNotFound = errors.New("masterdirectory: weekly schedule not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога мастеров
	ErrInvalidResponse = errors.New("masterdirectory: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("masterdirectory: internal error")
)
