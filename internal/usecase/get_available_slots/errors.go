package get_available_slots

import "errors"

var (
	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("get_available_slots: unknown service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
