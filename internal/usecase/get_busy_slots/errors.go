package get_busy_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном окне выборки
	ErrInvalidInput = errors.New("get_busy_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_busy_slots: internal error")
)
