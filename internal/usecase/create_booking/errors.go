package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных клиента
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("create_booking: unknown service")

	// ErrPastTime возвращается, когда время начала уже прошло
	ErrPastTime = errors.New("create_booking: start time is in the past")

	// ErrOutsideBusinessHours возвращается, когда слот не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: outside business hours")

	// ErrSlotTaken возвращается, когда интервал пересекается с подтверждённым бронированием
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
