package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с подтверждённым бронированием
	// (срабатывает exclusion constraint bookings_no_overlap)
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrDuplicateToken возвращается при коллизии токена отмены
	ErrDuplicateToken = errors.New("booking.repository: cancel token already exists")

	// ErrStatusConflict возвращается, когда текущий статус не совпал с ожидаемым (CAS не прошёл)
	ErrStatusConflict = errors.New("booking.repository: status changed concurrently")

	// ErrInvalidStatus возвращается при попытке недопустимого перехода статуса
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
