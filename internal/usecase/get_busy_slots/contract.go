package get_busy_slots

import (
	"context"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmed(ctx context.Context, rng domain.TimeRange) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
