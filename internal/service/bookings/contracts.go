package bookings

import (
	"context"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// Catalog интерфейс справочника услуг (для денормализации названий)
type Catalog interface {
	Lookup(serviceID string) (domain.ServiceDefinition, error)
}

// Notifier принимает событие об отмене; не блокирует и не возвращает ошибок
type Notifier interface {
	NotifyBookingCanceled(booking *domain.Booking, service domain.ServiceDefinition, channel string)
}

// Metrics счётчик отмен
type Metrics interface {
	ObserveCancellation(channel, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
