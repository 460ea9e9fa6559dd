package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// Catalog интерфейс справочника услуг
type Catalog interface {
	Lookup(serviceID string) (domain.ServiceDefinition, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmed(ctx context.Context, rng domain.TimeRange) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
