package create_booking

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
	FindOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenGenerator генератор токенов отмены
type TokenGenerator interface {
	Generate() (string, error)
}

// Notifier принимает событие о новом бронировании; не блокирует и не возвращает ошибок
type Notifier interface {
	NotifyBookingCreated(booking *domain.Booking, service domain.ServiceDefinition)
}

// Metrics счётчик результатов бронирования
type Metrics interface {
	ObserveBooking(result string)
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
