package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// Каналы отмены (для логов, метрик и уведомлений)
const (
	ChannelToken = "token"
	ChannelAdmin = "admin"
)

// BookingResponse бронирование для администратора и страницы отмены
type BookingResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"name"`
	CustomerPhone string `json:"phone"`
	CustomerEmail string `json:"email"`
	ServiceID     string `json:"serviceId"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"service"`
	ServicePrice float64 `json:"price"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Date      string    `json:"date"` // "01.06.2030"
	Time      string    `json:"time"` // "10:00"
	Status    string    `json:"status"`

	CanceledAt *time.Time `json:"canceledAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResult результат отмены
type CancelResult struct {
	Outcome domain.CancellationOutcome
	Booking *BookingResponse // nil, если бронирование не найдено
}

// FromDomainBooking конвертирует domain модель в DTO.
// Время переводится в часовой пояс мойки; если услуги уже нет в каталоге,
// вместо названия используется её идентификатор.
func FromDomainBooking(b *domain.Booking, service *domain.ServiceDefinition, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	start := b.StartTime.In(loc)
	resp := &BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceID,
		StartTime:     start,
		EndTime:       b.EndTime.In(loc),
		Date:          start.Format(domain.DisplayDateFormat),
		Time:          start.Format(domain.TimeFormat),
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}

	if service != nil {
		resp.ServiceName = service.Name
		resp.ServicePrice = service.Price
	}

	if b.CanceledAt != nil {
		canceledAt := b.CanceledAt.In(loc)
		resp.CanceledAt = &canceledAt
	}

	return resp
}
