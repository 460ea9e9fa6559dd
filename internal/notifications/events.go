package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// Routing keys событий (совпадают с Event.Type)
const (
	RKBookingCreated  = "booking.created"
	RKBookingCanceled = "booking.canceled"
)

// Event событие о бронировании; содержит всё, что нужно для текста уведомления.
// Время хранится в часовом поясе мойки.
type Event struct {
	Type          string    `json:"type"`
	BookingID     int64     `json:"booking_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	ServiceID     string    `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	ServicePrice  float64   `json:"service_price"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CancelToken   string    `json:"cancel_token,omitempty"`
	Channel       string    `json:"channel,omitempty"` // кто отменил: token | admin
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingCreated событие о новом подтверждённом бронировании
func NewBookingCreated(b *domain.Booking, service domain.ServiceDefinition, loc *time.Location, now time.Time) Event {
	ev := newEvent(RKBookingCreated, b, service, loc, now)
	ev.CancelToken = b.CancelToken
	return ev
}

// NewBookingCanceled событие об отмене бронирования
func NewBookingCanceled(b *domain.Booking, service domain.ServiceDefinition, channel string, loc *time.Location, now time.Time) Event {
	ev := newEvent(RKBookingCanceled, b, service, loc, now)
	ev.Channel = channel
	return ev
}

func newEvent(kind string, b *domain.Booking, service domain.ServiceDefinition, loc *time.Location, now time.Time) Event {
	name := service.Name
	if name == "" {
		name = b.ServiceID
	}
	return Event{
		Type:          kind,
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		ServiceID:     b.ServiceID,
		ServiceName:   name,
		ServicePrice:  service.Price,
		StartTime:     b.StartTime.In(loc),
		EndTime:       b.EndTime.In(loc),
		OccurredAt:    now,
	}
}

// Validate проверяет тип события
func (e Event) Validate() error {
	switch e.Type {
	case RKBookingCreated, RKBookingCanceled:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
}

// DecodeEvent разбирает событие из тела сообщения очереди
func DecodeEvent(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrDecodeEvent, err)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// When дата и время начала для текстов ("01.06.2030 um 10:00")
func (e Event) When() string {
	return e.StartTime.Format(domain.DisplayDateFormat) + " um " + e.StartTime.Format(domain.TimeFormat)
}
