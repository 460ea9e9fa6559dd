package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CarWashBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Service   string `json:"service" validate:"required"`
	StartTime string `json:"start_time" validate:"required"` // "2030-06-01T10:00:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	OK           bool    `json:"ok"`
	ID           int64   `json:"id"`
	CancelToken  string  `json:"cancelToken"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	ServiceID    string  `json:"service"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"price"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// start_time без часового пояса трактуется как локальное время мойки.
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	startTime, err := handlers.ParseLocalDateTime(r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerName:  r.Name,
		CustomerPhone: r.Phone,
		CustomerEmail: r.Email,
		ServiceID:     r.Service,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, loc *time.Location) *BookingResponse {
	return &BookingResponse{
		OK:           true,
		ID:           resp.ID,
		CancelToken:  resp.CancelToken,
		Name:         resp.CustomerName,
		Phone:        resp.CustomerPhone,
		Email:        resp.CustomerEmail,
		ServiceID:    resp.ServiceID,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		StartTime:    resp.StartTime.In(loc).Format(domain.LocalDateTimeFormat),
		EndTime:      resp.EndTime.In(loc).Format(domain.LocalDateTimeFormat),
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
