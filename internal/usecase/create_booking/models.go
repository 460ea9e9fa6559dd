package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceID     string
	StartTime     time.Time // локальное время мойки
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceID     string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	CancelToken   string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
}
