package get_available_slots

import "time"

// Request модель запроса на получение сетки слотов
type Request struct {
	ServiceID string
	Date      time.Time // календарный день в часовом поясе мойки
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	Date            time.Time
	ServiceID       string
	DurationMinutes int
	Slots           []Slot
}

// Slot кандидат на бронирование [StartTime, StartTime+длительность услуги)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool // false: уже прошёл или пересекается с подтверждённым бронированием
}
