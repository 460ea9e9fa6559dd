package get_busy_slots

import "time"

// Request модель запроса занятых интервалов.
// Date (календарный день в часовом поясе мойки) имеет приоритет над From/To.
// Пустой запрос возвращает все подтверждённые бронирования.
type Request struct {
	Date *time.Time
	From *time.Time
	To   *time.Time
}

// Response модель ответа со списком занятых интервалов
type Response struct {
	Slots []Slot
}

// Slot занятый интервал [StartTime, EndTime)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}
