package get_busy_slots

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	getBusySlots "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_busy_slots"
)

// BusySlot HTTP модель занятого интервала
type BusySlot struct {
	StartTime string `json:"start_time"` // "2030-06-01T10:00:00"
	EndTime   string `json:"end_time"`
}

// ToUseCaseRequest создает запрос use case из query параметров date, from, to
func ToUseCaseRequest(query url.Values, loc *time.Location) (*getBusySlots.Request, error) {
	req := &getBusySlots.Request{}

	if v := query.Get("date"); v != "" {
		date, err := handlers.ParseLocalDate(v, loc)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if v := query.Get("from"); v != "" {
		from, err := handlers.ParseLocalDateTime(v, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := handlers.ParseLocalDateTime(v, loc)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBusySlots.Response) []BusySlot {
	slots := make([]BusySlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = BusySlot{
			StartTime: slot.StartTime.Format(domain.LocalDateTimeFormat),
			EndTime:   slot.EndTime.Format(domain.LocalDateTimeFormat),
		}
	}
	return slots
}
