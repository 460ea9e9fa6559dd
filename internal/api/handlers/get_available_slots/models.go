package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ServiceID       string          `json:"service"`
	DurationMinutes int             `json:"duration"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"`       // "10:00"
	StartTime string `json:"start_time"` // "2030-06-01T10:00:00", готово для POST /api/book
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.StartTime.Format(domain.TimeFormat),
			StartTime: slot.StartTime.Format(domain.LocalDateTimeFormat),
			EndTime:   slot.EndTime.Format(domain.LocalDateTimeFormat),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseLocalDate(dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
