package cancel_by_token

import (
	"fmt"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/bookings/models"
)

// CancelResponse HTTP модель результата отмены по ссылке
type CancelResponse struct {
	OK      bool                    `json:"ok"`
	Outcome string                  `json:"outcome"`
	Message string                  `json:"message"`
	Booking *models.BookingResponse `json:"booking,omitempty"`
}

// FromServiceResult конвертирует результат сервиса в HTTP ответ
func FromServiceResult(res *models.CancelResult) *CancelResponse {
	resp := &CancelResponse{
		OK:      true,
		Outcome: string(res.Outcome),
		Booking: res.Booking,
	}

	switch res.Outcome {
	case domain.OutcomeCanceled:
		resp.Message = fmt.Sprintf("Ihre Buchung für %s am %s um %s wurde erfolgreich storniert.",
			res.Booking.ServiceName, res.Booking.Date, res.Booking.Time)
	case domain.OutcomeAlreadyCanceled:
		resp.Message = msgAlreadyCanceled
	}

	return resp
}
