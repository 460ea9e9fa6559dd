package admin_cancel_booking

import "github.com/m04kA/SMC-CarWashBooking/internal/service/bookings/models"

// CancelResponse HTTP модель результата отмены администратором
type CancelResponse struct {
	OK      bool                    `json:"ok"`
	Outcome string                  `json:"outcome"`
	Booking *models.BookingResponse `json:"booking,omitempty"`
}

// FromServiceResult конвертирует результат сервиса в HTTP ответ
func FromServiceResult(res *models.CancelResult) *CancelResponse {
	return &CancelResponse{
		OK:      true,
		Outcome: string(res.Outcome),
		Booking: res.Booking,
	}
}
