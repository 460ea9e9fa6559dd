package cancel_by_token

import (
	"context"

	"github.com/m04kA/SMC-CarWashBooking/internal/service/bookings/models"
)

type BookingService interface {
	CancelByToken(ctx context.Context, token string) (*models.CancelResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
