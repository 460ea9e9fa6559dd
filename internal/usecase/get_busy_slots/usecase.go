package get_busy_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// UseCase use case для получения занятых интервалов (для календаря на клиенте)
type UseCase struct {
	bookingRepo BookingRepository
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		location:    location,
		logger:      logger,
	}
}

// Execute возвращает подтверждённые интервалы, отсортированные по началу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	rng, err := uc.timeRange(req)
	if err != nil {
		uc.logger.Warn("GetBusySlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetBusySlots: from=%s, to=%s", formatBound(rng.From), formatBound(rng.To))

	bookings, err := uc.bookingRepo.ListConfirmed(ctx, rng)
	if err != nil {
		uc.logger.Error("GetBusySlots: failed to list confirmed bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list confirmed bookings: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, Slot{
			StartTime: b.StartTime.In(uc.location),
			EndTime:   b.EndTime.In(uc.location),
		})
	}

	uc.logger.Info("GetBusySlots: found %d busy slots", len(slots))
	return &Response{Slots: slots}, nil
}

func (uc *UseCase) timeRange(req *Request) (domain.TimeRange, error) {
	if req.Date != nil {
		return domain.DayRange(req.Date.In(uc.location), uc.location), nil
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return domain.TimeRange{}, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	return domain.TimeRange{From: req.From, To: req.To}, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
