package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// UseCase сетка слотов на день для выбранной услуги
type UseCase struct {
	catalog      Catalog
	bookingRepo  BookingRepository
	hours        domain.BusinessHours
	step         time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog Catalog,
	bookingRepo BookingRepository,
	hours domain.BusinessHours,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		catalog:      catalog,
		bookingRepo:  bookingRepo,
		hours:        hours,
		step:         time.Duration(stepMinutes) * time.Minute,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalog.Lookup(req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service %q not found", req.ServiceID)
			return nil, ErrUnknownService
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Генерируем сетку кандидатов в рабочих часах
	candidates := generateTimeSlots(uc.hours, req.Date, uc.step, service.Duration())

	// 4. Получаем подтверждённые бронирования за день
	day := domain.DayRange(req.Date.In(uc.hours.Location), uc.hours.Location)
	bookings, err := uc.bookingRepo.ListConfirmed(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Помечаем свободные слоты
	slots := markAvailability(candidates, bookings, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s",
		len(slots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            *day.From,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
