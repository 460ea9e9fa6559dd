package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/booking"
)

// maxTokenAttempts сколько раз генерируется новый токен при коллизии
const maxTokenAttempts = 3

// Результаты для метрики booking_requests_total
const (
	resultCreated        = "created"
	resultInvalidInput   = "invalid_input"
	resultUnknownService = "unknown_service"
	resultPastTime       = "past_time"
	resultOutsideHours   = "outside_hours"
	resultSlotTaken      = "slot_taken"
	resultError          = "error"
)

// errTokenCollision внутренний сигнал повторить попытку с новым токеном
var errTokenCollision = errors.New("create_booking: cancel token collision")

// UseCase use case для создания бронирования
type UseCase struct {
	catalog      Catalog
	bookingRepo  BookingRepository
	txManager    TransactionManager
	tokens       TokenGenerator
	notifier     Notifier
	metrics      Metrics
	hours        domain.BusinessHours
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog Catalog,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	tokens TokenGenerator,
	notifier Notifier,
	metrics Metrics,
	hours domain.BusinessHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		tokens:       tokens,
		notifier:     notifier,
		metrics:      metrics,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому из N одновременных запросов на один слот успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateBooking: service=%s, start=%s, email=%s",
		req.ServiceID, req.StartTime.Format(domain.LocalDateTimeFormat), req.CustomerEmail)

	// 1. Услуга из каталога
	service, err := uc.catalog.Lookup(req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service %q not found", req.ServiceID)
			return nil, ErrUnknownService
		}
		uc.logger.Error("CreateBooking: failed to lookup service %q: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to lookup service: %v", ErrInternal, err)
	}

	// 2. Интервал слота
	start := req.StartTime
	end := start.Add(service.Duration())

	// 3. Время в прошлом
	if err := validateNotInPast(start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: start %s is in the past", start.Format(domain.LocalDateTimeFormat))
		return nil, err
	}

	// 4. Рабочие часы
	if err := validateBusinessHours(uc.hours, start, end); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Данные клиента
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 6. Проверка пересечений и сохранение; при коллизии токена повторяем с новым.
	// Повтор выполняется новой транзакцией: в PostgreSQL транзакция после
	// нарушения unique constraint уже непригодна.
	var result *domain.Booking
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := uc.tokens.Generate()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate cancel token: %v", err)
			return nil, fmt.Errorf("%w: failed to generate cancel token: %v", ErrInternal, err)
		}

		draft := domain.BookingDraft{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			ServiceID:     service.ID,
			StartTime:     start,
			EndTime:       end,
			CancelToken:   token,
		}

		result, err = uc.reserve(ctx, draft)
		if errors.Is(err, errTokenCollision) {
			uc.logger.Warn("CreateBooking: cancel token collision, attempt %d/%d", attempt, maxTokenAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	if result == nil {
		uc.logger.Error("CreateBooking: cancel token collisions exhausted %d attempts", maxTokenAttempts)
		return nil, fmt.Errorf("%w: %v", ErrInternal, errTokenCollision)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, %s-%s",
		result.ID, result.StartTime.Format(domain.LocalDateTimeFormat), result.EndTime.Format(domain.TimeFormat))

	// 7. Уведомление ставится в очередь только после фиксации транзакции
	uc.notifier.NotifyBookingCreated(result, service)

	return &Response{
		ID:            result.ID,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		CustomerEmail: result.CustomerEmail,
		ServiceID:     result.ServiceID,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		CancelToken:   result.CancelToken,
		ServiceName:   service.Name,
		ServicePrice:  service.Price,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// reserve проверяет слот и сохраняет бронирование в сериализуемой транзакции
func (uc *UseCase) reserve(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, draft.StartTime, draft.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find overlapping bookings: %v", err)
			// %w для исходной ошибки: конфликт сериализации должен дойти до менеджера транзакций
			return fmt.Errorf("%w: failed to find overlapping bookings: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot %s taken by booking id=%d",
				draft.StartTime.Format(domain.LocalDateTimeFormat), overlapping[0].ID)
			return ErrSlotTaken
		}

		b, err := uc.bookingRepo.Create(txCtx, draft)
		switch {
		case errors.Is(err, bookingRepo.ErrDuplicateToken):
			return errTokenCollision
		case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
			uc.logger.Warn("CreateBooking: slot %s taken concurrently", draft.StartTime.Format(domain.LocalDateTimeFormat))
			return ErrSlotTaken
		case err != nil:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		created = b
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, errTokenCollision) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	result := resultError
	switch {
	case err == nil:
		result = resultCreated
	case errors.Is(err, ErrInvalidInput):
		result = resultInvalidInput
	case errors.Is(err, ErrUnknownService):
		result = resultUnknownService
	case errors.Is(err, ErrPastTime):
		result = resultPastTime
	case errors.Is(err, ErrOutsideBusinessHours):
		result = resultOutsideHours
	case errors.Is(err, ErrSlotTaken):
		result = resultSlotTaken
	}
	uc.metrics.ObserveBooking(result)
}
