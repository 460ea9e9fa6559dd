package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/bookings/models"
)

// Service сервис для отмены и просмотра бронирований
type Service struct {
	bookingRepo BookingRepository
	catalog     Catalog
	notifier    Notifier
	metrics     Metrics
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalog Catalog,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		notifier:    notifier,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// CancelByToken отменяет бронирование по токену из ссылки клиента.
// Идемпотентна: повторный вызов возвращает OutcomeAlreadyCanceled, неизвестный токен
// возвращает OutcomeNotFound. Ошибка возвращается только при сбое хранилища.
func (s *Service) CancelByToken(ctx context.Context, token string) (*models.CancelResult, error) {
	token = strings.TrimSpace(token)
	s.logger.Info("CancelByToken: cancelling booking by token")

	if token == "" {
		s.observe(models.ChannelToken, domain.OutcomeNotFound)
		return &models.CancelResult{Outcome: domain.OutcomeNotFound}, nil
	}

	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByToken: booking not found")
			s.observe(models.ChannelToken, domain.OutcomeNotFound)
			return &models.CancelResult{Outcome: domain.OutcomeNotFound}, nil
		}
		s.logger.Error("CancelByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	return s.cancel(ctx, booking, models.ChannelToken)
}

// CancelByID отменяет бронирование администратором.
// Авторизация выполняется на уровне HTTP (middleware).
func (s *Service) CancelByID(ctx context.Context, id int64) (*models.CancelResult, error) {
	s.logger.Info("CancelByID: cancelling booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByID: booking id=%d not found", id)
			s.observe(models.ChannelAdmin, domain.OutcomeNotFound)
			return &models.CancelResult{Outcome: domain.OutcomeNotFound}, nil
		}
		s.logger.Error("CancelByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: CancelByID - repository error: %v", ErrInternal, err)
	}

	return s.cancel(ctx, booking, models.ChannelAdmin)
}

// ListAll возвращает все бронирования (включая отменённые), сначала поздние
func (s *Service) ListAll(ctx context.Context) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: fetching all bookings")

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *s.toResponse(b))
	}

	s.logger.Info("ListAll: successfully fetched %d bookings", len(bookings))
	return resp, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return s.toResponse(booking), nil
}

// cancel переводит бронирование confirmed -> canceled одним compare-and-set.
// Проигравший гонку вызов получает OutcomeAlreadyCanceled.
func (s *Service) cancel(ctx context.Context, booking *domain.Booking, channel string) (*models.CancelResult, error) {
	if booking.IsCancelled() {
		s.logger.Info("Cancel[%s]: booking id=%d already canceled", channel, booking.ID)
		s.observe(channel, domain.OutcomeAlreadyCanceled)
		return &models.CancelResult{Outcome: domain.OutcomeAlreadyCanceled, Booking: s.toResponse(booking)}, nil
	}

	err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed, domain.StatusCanceled)
	switch {
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Info("Cancel[%s]: booking id=%d canceled concurrently", channel, booking.ID)
		booking.Status = domain.StatusCanceled
		s.observe(channel, domain.OutcomeAlreadyCanceled)
		return &models.CancelResult{Outcome: domain.OutcomeAlreadyCanceled, Booking: s.toResponse(booking)}, nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("Cancel[%s]: booking id=%d disappeared", channel, booking.ID)
		s.observe(channel, domain.OutcomeNotFound)
		return &models.CancelResult{Outcome: domain.OutcomeNotFound}, nil
	case err != nil:
		s.logger.Error("Cancel[%s]: failed to update booking id=%d: %v", channel, booking.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	now := time.Now()
	booking.Status = domain.StatusCanceled
	booking.CanceledAt = &now

	s.logger.Info("Cancel[%s]: successfully canceled booking id=%d", channel, booking.ID)
	s.observe(channel, domain.OutcomeCanceled)

	service, _ := s.catalog.Lookup(booking.ServiceID)
	s.notifier.NotifyBookingCanceled(booking, service, channel)

	return &models.CancelResult{Outcome: domain.OutcomeCanceled, Booking: s.toResponse(booking)}, nil
}

func (s *Service) toResponse(b *domain.Booking) *models.BookingResponse {
	service, err := s.catalog.Lookup(b.ServiceID)
	if err != nil {
		return models.FromDomainBooking(b, nil, s.location)
	}
	return models.FromDomainBooking(b, &service, s.location)
}

func (s *Service) observe(channel string, outcome domain.CancellationOutcome) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveCancellation(channel, string(outcome))
}
