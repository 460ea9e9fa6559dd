package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/booking"
)

// Store хранилище бронирований в памяти процесса.
// Повторяет контракт PostgreSQL-репозитория, включая ошибки пакета booking,
// поэтому use case'ы работают с обоими хранилищами одинаково.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]*domain.Booking
	byToken  map[string]int64
	now      func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[int64]*domain.Booking),
		byToken:  make(map[string]int64),
		now:      time.Now,
	}
}

// Create сохраняет подтверждённое бронирование.
// Проверки токена и пересечения выполняются под той же блокировкой, что и вставка.
func (s *Store) Create(_ context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byToken[draft.CancelToken]; exists {
		return nil, booking.ErrDuplicateToken
	}

	candidate := domain.Interval{Start: draft.StartTime, End: draft.EndTime}
	for _, b := range s.bookings {
		if b.IsActive() && b.Interval().Overlaps(candidate) {
			return nil, booking.ErrSlotNotAvailable
		}
	}

	s.nextID++
	b := &domain.Booking{
		ID:            s.nextID,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		CustomerEmail: draft.CustomerEmail,
		ServiceID:     draft.ServiceID,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		Status:        domain.StatusConfirmed,
		CancelToken:   draft.CancelToken,
		CreatedAt:     s.now(),
	}
	s.bookings[b.ID] = b
	s.byToken[b.CancelToken] = b.ID

	return clone(b), nil
}

// GetByID возвращает копию бронирования по ID
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return clone(b), nil
}

// GetByToken возвращает копию бронирования по токену отмены
func (s *Store) GetByToken(_ context.Context, token string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return clone(s.bookings[id]), nil
}

// FindOverlapping возвращает подтверждённые бронирования, пересекающие [start, end)
func (s *Store) FindOverlapping(_ context.Context, start, end time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidate := domain.Interval{Start: start, End: end}
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.IsActive() && b.Interval().Overlaps(candidate) {
			result = append(result, clone(b))
		}
	}
	sortByStart(result)
	return result, nil
}

// ListAll возвращает все бронирования, сначала поздние
func (s *Store) ListAll(_ context.Context) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		result = append(result, clone(b))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID > result[j].ID
		}
		return result[i].StartTime.After(result[j].StartTime)
	})
	return result, nil
}

// ListConfirmed возвращает подтверждённые бронирования, пересекающие окно rng
func (s *Store) ListConfirmed(_ context.Context, rng domain.TimeRange) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if !b.IsActive() {
			continue
		}
		if rng.To != nil && !b.StartTime.Before(*rng.To) {
			continue
		}
		if rng.From != nil && !b.EndTime.After(*rng.From) {
			continue
		}
		result = append(result, clone(b))
	}
	sortByStart(result)
	return result, nil
}

// UpdateStatus атомарно меняет статус from -> to
func (s *Store) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return booking.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if b.Status != from {
		return booking.ErrStatusConflict
	}

	b.Status = to
	if to == domain.StatusCanceled {
		now := s.now()
		b.CanceledAt = &now
	}
	return nil
}

func clone(b *domain.Booking) *domain.Booking {
	c := *b
	if b.CanceledAt != nil {
		t := *b.CanceledAt
		c.CanceledAt = &t
	}
	return &c
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}
