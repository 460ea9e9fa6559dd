package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyBookingCanceled(b *domain.Booking, s domain.ServiceDefinition, channel string) {
	m.Called(b, s, channel)
}

type failingRepo struct{ BookingRepository }

func (failingRepo) GetByToken(context.Context, string) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) ListAll(context.Context) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func newTestService(t *testing.T) (*Service, *memory.Store, *notifierMock) {
	t.Helper()
	cat, err := catalog.New([]domain.ServiceDefinition{
		{ID: "car_spa", Name: "CAR SPA®", Price: 24, DurationMinutes: 30},
	})
	require.NoError(t, err)

	store := memory.NewStore()
	notifier := &notifierMock{}
	notifier.On("NotifyBookingCanceled", mock.Anything, mock.Anything, mock.Anything).Return()

	return NewService(store, cat, notifier, nil, cet, logger.NewNop()), store, notifier
}

func seed(t *testing.T, store *memory.Store, token string, start time.Time) *domain.Booking {
	t.Helper()
	b, err := store.Create(context.Background(), domain.BookingDraft{
		CustomerName:  "Erika",
		CustomerPhone: "+49170",
		CustomerEmail: "erika@example.com",
		ServiceID:     "car_spa",
		StartTime:     start,
		EndTime:       start.Add(30 * time.Minute),
		CancelToken:   token,
	})
	require.NoError(t, err)
	return b
}

func TestService_CancelByToken_Idempotent(t *testing.T) {
	svc, store, notifier := newTestService(t)
	seed(t, store, "tok", time.Date(2030, 6, 1, 10, 0, 0, 0, cet))
	ctx := context.Background()

	first, err := svc.CancelByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCanceled, first.Outcome)
	require.NotNil(t, first.Booking)
	assert.Equal(t, "CAR SPA®", first.Booking.ServiceName)
	assert.Equal(t, "01.06.2030", first.Booking.Date)
	assert.Equal(t, "10:00", first.Booking.Time)

	second, err := svc.CancelByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyCanceled, second.Outcome)

	third, err := svc.CancelByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyCanceled, third.Outcome)

	notifier.AssertNumberOfCalls(t, "NotifyBookingCanceled", 1)
}

func TestService_CancelByToken_NotFound(t *testing.T) {
	svc, _, notifier := newTestService(t)

	for _, token := range []string{"missing", "", "   "} {
		res, err := svc.CancelByToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeNotFound, res.Outcome)
		assert.Nil(t, res.Booking)
	}
	notifier.AssertNotCalled(t, "NotifyBookingCanceled", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelByToken_RepositoryError(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.bookingRepo = failingRepo{}

	_, err := svc.CancelByToken(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_CancelByID(t *testing.T) {
	svc, store, notifier := newTestService(t)
	b := seed(t, store, "tok", time.Date(2030, 6, 1, 10, 0, 0, 0, cet))
	ctx := context.Background()

	res, err := svc.CancelByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCanceled, res.Outcome)
	notifier.AssertCalled(t, "NotifyBookingCanceled", mock.Anything, mock.Anything, "admin")

	res, err = svc.CancelByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyCanceled, res.Outcome)

	res, err = svc.CancelByID(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFound, res.Outcome)

	_, err = svc.CancelByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ConcurrentCancel(t *testing.T) {
	svc, store, notifier := newTestService(t)
	seed(t, store, "tok", time.Date(2030, 6, 1, 10, 0, 0, 0, cet))

	const n = 10
	outcomes := make(chan domain.CancellationOutcome, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.CancelByToken(context.Background(), "tok")
			if assert.NoError(t, err) {
				outcomes <- res.Outcome
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	counts := map[domain.CancellationOutcome]int{}
	for o := range outcomes {
		counts[o]++
	}
	assert.Equal(t, 1, counts[domain.OutcomeCanceled])
	assert.Equal(t, n-1, counts[domain.OutcomeAlreadyCanceled])
	notifier.AssertNumberOfCalls(t, "NotifyBookingCanceled", 1)
}

func TestService_ListAllAndGetByID(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	early := seed(t, store, "a", time.Date(2030, 6, 1, 9, 0, 0, 0, cet))
	seed(t, store, "b", time.Date(2030, 6, 2, 9, 0, 0, 0, cet))
	_, err := svc.CancelByID(ctx, early.ID)
	require.NoError(t, err)

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list.Bookings, 2)
	assert.Equal(t, "02.06.2030", list.Bookings[0].Date)
	assert.Equal(t, "canceled", list.Bookings[1].Status)
	assert.NotNil(t, list.Bookings[1].CanceledAt)

	got, err := svc.GetByID(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, "Erika", got.CustomerName)
	assert.Equal(t, 24.0, got.ServicePrice)

	_, err = svc.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListAll_RepositoryError(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.bookingRepo = failingRepo{}

	_, err := svc.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
