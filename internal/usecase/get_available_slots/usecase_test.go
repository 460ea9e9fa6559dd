package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type failingRepo struct{}

func (failingRepo) ListConfirmed(context.Context, domain.TimeRange) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.ServiceDefinition{
		{ID: "car_spa", Name: "CAR SPA", Price: 24, DurationMinutes: 30},
		{ID: "car_wellness", Name: "CAR WELLNESS", Price: 86, DurationMinutes: 120},
	})
	require.NoError(t, err)
	return c
}

func testHours() domain.BusinessHours {
	return domain.BusinessHours{Open: "07:30", Close: "18:00", Location: cet}
}

func newUseCase(t *testing.T, repo BookingRepository, now time.Time) *UseCase {
	t.Helper()
	uc := NewUseCase(testCatalog(t), repo, testHours(), 30, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestUseCase_Execute_Grid(t *testing.T) {
	uc := newUseCase(t, memory.NewStore(), time.Date(2030, 5, 1, 8, 0, 0, 0, cet))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "car_wellness", Date: time.Date(2030, 6, 1, 0, 0, 0, 0, cet)})
	require.NoError(t, err)

	// 07:30 ... 16:00: последний старт, при котором 120 минут заканчиваются к 18:00
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, time.Date(2030, 6, 1, 7, 30, 0, 0, cet), resp.Slots[0].StartTime)
	assert.Equal(t, time.Date(2030, 6, 1, 16, 0, 0, 0, cet), resp.Slots[17].StartTime)
	assert.Equal(t, time.Date(2030, 6, 1, 18, 0, 0, 0, cet), resp.Slots[17].EndTime)
	assert.Equal(t, 120, resp.DurationMinutes)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestUseCase_Execute_MarksBusyAndPast(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.BookingDraft{
		CustomerName:  "Jonas",
		CustomerPhone: "+49160",
		CustomerEmail: "jonas@example.com",
		ServiceID:     "car_spa",
		StartTime:     time.Date(2030, 6, 1, 10, 0, 0, 0, cet),
		EndTime:       time.Date(2030, 6, 1, 10, 30, 0, 0, cet),
		CancelToken:   "tok",
	})
	require.NoError(t, err)

	uc := newUseCase(t, store, time.Date(2030, 6, 1, 9, 0, 0, 0, cet))

	resp, err := uc.Execute(ctx, &Request{ServiceID: "car_spa", Date: time.Date(2030, 6, 1, 0, 0, 0, 0, cet)})
	require.NoError(t, err)

	availability := make(map[string]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		availability[s.StartTime.Format(domain.TimeFormat)] = s.Available
	}

	assert.False(t, availability["07:30"], "past")
	assert.False(t, availability["08:30"], "past")
	assert.True(t, availability["09:00"], "starts now")
	assert.True(t, availability["09:30"], "adjacent to booking")
	assert.False(t, availability["10:00"], "booked")
	assert.True(t, availability["10:30"], "adjacent to booking")
	assert.True(t, availability["17:30"])
}

func TestUseCase_Execute_CanceledBookingFreesSlot(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	b, err := store.Create(ctx, domain.BookingDraft{
		CustomerName:  "Jonas",
		CustomerPhone: "+49160",
		CustomerEmail: "jonas@example.com",
		ServiceID:     "car_spa",
		StartTime:     time.Date(2030, 6, 1, 10, 0, 0, 0, cet),
		EndTime:       time.Date(2030, 6, 1, 10, 30, 0, 0, cet),
		CancelToken:   "tok",
	})
	require.NoError(t, err)
	require.NoError(t, store.UpdateStatus(ctx, b.ID, domain.StatusConfirmed, domain.StatusCanceled))

	uc := newUseCase(t, store, time.Date(2030, 5, 1, 9, 0, 0, 0, cet))

	resp, err := uc.Execute(ctx, &Request{ServiceID: "car_spa", Date: time.Date(2030, 6, 1, 0, 0, 0, 0, cet)})
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, s.StartTime.Format(domain.TimeFormat))
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	now := time.Date(2030, 5, 1, 8, 0, 0, 0, cet)
	day := time.Date(2030, 6, 1, 0, 0, 0, 0, cet)

	tests := []struct {
		name    string
		repo    BookingRepository
		req     *Request
		wantErr error
	}{
		{name: "missing service", repo: memory.NewStore(), req: &Request{Date: day}, wantErr: ErrInvalidInput},
		{name: "missing date", repo: memory.NewStore(), req: &Request{ServiceID: "car_spa"}, wantErr: ErrInvalidInput},
		{name: "unknown service", repo: memory.NewStore(), req: &Request{ServiceID: "car_gold", Date: day}, wantErr: ErrUnknownService},
		{name: "repository failure", repo: failingRepo{}, req: &Request{ServiceID: "car_spa", Date: day}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(t, tt.repo, now).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
