package get_busy_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

func seed(t *testing.T, store *memory.Store, token string, start time.Time, minutes int) *domain.Booking {
	t.Helper()
	b, err := store.Create(context.Background(), domain.BookingDraft{
		CustomerName:  "Jonas",
		CustomerPhone: "+49160",
		CustomerEmail: "jonas@example.com",
		ServiceID:     "car_easy",
		StartTime:     start,
		EndTime:       start.Add(time.Duration(minutes) * time.Minute),
		CancelToken:   token,
	})
	require.NoError(t, err)
	return b
}

func TestUseCase_Execute(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	seed(t, store, "b", time.Date(2030, 6, 1, 14, 0, 0, 0, cet), 90)
	seed(t, store, "a", time.Date(2030, 6, 1, 8, 0, 0, 0, cet), 30)
	seed(t, store, "c", time.Date(2030, 6, 2, 8, 0, 0, 0, cet), 30)
	canceled := seed(t, store, "d", time.Date(2030, 6, 1, 11, 0, 0, 0, cet), 30)
	require.NoError(t, store.UpdateStatus(ctx, canceled.ID, domain.StatusConfirmed, domain.StatusCanceled))

	uc := NewUseCase(store, cet, logger.NewNop())

	t.Run("all confirmed", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 3)
		assert.True(t, resp.Slots[0].StartTime.Before(resp.Slots[1].StartTime))
		assert.True(t, resp.Slots[1].StartTime.Before(resp.Slots[2].StartTime))
	})

	t.Run("single day", func(t *testing.T) {
		date := time.Date(2030, 6, 1, 0, 0, 0, 0, cet)
		resp, err := uc.Execute(ctx, &Request{Date: &date})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, time.Date(2030, 6, 1, 8, 0, 0, 0, cet), resp.Slots[0].StartTime)
		assert.Equal(t, time.Date(2030, 6, 1, 15, 30, 0, 0, cet), resp.Slots[1].EndTime)
	})

	t.Run("window", func(t *testing.T) {
		from := time.Date(2030, 6, 1, 8, 30, 0, 0, cet)
		to := time.Date(2030, 6, 1, 14, 0, 0, 0, cet)
		resp, err := uc.Execute(ctx, &Request{From: &from, To: &to})
		require.NoError(t, err)
		// стыкующиеся интервалы не попадают в окно
		assert.Empty(t, resp.Slots)
	})

	t.Run("inverted window", func(t *testing.T) {
		from := time.Date(2030, 6, 2, 0, 0, 0, 0, cet)
		to := time.Date(2030, 6, 1, 0, 0, 0, 0, cet)
		_, err := uc.Execute(ctx, &Request{From: &from, To: &to})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
