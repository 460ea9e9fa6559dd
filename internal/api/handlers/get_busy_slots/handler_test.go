package get_busy_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	getBusySlots "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_busy_slots"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore()
	for i, start := range []time.Time{
		time.Date(2030, 6, 1, 10, 0, 0, 0, cet),
		time.Date(2030, 6, 1, 8, 0, 0, 0, cet),
		time.Date(2030, 6, 2, 8, 0, 0, 0, cet),
	} {
		_, err := store.Create(context.Background(), domain.BookingDraft{
			CustomerName:  "Jonas",
			CustomerPhone: "+49160",
			CustomerEmail: "jonas@example.com",
			ServiceID:     "car_easy",
			StartTime:     start.UTC(),
			EndTime:       start.Add(30 * time.Minute).UTC(),
			CancelToken:   string(rune('a' + i)),
		})
		require.NoError(t, err)
	}
	uc := getBusySlots.NewUseCase(store, cet, logger.NewNop())
	return NewHandler(uc, cet, logger.NewNop())
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_AllSlotsSorted(t *testing.T) {
	rec := get(newHandler(t), "/api/slots")

	require.Equal(t, http.StatusOK, rec.Code)
	var slots []BusySlot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&slots))
	require.Len(t, slots, 3)
	assert.Equal(t, BusySlot{StartTime: "2030-06-01T08:00:00", EndTime: "2030-06-01T08:30:00"}, slots[0])
	assert.Equal(t, "2030-06-02T08:00:00", slots[2].StartTime)
}

func TestHandler_DateFilter(t *testing.T) {
	rec := get(newHandler(t), "/api/busy-slots?date=2030-06-01")

	require.Equal(t, http.StatusOK, rec.Code)
	var slots []BusySlot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&slots))
	require.Len(t, slots, 2)
	assert.Equal(t, "2030-06-01T10:00:00", slots[1].StartTime)
}

func TestHandler_EmptyIsArray(t *testing.T) {
	rec := get(newHandler(t), "/api/slots?date=2031-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_InvalidParams(t *testing.T) {
	for _, target := range []string{
		"/api/slots?date=01.06.2030",
		"/api/slots?from=2030-06-01T10:00&to=yesterday",
		"/api/slots?from=2030-06-01T10:00&to=2030-06-01T09:00",
	} {
		rec := get(newHandler(t), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
