package cancel_by_token

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWashBooking/internal/notifications"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := memory.NewStore()
	_, err := store.Create(context.Background(), domain.BookingDraft{
		CustomerName:  "Jonas",
		CustomerPhone: "+49160",
		CustomerEmail: "jonas@example.com",
		ServiceID:     "reinigung1",
		StartTime:     time.Date(2030, 6, 1, 10, 0, 0, 0, cet),
		EndTime:       time.Date(2030, 6, 1, 11, 0, 0, 0, cet),
		CancelToken:   "secret-token",
	})
	require.NoError(t, err)

	c, err := catalog.New([]domain.ServiceDefinition{{ID: "reinigung1", Name: "Basis", Price: 19.9, DurationMinutes: 60}})
	require.NoError(t, err)

	svc := bookings.NewService(store, c, notifications.Nop{}, nil, cet, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/cancel/{token}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_CancelThenAlreadyCanceled(t *testing.T) {
	router := newRouter(t)

	rec := get(router, "/cancel/secret-token")
	require.Equal(t, http.StatusOK, rec.Code)
	var first CancelResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))
	assert.Equal(t, "canceled", first.Outcome)
	assert.Equal(t, "Ihre Buchung für Basis am 01.06.2030 um 10:00 wurde erfolgreich storniert.", first.Message)
	require.NotNil(t, first.Booking)
	assert.Equal(t, "canceled", first.Booking.Status)

	rec = get(router, "/cancel/secret-token")
	require.Equal(t, http.StatusOK, rec.Code)
	var second CancelResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.Equal(t, "already_canceled", second.Outcome)
	assert.Equal(t, msgAlreadyCanceled, second.Message)
}

func TestHandler_UnknownToken(t *testing.T) {
	rec := get(newRouter(t), "/cancel/unknown")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body handlers.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, handlers.KindNotFound, body.Error.Kind)
	assert.Equal(t, msgNotFound, body.Error.Message)
}
