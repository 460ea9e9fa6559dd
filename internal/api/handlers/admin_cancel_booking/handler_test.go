package admin_cancel_booking

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

	"github.com/m04kA/SMC-CarWashBooking/internal/catalog"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWashBooking/internal/notifications"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

var cet = time.FixedZone("CET", 60*60)

func newRouter(t *testing.T) (*mux.Router, int64) {
	t.Helper()
	store := memory.NewStore()
	b, err := store.Create(context.Background(), domain.BookingDraft{
		CustomerName:  "Jonas",
		CustomerPhone: "+49160",
		CustomerEmail: "jonas@example.com",
		ServiceID:     "reinigung1",
		StartTime:     time.Date(2030, 6, 1, 10, 0, 0, 0, cet),
		EndTime:       time.Date(2030, 6, 1, 11, 0, 0, 0, cet),
		CancelToken:   "tok",
	})
	require.NoError(t, err)

	c, err := catalog.New([]domain.ServiceDefinition{{ID: "reinigung1", Name: "Basis", Price: 19.9, DurationMinutes: 60}})
	require.NoError(t, err)

	svc := bookings.NewService(store, c, notifications.Nop{}, nil, cet, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/api/admin/cancel/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)
	return router, b.ID
}

func post(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestHandler_Cancel(t *testing.T) {
	router, id := newRouter(t)
	target := "/api/admin/cancel/" + jsonNumber(id)

	rec := post(router, target)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp CancelResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "canceled", resp.Outcome)

	rec = post(router, target)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "already_canceled", resp.Outcome)
}

func TestHandler_Cancel_Errors(t *testing.T) {
	router, _ := newRouter(t)

	assert.Equal(t, http.StatusNotFound, post(router, "/api/admin/cancel/999").Code)
	assert.Equal(t, http.StatusBadRequest, post(router, "/api/admin/cancel/abc").Code)
	assert.Equal(t, http.StatusBadRequest, post(router, "/api/admin/cancel/0").Code)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
