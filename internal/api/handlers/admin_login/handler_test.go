package admin_login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/admin"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/admin/models"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

func newHandler(t *testing.T) (*Handler, *admin.Service) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := admin.NewService(admin.Config{
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
	}, logger.NewNop())
	return NewHandler(svc, logger.NewNop()), svc
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body)))
	return rec
}

func TestHandler_Login(t *testing.T) {
	h, svc := newHandler(t)

	rec := post(h, `{"user":"admin","password":"geheim"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   handlers.ErrorKind
	}{
		{name: "wrong password", body: `{"user":"admin","password":"nope"}`, status: http.StatusUnauthorized, kind: handlers.KindUnauthorized},
		{name: "wrong user", body: `{"user":"root","password":"geheim"}`, status: http.StatusUnauthorized, kind: handlers.KindUnauthorized},
		{name: "missing password", body: `{"user":"admin"}`, status: http.StatusBadRequest, kind: handlers.KindInvalidInput},
		{name: "malformed", body: `user=admin`, status: http.StatusBadRequest, kind: handlers.KindInvalidInput},
	}

	h, _ := newHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Error.Kind)
		})
	}
}
