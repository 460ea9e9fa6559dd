package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarWashBooking/internal/service/admin/models"
	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

type verifierStub struct{}

func (verifierStub) VerifyToken(tokenStr string) (*models.Claims, error) {
	if tokenStr != "good" {
		return nil, errors.New("invalid token")
	}
	return &models.Claims{Role: models.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"}}, nil
}

func TestAdminAuth(t *testing.T) {
	var seenAdmin string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAdmin, _ = GetAdmin(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := AdminAuth(verifierStub{}, logger.NewNop())(next)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer good", status: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer good", status: http.StatusNoContent},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "no scheme", header: "good", status: http.StatusUnauthorized},
		{name: "basic", header: "Basic YWRtaW46Z2VoZWlt", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer forged", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenAdmin = ""
			req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "admin", seenAdmin)
			}
		})
	}
}
