package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/admin/models"
)

type contextKey string

const adminKey contextKey = "admin_subject"

const (
	msgMissingToken = "Anmeldung erforderlich"
	msgInvalidToken = "Sitzung ungültig oder abgelaufen"
)

// TokenVerifier проверяет токен сессии администратора
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*models.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает только запросы с валидным заголовком "Authorization: Bearer <jwt>"
func AdminAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("%s %s - Missing authorization header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				logger.Warn("%s %s - Malformed authorization header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin возвращает имя администратора из контекста
func GetAdmin(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(adminKey).(string)
	return subject, ok
}
