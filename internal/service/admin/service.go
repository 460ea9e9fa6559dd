package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CarWashBooking/internal/service/admin/models"
)

const issuer = "carwash-booking"

// Config учётные данные администратора и параметры сессии
type Config struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
	TokenTTL     time.Duration
}

// Service вход администратора и проверка сессий (HS256 JWT)
type Service struct {
	cfg          Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(cfg Config, logger Logger) *Service {
	return &Service{
		cfg:          cfg,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Login проверяет логин и пароль и выдаёт токен сессии
func (s *Service) Login(username, password string) (*models.LoginResponse, error) {
	s.logger.Info("Login: attempt for user=%q", username)

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	// Хеш проверяется независимо от совпадения логина
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))

	if !userOK || passErr != nil {
		if passErr != nil && !errors.Is(passErr, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("Login: password hash check failed: %v", passErr)
		}
		s.logger.Warn("Login: invalid credentials for user=%q", username)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := models.Claims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cfg.Username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user=%q logged in, token expires at %s", username, expiresAt.Format(time.RFC3339))
	return &models.LoginResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken проверяет подпись, срок действия и роль токена
func (s *Service) VerifyToken(tokenStr string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.timeProvider.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Role != models.RoleAdmin || claims.Subject != s.cfg.Username {
		return nil, fmt.Errorf("%w: unexpected subject or role", ErrInvalidToken)
	}

	return claims, nil
}

// HashPassword возвращает bcrypt-хеш пароля для конфигурации
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: HashPassword: %v", ErrInternal, err)
	}
	return string(hash), nil
}
