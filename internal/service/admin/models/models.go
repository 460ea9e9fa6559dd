package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin единственная роль сессии
const RoleAdmin = "admin"

// Claims содержимое JWT администратора
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResponse выданный токен сессии
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
