package admin

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("admin.service: invalid credentials")

	// ErrInvalidToken возвращается, когда токен сессии невалиден или истёк
	ErrInvalidToken = errors.New("admin.service: invalid token")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin.service: internal error")
)
