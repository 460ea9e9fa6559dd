package admin_login

import "github.com/m04kA/SMC-CarWashBooking/internal/service/admin/models"

type AdminService interface {
	Login(username, password string) (*models.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
