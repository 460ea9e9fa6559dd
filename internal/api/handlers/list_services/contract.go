package list_services

import "github.com/m04kA/SMC-CarWashBooking/internal/domain"

type Catalog interface {
	ListAll() []domain.ServiceDefinition
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
