package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrInvalidDefinition возвращается при некорректном описании услуги
	ErrInvalidDefinition = errors.New("catalog: invalid service definition")
)
