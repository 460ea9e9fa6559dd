package domain

import "time"

// ServiceDefinition услуга мойки из каталога. Неизменяема после загрузки.
type ServiceDefinition struct {
	ID              string
	Name            string
	Price           float64 // EUR
	DurationMinutes int
	Description     string
}

// Duration returns the fixed service duration
func (s ServiceDefinition) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
