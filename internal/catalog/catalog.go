package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

// Catalog неизменяемый справочник услуг мойки
type Catalog struct {
	services []domain.ServiceDefinition
	index    map[string]int
}

// New создает каталог; порядок определений сохраняется для ListAll
func New(defs []domain.ServiceDefinition) (*Catalog, error) {
	c := &Catalog{
		services: make([]domain.ServiceDefinition, 0, len(defs)),
		index:    make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidDefinition)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("%w: service %q has no name", ErrInvalidDefinition, def.ID)
		}
		if def.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %q duration must be positive", ErrInvalidDefinition, def.ID)
		}
		if def.Price < 0 {
			return nil, fmt.Errorf("%w: service %q price must not be negative", ErrInvalidDefinition, def.ID)
		}
		if _, exists := c.index[def.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDefinition, def.ID)
		}

		c.index[def.ID] = len(c.services)
		c.services = append(c.services, def)
	}

	return c, nil
}

// Lookup возвращает услугу по идентификатору
func (c *Catalog) Lookup(serviceID string) (domain.ServiceDefinition, error) {
	i, ok := c.index[serviceID]
	if !ok {
		return domain.ServiceDefinition{}, ErrServiceNotFound
	}
	return c.services[i], nil
}

// ListAll возвращает копию списка услуг в порядке определения
func (c *Catalog) ListAll() []domain.ServiceDefinition {
	out := make([]domain.ServiceDefinition, len(c.services))
	copy(out, c.services)
	return out
}
