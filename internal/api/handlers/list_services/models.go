package list_services

import "github.com/m04kA/SMC-CarWashBooking/internal/domain"

// ServiceResponse HTTP модель услуги
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	Description     string  `json:"description,omitempty"`
}

// FromDomain конвертирует каталог в HTTP ответ, порядок сохраняется
func FromDomain(defs []domain.ServiceDefinition) []ServiceResponse {
	resp := make([]ServiceResponse, len(defs))
	for i, d := range defs {
		resp[i] = ServiceResponse{
			ID:              d.ID,
			Name:            d.Name,
			Price:           d.Price,
			DurationMinutes: d.DurationMinutes,
			Description:     d.Description,
		}
	}
	return resp
}
