package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services := FromDomain(h.catalog.ListAll())

	h.logger.Info("GET /services - Catalog retrieved: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, services)
}
