package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate    = "Ungültiges Datum, erwartet YYYY-MM-DD"
	msgMissingService = "Parameter service fehlt"
	msgUnknownService = "Unbekannte Leistung"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/available-slots?service=car_spa&date=2030-06-01
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	serviceID := query.Get("service")
	dateStr := query.Get("date")

	if serviceID == "" {
		h.logger.Warn("GET /available-slots - Missing service parameter")
		handlers.RespondBadRequest(w, msgMissingService)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date=%q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrUnknownService):
			h.logger.Warn("GET /available-slots - Unknown service: service=%s", serviceID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindUnknownService, msgUnknownService)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: service=%s, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: service=%s, date=%s, count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
