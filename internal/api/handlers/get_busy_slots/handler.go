package get_busy_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	getBusySlots "github.com/m04kA/SMC-CarWashBooking/internal/usecase/get_busy_slots"
)

const (
	msgInvalidParams = "Ungültige Parameter, erwartet date=YYYY-MM-DD oder from/to=YYYY-MM-DDTHH:MM"
	msgInvalidWindow = "Ungültiger Zeitraum"
)

type Handler struct {
	useCase  GetBusySlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetBusySlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getBusySlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /slots - Failed to get busy slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Busy slots retrieved: count=%d", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
