package cancel_by_token

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

const (
	msgNotFound        = "Buchung nicht gefunden oder bereits storniert."
	msgAlreadyCanceled = "Diese Buchung wurde bereits storniert."
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /cancel/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.service.CancelByToken(r.Context(), token)
	if err != nil {
		h.logger.Error("GET /cancel/{token} - Failed to cancel booking: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Outcome == domain.OutcomeNotFound {
		h.logger.Warn("GET /cancel/{token} - Booking not found")
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("GET /cancel/{token} - Cancellation handled: booking_id=%d, outcome=%s",
		result.Booking.ID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
