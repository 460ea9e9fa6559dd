package admin_cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "Ungültige Buchungs-ID"
	msgNotFound         = "Buchung nicht gefunden"
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

// Handle POST /api/admin/cancel/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingIDStr := mux.Vars(r)["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/cancel/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CancelByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /admin/cancel/{id} - Invalid booking ID: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /admin/cancel/{id} - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Outcome == domain.OutcomeNotFound {
		h.logger.Warn("POST /admin/cancel/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("POST /admin/cancel/{id} - Cancellation handled: booking_id=%d, outcome=%s",
		bookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
