package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CarWashBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidStartTime   = "Ungültige Startzeit, erwartet YYYY-MM-DDTHH:MM"
	msgInvalidCustomer    = "Bitte Name, Telefon und eine gültige E-Mail angeben"
	msgUnknownService     = "Unbekannte Leistung"
	msgPastTime           = "Termin liegt in der Vergangenheit"
	msgOutsideHours       = "Außerhalb der Arbeitszeiten"
	msgSlotTaken          = "Zeit bereits belegt"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /book - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /book - Failed to parse start_time=%q: %v", req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /book - Slot taken: service=%s, start=%s", req.Service, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, handlers.KindSlotTaken, msgSlotTaken)

		case errors.Is(err, createBooking.ErrUnknownService):
			h.logger.Warn("POST /book - Unknown service: service=%s", req.Service)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindUnknownService, msgUnknownService)

		case errors.Is(err, createBooking.ErrPastTime):
			h.logger.Warn("POST /book - Start time in the past: start=%s", req.StartTime)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindPastTime, msgPastTime)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /book - Outside business hours: service=%s, start=%s", req.Service, req.StartTime)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindOutsideBusinessHours, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /book - Invalid customer data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomer)

		default:
			h.logger.Error("POST /book - Failed to create booking: service=%s, start=%s, error=%v",
				req.Service, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book - Booking created successfully: booking_id=%d, service=%s, start=%s",
		result.ID, result.ServiceID, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
