package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashBooking/internal/service/admin"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidCredentials = "Benutzername oder Passwort falsch"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/login - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	result, err := h.service.Login(req.User, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/login - Invalid credentials: user=%q", req.User)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /admin/login - Failed to log in: user=%q, error=%v", req.User, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/login - Admin logged in: user=%q", req.User)
	handlers.RespondJSON(w, http.StatusOK, result)
}
