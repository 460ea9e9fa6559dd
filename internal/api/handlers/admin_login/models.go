package admin_login

// LoginRequest HTTP request model
type LoginRequest struct {
	User     string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required"`
}
