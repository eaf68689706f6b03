package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AuthHandler handles the cosmetic login and register forms. There is no
// account store and no credentials are checked against anything: requests are
// validated for shape only and answered with a success message.
type AuthHandler struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		validate: validator.New(),
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type authResponse struct {
	Message string `json:"message"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, authFieldErrors(err), h.logger)
		return
	}

	h.logger.Info().Str("email", req.Email).Msg("login form accepted")
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful!"})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeFieldErrors(w, authFieldErrors(err), h.logger)
		return
	}

	h.logger.Info().Str("email", req.Email).Msg("registration form accepted")
	writeJSON(w, http.StatusOK, authResponse{Message: "Registration successful!"})
}

// authFieldErrors renders validator failures as per-field messages.
func authFieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["form"] = err.Error()
		return fields
	}

	for _, fe := range invalid {
		switch fe.StructField() {
		case "Name":
			fields["name"] = "Name is required"
		case "Email":
			fields["email"] = "A valid email is required"
		case "Password":
			if fe.Tag() == "min" {
				fields["password"] = "Password must be at least 6 characters"
			} else {
				fields["password"] = "Password is required"
			}
		case "ConfirmPassword":
			fields["confirmPassword"] = "Passwords do not match"
		}
	}
	return fields
}
