package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openfleet/drivers-api/internal/model"
	"github.com/openfleet/drivers-api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents the register endpoint request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login endpoint request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the refresh endpoint request body. Both the
// expired access token and the opaque refresh token are required.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	pair, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, pair)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, pair)
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, pair)
}

// handleAuthError maps service errors to Problem Details responses
func (h *AuthHandler) handleAuthError(w http.ResponseWriter, err error) {
	if createErr, ok := service.AsCreateError(err); ok {
		WriteError(w, model.NewCreateFailedError(createErr.Reasons))
		return
	}

	switch {
	case errors.Is(err, service.ErrValidationFailed):
		WriteError(w, model.NewValidationError(err.Error()))
	case errors.Is(err, service.ErrEmailAlreadyExists):
		WriteError(w, model.NewEmailExistsError())
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, model.NewInvalidCredentialsError())
	case errors.Is(err, service.ErrInvalidToken):
		WriteError(w, model.NewInvalidTokenError())
	case errors.Is(err, service.ErrTooManyAttempts):
		WriteError(w, model.NewRateLimitedError())
	default:
		slog.Error("unhandled auth error", "error", err)
		WriteError(w, model.NewInternalError())
	}
}
