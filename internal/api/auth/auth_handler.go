package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bakeryhq/bakery-admin/internal/api"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

type Handler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewHandler(authService AuthService, logger *slog.Logger) *Handler {
	return &Handler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account. The password is stored as a salted hash.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.RegisterRequest true "Registration parameters"
// @Success      201 {object} types.RegisterResponse "User registered"
// @Failure      400 {object} types.Response "Validation error or email taken"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))

	var req types.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.authService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrAlreadyRegistered) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, types.RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a bearer token valid for 24 hours.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.LoginRequest true "Credentials"
// @Success      200 {object} types.LoginResponse "Token and user"
// @Failure      400 {object} types.Response "Missing fields"
// @Failure      401 {object} types.Response "Invalid email or password"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Email and password required")
		return
	}

	client := types.ClientContext{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password, client)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			// One message for both unknown email and wrong password.
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to log in")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// Profile godoc
// @Summary      Current user profile
// @Description  Returns the authenticated, active user attached by the request gate.
// @Tags         Auth
// @Produce      json
// @Success      200 {object} map[string]interface{} "Authenticated user"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /api/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"message": "You are authenticated and active",
		"user":    user.Public(),
	})
}
