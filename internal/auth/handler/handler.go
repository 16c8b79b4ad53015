package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	authModel "leavedesk/internal/auth/models"
	"leavedesk/internal/platform/middleware"
	dErrors "leavedesk/pkg/domain-errors"
	"leavedesk/pkg/platform/httputil"
)

// Service defines the interface for account operations.
type Service interface {
	Register(ctx context.Context, req authModel.RegisterRequest) (authModel.Projection, error)
	Login(ctx context.Context, req authModel.LoginRequest) (authModel.LoginResult, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// Handler handles the account endpoints.
type Handler struct {
	logger *slog.Logger
	auth   Service
}

// New creates a new auth Handler.
func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		auth:   auth,
	}
}

// Register registers the unauthenticated account routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

// RegisterProtected registers the routes that require a bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/auth/logout", h.handleLogout)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authModel.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid register request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	projection, err := h.auth.Register(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "register failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, projection)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authModel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid login request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.auth.Login(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "login failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jti := middleware.GetTokenJTI(ctx)
	expiry := middleware.GetTokenExpiry(ctx)
	if err := h.auth.Logout(ctx, jti, expiry); err != nil {
		h.writeServiceError(ctx, w, "logout failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError logs at a severity matching the error class and writes the
// JSON envelope. Internal failures keep their details out of the response.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
