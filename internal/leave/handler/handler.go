package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"leavedesk/internal/leave/models"
	"leavedesk/internal/platform/middleware"
	dErrors "leavedesk/pkg/domain-errors"
	"leavedesk/pkg/platform/httputil"
)

// Service defines the interface for leave request operations.
type Service interface {
	Create(ctx context.Context, callerID uuid.UUID, req models.CreateRequest) (models.View, error)
	List(ctx context.Context, callerID uuid.UUID) ([]models.View, error)
	Decide(ctx context.Context, callerID uuid.UUID, leaveID string, status string) (models.View, error)
}

// Handler handles the leave request endpoints. All routes require a bearer
// token; the caller identity comes from the request context.
type Handler struct {
	logger *slog.Logger
	leaves Service
}

// New creates a new leave Handler.
func New(leaves Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		leaves: leaves,
	}
}

// Register registers the leave routes on an authenticated router group.
func (h *Handler) Register(r chi.Router) {
	r.Get("/leaves", h.handleList)
	r.Post("/leaves", h.handleCreate)
	r.Patch("/leaves/{id}/status", h.handleDecide)
}

// callerID extracts the authenticated user id from the request context. The
// middleware guarantees presence but not shape, so a malformed subject is
// treated as a bad credential.
func (h *Handler) callerID(ctx context.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.GetUserID(ctx))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return id, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid leave request body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	caller, err := h.callerID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.leaves.Create(ctx, caller, req)
	if err != nil {
		h.writeServiceError(ctx, w, "create leave failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := h.callerID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.leaves.List(ctx, caller)
	if err != nil {
		h.writeServiceError(ctx, w, "list leaves failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid status update body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	caller, err := h.callerID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.leaves.Decide(ctx, caller, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeServiceError(ctx, w, "decide leave failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, view)
}

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
