package store

import (
	"context"

	"github.com/google/uuid"

	"leavedesk/internal/leave/models"
)

// LeaveStore is the persistence boundary for leave requests.
//
// List methods resolve the owner's display name at the persistence boundary
// (join or secondary lookup) so callers never traverse relationships. Decide
// atomically checks the pending precondition and applies the new status,
// returning sentinel.ErrNotFound for unknown ids and sentinel.ErrInvalidState
// for requests that are already decided.
type LeaveStore interface {
	Create(ctx context.Context, leave models.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (models.WithOwner, error)
	ListAll(ctx context.Context) ([]models.WithOwner, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WithOwner, error)
	Decide(ctx context.Context, id uuid.UUID, status models.Status) (models.WithOwner, error)
}
