package store

import (
	"context"

	"github.com/google/uuid"

	"leavedesk/internal/auth/models"
)

// UserStore is the persistence boundary for user accounts.
//
// Create returns sentinel.ErrAlreadyUsed when the email is taken; Find* return
// sentinel.ErrNotFound for absent records. Email matching is case-sensitive
// exact match.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
