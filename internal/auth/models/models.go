package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the coarse access-control tag on a user.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// User is the account aggregate.
//
// Invariants:
//   - Email is unique (case-sensitive exact match, enforced at creation)
//   - Role is one of the two enumerated values
//   - PasswordHash is opaque and never serialized
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Projection is the subset of user fields safe to return in responses.
type Projection struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// Public returns the user's response projection. The password hash is excluded
// by construction, not by serialization tags alone.
func (u User) Public() Projection {
	return Projection{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult pairs the issued token with the user's projection.
type LoginResult struct {
	Token string     `json:"token"`
	User  Projection `json:"user"`
}
