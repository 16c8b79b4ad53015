package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "leavedesk/pkg/domain-errors"
)

// DateLayout is the wire format for leave dates. Calendar dates only, no time
// component.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a leave request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision validates a requested transition target. Only approved and rejected
// are legal decisions; pending is the initial state, never a target.
func Decision(raw string) (Status, error) {
	switch Status(raw) {
	case StatusApproved, StatusRejected:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "status must be approved or rejected")
	}
}

// LeaveRequest is an employee's request to be absent for a date range.
//
// Invariants:
//   - EndDate >= StartDate
//   - Reason is non-empty after trimming
//   - Status transitions pending -> approved|rejected only
//   - CreatedAt is server-assigned and immutable
type LeaveRequest struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CanDecide reports whether the request is still open for a decision.
func (l LeaveRequest) CanDecide() error {
	if l.Status != StatusPending {
		return dErrors.New(dErrors.CodeConflict, "leave request is already decided")
	}
	return nil
}

// WithOwner is a leave request joined with its owner's display name at the
// persistence boundary.
type WithOwner struct {
	LeaveRequest
	OwnerName string
}

// View is the response projection of a leave request, with dates rendered in
// the wire format and the owner's name denormalized.
type View struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EmployeeName string    `json:"employee_name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewView renders a joined record as a response projection.
func NewView(record WithOwner) View {
	return View{
		ID:           record.ID.String(),
		UserID:       record.UserID.String(),
		EmployeeName: record.OwnerName,
		StartDate:    record.StartDate.Format(DateLayout),
		EndDate:      record.EndDate.Format(DateLayout),
		Reason:       record.Reason,
		Status:       string(record.Status),
		CreatedAt:    record.CreatedAt,
	}
}

// CreateRequest is the leave submission payload. Dates arrive as text and are
// parsed against DateLayout.
type CreateRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// UpdateStatusRequest is the admin decision payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
