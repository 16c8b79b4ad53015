package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authModel "leavedesk/internal/auth/models"
	"leavedesk/internal/leave/models"
	"leavedesk/internal/platform/metrics"
	dErrors "leavedesk/pkg/domain-errors"
	"leavedesk/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// LeaveStore is the persistence surface the service needs. Satisfied by both
// the in-memory and Postgres stores.
type LeaveStore interface {
	Create(ctx context.Context, leave models.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (models.WithOwner, error)
	ListAll(ctx context.Context) ([]models.WithOwner, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WithOwner, error)
	Decide(ctx context.Context, id uuid.UUID, status models.Status) (models.WithOwner, error)
}

// UserDirectory resolves the authenticated caller to a user record so the
// service can scope reads and gate decisions on role.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (authModel.User, error)
}

type Service struct {
	leaves  LeaveStore
	users   UserDirectory
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(leaves LeaveStore, users UserDirectory, m *metrics.Metrics) *Service {
	return &Service{
		leaves:  leaves,
		users:   users,
		metrics: m,
		now:     time.Now,
	}
}

// Create files a new leave request on behalf of the caller. Dates arrive as
// calendar days; the request always starts out pending.
func (s *Service) Create(ctx context.Context, callerID uuid.UUID, req models.CreateRequest) (models.View, error) {
	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return models.View{}, dErrors.New(dErrors.CodeBadRequest, "start_date must be formatted as YYYY-MM-DD")
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return models.View{}, dErrors.New(dErrors.CodeBadRequest, "end_date must be formatted as YYYY-MM-DD")
	}
	if end.Before(start) {
		return models.View{}, dErrors.New(dErrors.CodeBadRequest, "end_date must not be before start_date")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return models.View{}, dErrors.New(dErrors.CodeBadRequest, "reason is required")
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.View{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return models.View{}, dErrors.Wrap(err, dErrors.CodeInternal, "looking up caller")
	}

	leave := models.LeaveRequest{
		ID:        uuid.New(),
		UserID:    caller.ID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return models.View{}, dErrors.Wrap(err, dErrors.CodeInternal, "storing leave request")
	}
	s.metrics.IncrementLeavesCreated()

	return models.NewView(models.WithOwner{LeaveRequest: leave, OwnerName: caller.Name}), nil
}

// List returns the leave requests visible to the caller: everything for
// admins, only their own for employees.
func (s *Service) List(ctx context.Context, callerID uuid.UUID) ([]models.View, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "looking up caller")
	}

	var records []models.WithOwner
	if caller.IsAdmin() {
		records, err = s.leaves.ListAll(ctx)
	} else {
		records, err = s.leaves.ListByUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing leave requests")
	}

	views := make([]models.View, 0, len(records))
	for _, record := range records {
		views = append(views, models.NewView(record))
	}
	return views, nil
}

// Decide applies an admin decision to a pending request. The role gate runs
// before any validation of the target so non-admins learn nothing about which
// request ids exist.
func (s *Service) Decide(ctx context.Context, callerID uuid.UUID, leaveID string, rawStatus string) (models.View, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.View{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return models.View{}, dErrors.Wrap(err, dErrors.CodeInternal, "looking up caller")
	}
	if !caller.IsAdmin() {
		return models.View{}, dErrors.New(dErrors.CodeForbidden, "admin role required")
	}

	status, err := models.Decision(rawStatus)
	if err != nil {
		return models.View{}, err
	}

	id, err := uuid.Parse(leaveID)
	if err != nil {
		return models.View{}, dErrors.New(dErrors.CodeNotFound, "leave request not found")
	}

	record, err := s.leaves.Decide(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return models.View{}, dErrors.New(dErrors.CodeNotFound, "leave request not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			return models.View{}, dErrors.New(dErrors.CodeConflict, "leave request is already decided")
		default:
			return models.View{}, dErrors.Wrap(err, dErrors.CodeInternal, "deciding leave request")
		}
	}
	s.metrics.IncrementLeaveDecision(string(status))

	return models.NewView(record), nil
}

