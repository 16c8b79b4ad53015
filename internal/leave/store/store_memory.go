package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	authModel "leavedesk/internal/auth/models"
	"leavedesk/internal/leave/models"
	"leavedesk/pkg/platform/sentinel"
)

// OwnerResolver looks up a leave request's owning user. The auth user store
// satisfies this directly.
type OwnerResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (authModel.User, error)
}

// InMemoryLeaveStore keeps leave requests in a map for development and tests.
// Owner names are resolved through a secondary lookup, mirroring the join the
// Postgres store performs.
type InMemoryLeaveStore struct {
	mu     sync.RWMutex
	leaves map[uuid.UUID]models.LeaveRequest
	owners OwnerResolver
}

func NewInMemoryLeaveStore(owners OwnerResolver) *InMemoryLeaveStore {
	return &InMemoryLeaveStore{
		leaves: make(map[uuid.UUID]models.LeaveRequest),
		owners: owners,
	}
}

func (s *InMemoryLeaveStore) Create(_ context.Context, leave models.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[leave.ID] = leave
	return nil
}

func (s *InMemoryLeaveStore) FindByID(ctx context.Context, id uuid.UUID) (models.WithOwner, error) {
	s.mu.RLock()
	leave, ok := s.leaves[id]
	s.mu.RUnlock()
	if !ok {
		return models.WithOwner{}, sentinel.ErrNotFound
	}
	return s.withOwner(ctx, leave)
}

func (s *InMemoryLeaveStore) ListAll(ctx context.Context) ([]models.WithOwner, error) {
	s.mu.RLock()
	leaves := make([]models.LeaveRequest, 0, len(s.leaves))
	for _, leave := range s.leaves {
		leaves = append(leaves, leave)
	}
	s.mu.RUnlock()
	return s.resolve(ctx, leaves)
}

func (s *InMemoryLeaveStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WithOwner, error) {
	s.mu.RLock()
	var leaves []models.LeaveRequest
	for _, leave := range s.leaves {
		if leave.UserID == userID {
			leaves = append(leaves, leave)
		}
	}
	s.mu.RUnlock()
	return s.resolve(ctx, leaves)
}

func (s *InMemoryLeaveStore) Decide(ctx context.Context, id uuid.UUID, status models.Status) (models.WithOwner, error) {
	s.mu.Lock()
	leave, ok := s.leaves[id]
	if !ok {
		s.mu.Unlock()
		return models.WithOwner{}, sentinel.ErrNotFound
	}
	if leave.Status != models.StatusPending {
		s.mu.Unlock()
		return models.WithOwner{}, sentinel.ErrInvalidState
	}
	leave.Status = status
	s.leaves[id] = leave
	s.mu.Unlock()

	return s.withOwner(ctx, leave)
}

func (s *InMemoryLeaveStore) resolve(ctx context.Context, leaves []models.LeaveRequest) ([]models.WithOwner, error) {
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].CreatedAt.Equal(leaves[j].CreatedAt) {
			return leaves[i].ID.String() < leaves[j].ID.String()
		}
		return leaves[i].CreatedAt.Before(leaves[j].CreatedAt)
	})

	records := make([]models.WithOwner, 0, len(leaves))
	for _, leave := range leaves {
		record, err := s.withOwner(ctx, leave)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *InMemoryLeaveStore) withOwner(ctx context.Context, leave models.LeaveRequest) (models.WithOwner, error) {
	owner, err := s.owners.FindByID(ctx, leave.UserID)
	if err != nil {
		return models.WithOwner{}, err
	}
	return models.WithOwner{LeaveRequest: leave, OwnerName: owner.Name}, nil
}
