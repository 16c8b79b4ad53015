package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"leavedesk/internal/auth/models"
	"leavedesk/internal/auth/password"
	"leavedesk/internal/platform/metrics"
	dErrors "leavedesk/pkg/domain-errors"
	"leavedesk/pkg/platform/sentinel"
)

// UserStore is the slice of persistence this service needs.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// TokenIssuer mints signed access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, expiresIn time.Duration) (string, error)
}

// RevocationList records tokens invalidated before their natural expiry.
type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service owns registration, authentication, and logout. Transport concerns
// stay in the handler; storage details stay behind UserStore.
type Service struct {
	users    UserStore
	hasher   password.Hasher
	tokens   TokenIssuer
	revoked  RevocationList
	tokenTTL time.Duration
	metrics  *metrics.Metrics
}

func NewService(users UserStore, hasher password.Hasher, tokens TokenIssuer, revoked RevocationList, tokenTTL time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		revoked:  revoked,
		tokenTTL: tokenTTL,
		metrics:  m,
	}
}

// Register validates the payload, hashes the credential, and persists a new
// user. The plaintext password never reaches the store.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.Projection, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return models.Projection{}, dErrors.New(dErrors.CodeBadRequest, "name, email and password are required")
	}

	role := models.RoleEmployee
	if req.Role != "" {
		role = models.Role(req.Role)
		if !role.Valid() {
			return models.Projection{}, dErrors.New(dErrors.CodeBadRequest, "role must be employee or admin")
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return models.Projection{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return models.Projection{}, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return models.Projection{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.metrics.IncrementUsersRegistered()
	return user.Public(), nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password return the identical error so callers cannot probe which
// emails are registered.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return models.LoginResult{}, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.LoginResult{}, invalidCredentials()
		}
		return models.LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return models.LoginResult{}, invalidCredentials()
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, s.tokenTTL)
	if err != nil {
		return models.LoginResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncrementLogins()
	return models.LoginResult{Token: token, User: user.Public()}, nil
}

// Logout revokes the presented token's jti for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return dErrors.New(dErrors.CodeBadRequest, "token has no revocable id")
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	if err := s.revoked.RevokeToken(ctx, jti, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	return nil
}

func invalidCredentials() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
}
