package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "leavedesk/internal/auth/handler"
	authModel "leavedesk/internal/auth/models"
	"leavedesk/internal/auth/password"
	authservice "leavedesk/internal/auth/service"
	authstore "leavedesk/internal/auth/store"
	"leavedesk/internal/auth/store/revocation"
	httpapi "leavedesk/internal/http"
	jwttoken "leavedesk/internal/jwt_token"
	leavehandler "leavedesk/internal/leave/handler"
	leaveModel "leavedesk/internal/leave/models"
	leaveservice "leavedesk/internal/leave/service"
	leavestore "leavedesk/internal/leave/store"
	"leavedesk/internal/platform/config"
)

// newTestServer assembles the full stack on in-memory storage with the
// bootstrap accounts seeded, mirroring a fresh process start.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := authstore.NewInMemoryUserStore()
	leaveStore := leavestore.NewInMemoryLeaveStore(userStore)
	trl := revocation.NewMemoryTRL()
	hasher := password.BcryptHasher{}
	jwtService := jwttoken.NewJWTService("integration-test-key", "leavedesk")

	seed := config.Seed{
		AdminName: "Admin User", AdminEmail: "admin@company.com", AdminPassword: "admin123",
		EmployeeName: "John Doe", EmployeeEmail: "john@company.com", EmployeePassword: "employee123",
	}
	require.NoError(t, authstore.SeedBootstrapAccounts(context.Background(), userStore, hasher, seed))

	authSvc := authservice.NewService(userStore, hasher, jwtService, trl, time.Hour, nil)
	leaveSvc := leaveservice.NewService(leaveStore, userStore, nil)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:      logger,
		Validator:   jwttoken.NewMiddlewareAdapter(jwtService),
		Revocations: trl,
		Auth:        authhandler.New(authSvc, logger),
		Leaves:      leavehandler.New(leaveSvc, logger),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, payload
}

func login(t *testing.T, srv *httptest.Server, email, pass string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "",
		`{"email":"`+email+`","password":"`+pass+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result authModel.LoginResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestLeaveFlow(t *testing.T) {
	srv := newTestServer(t)

	employeeToken := login(t, srv, "john@company.com", "employee123")
	adminToken := login(t, srv, "admin@company.com", "admin123")

	// Employee files a request.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/leaves", employeeToken,
		`{"start_date":"2024-06-10","end_date":"2024-06-14","reason":"Vacation"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created leaveModel.View
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "John Doe", created.EmployeeName)

	// Employee cannot decide their own request.
	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/leaves/"+created.ID+"/status", employeeToken,
		`{"status":"approved"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode, string(body))

	// Admin approves it.
	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/leaves/"+created.ID+"/status", adminToken,
		`{"status":"approved"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var decided leaveModel.View
	require.NoError(t, json.Unmarshal(body, &decided))
	assert.Equal(t, "approved", decided.Status)

	// A second decision conflicts.
	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/leaves/"+created.ID+"/status", adminToken,
		`{"status":"rejected"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	// Both callers see the request in their lists.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/leaves", employeeToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var employeeView []leaveModel.View
	require.NoError(t, json.Unmarshal(body, &employeeView))
	require.Len(t, employeeView, 1)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/leaves", adminToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adminView []leaveModel.View
	require.NoError(t, json.Unmarshal(body, &adminView))
	require.Len(t, adminView, 1)
	assert.Equal(t, "approved", adminView[0].Status)
}

func TestRegistrationFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "",
		`{"name":"New Hire","email":"hire@company.com","password":"pass1234"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "pass1234")

	// Duplicate registration conflicts.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/auth/register", "",
		`{"name":"New Hire","email":"hire@company.com","password":"pass1234"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	// The fresh account can log in and sees an empty list.
	token := login(t, srv, "hire@company.com", "pass1234")
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/leaves", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newTestServer(t)

	token := login(t, srv, "john@company.com", "employee123")

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/leaves", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/logout", token, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/leaves", token, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBadCredentialsAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)

	resp, unknownBody := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "",
		`{"email":"ghost@company.com","password":"whatever"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, wrongBody := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "",
		`{"email":"john@company.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.JSONEq(t, string(unknownBody), string(wrongBody))
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/leaves", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/leaves", "garbage-token",
		`{"start_date":"2024-06-10","end_date":"2024-06-14","reason":"Vacation"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
