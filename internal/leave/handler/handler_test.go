package handler

//go:generate mockgen -source=handler.go -destination=mocks/leave_mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"leavedesk/internal/leave/handler/mocks"
	"leavedesk/internal/leave/models"
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
	return r, mockService
}

func sampleView(id uuid.UUID) models.View {
	return models.View{
		ID:           id.String(),
		EmployeeName: "John Doe",
		StartDate:    "2024-04-01",
		EndDate:      "2024-04-05",
		Reason:       "Vacation",
		Status:       "pending",
	}
}

func TestHandleCreate(t *testing.T) {
	router, mockService := newTestHandler(t)

	callerID := uuid.New()
	leaveID := uuid.New()
	mockService.EXPECT().
		Create(gomock.Any(), callerID, models.CreateRequest{
			StartDate: "2024-04-01",
			EndDate:   "2024-04-05",
			Reason:    "Vacation",
		}).
		Return(sampleView(leaveID), nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/leaves", map[string]string{
		"start_date": "2024-04-01",
		"end_date":   "2024-04-05",
		"reason":     "Vacation",
	})
	req = testutil.WithUserID(req, callerID.String())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[models.View](t, rr)
	assert.Equal(t, leaveID.String(), resp.ID)
	assert.Equal(t, "John Doe", resp.EmployeeName)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandleCreateMalformedBody(t *testing.T) {
	router, _ := newTestHandler(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/leaves", "{not json")
	req = testutil.WithUserID(req, uuid.NewString())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestHandleCreateValidationError(t *testing.T) {
	router, mockService := newTestHandler(t)

	callerID := uuid.New()
	mockService.EXPECT().
		Create(gomock.Any(), callerID, gomock.Any()).
		Return(models.View{}, dErrors.New(dErrors.CodeBadRequest, "end_date must not be before start_date"))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/leaves", map[string]string{
		"start_date": "2024-04-05",
		"end_date":   "2024-04-01",
		"reason":     "Vacation",
	})
	req = testutil.WithUserID(req, callerID.String())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestHandleCreateMalformedSubject(t *testing.T) {
	router, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/leaves", map[string]string{
		"start_date": "2024-04-01",
		"end_date":   "2024-04-05",
		"reason":     "Vacation",
	})
	req = testutil.WithUserID(req, "not-a-uuid")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestHandleList(t *testing.T) {
	router, mockService := newTestHandler(t)

	callerID := uuid.New()
	mockService.EXPECT().
		List(gomock.Any(), callerID).
		Return([]models.View{sampleView(uuid.New()), sampleView(uuid.New())}, nil)

	req := testutil.NewRequest(t, http.MethodGet, "/leaves")
	req = testutil.WithUserID(req, callerID.String())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[[]models.View](t, rr)
	assert.Len(t, *resp, 2)
}

func TestHandleListEmpty(t *testing.T) {
	router, mockService := newTestHandler(t)

	callerID := uuid.New()
	mockService.EXPECT().
		List(gomock.Any(), callerID).
		Return([]models.View{}, nil)

	req := testutil.NewRequest(t, http.MethodGet, "/leaves")
	req = testutil.WithUserID(req, callerID.String())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	assert.JSONEq(t, "[]", rr.Body.String(), "empty list stays an array, not null")
}

func TestHandleDecide(t *testing.T) {
	router, mockService := newTestHandler(t)

	callerID := uuid.New()
	leaveID := uuid.New()
	approved := sampleView(leaveID)
	approved.Status = "approved"

	mockService.EXPECT().
		Decide(gomock.Any(), callerID, leaveID.String(), "approved").
		Return(approved, nil)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/leaves/"+leaveID.String()+"/status", map[string]string{
		"status": "approved",
	})
	req = testutil.WithUserID(req, callerID.String())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[models.View](t, rr)
	assert.Equal(t, "approved", resp.Status)
}

func TestHandleDecideErrors(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedCode   string
	}{
		{"forbidden for non-admins", dErrors.New(dErrors.CodeForbidden, "admin role required"), http.StatusForbidden, "forbidden"},
		{"unknown request", dErrors.New(dErrors.CodeNotFound, "leave request not found"), http.StatusNotFound, "not_found"},
		{"already decided", dErrors.New(dErrors.CodeConflict, "leave request is already decided"), http.StatusConflict, "conflict"},
		{"invalid status", dErrors.New(dErrors.CodeBadRequest, "status must be approved or rejected"), http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newTestHandler(t)

			callerID := uuid.New()
			leaveID := uuid.NewString()
			mockService.EXPECT().
				Decide(gomock.Any(), callerID, leaveID, gomock.Any()).
				Return(models.View{}, tt.serviceErr)

			req := testutil.NewJSONRequest(t, http.MethodPatch, "/leaves/"+leaveID+"/status", map[string]string{
				"status": "approved",
			})
			req = testutil.WithUserID(req, callerID.String())
			rr := testutil.DoRequest(router, req)

			testutil.AssertStatusAndError(t, rr, tt.expectedStatus, tt.expectedCode)
		})
	}
}
