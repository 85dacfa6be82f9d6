package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
	"github.com/genestial/miniqms/internal/usecase"
)

// MockProblemRepository is a mock implementation of ports.ProblemRepository
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}

func (m *MockProblemRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) Update(ctx context.Context, problem *domain.Problem) error {
	args := m.Called(ctx, problem)
	return args.Error(0)
}

func (m *MockProblemRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProblemRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Problem, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockProblemRepository) ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.ProblemStatus) ([]*domain.Problem, error) {
	args := m.Called(ctx, tenantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) ListOverdue(ctx context.Context, tenantID domain.TenantID, before time.Time) ([]*domain.Problem, error) {
	args := m.Called(ctx, tenantID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Problem), args.Error(1)
}

// withClaims injects token claims the way the auth middleware would
func withClaims(req *http.Request, tenantID domain.TenantID, userID string) *http.Request {
	claims := &ports.TokenClaims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     domain.UserRoleMember,
	}
	return req.WithContext(context.WithValue(req.Context(), claimsContextKey, claims))
}

func newProblemRouter(repo ports.ProblemRepository) *mux.Router {
	handler := NewProblemHandler(usecase.NewProblemUseCase(repo))
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestProblemHandler_Create(t *testing.T) {
	tests := []struct {
		name            string
		requestBody     string
		authenticated   bool
		repoCreateErr   error
		expectRepoCall  bool
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "successful problem creation",
			requestBody:    `{"title":"Late shipment","description":"Order 42 shipped two days late","source":"CUSTOMER"}`,
			authenticated:  true,
			expectRepoCall: true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "missing title",
			requestBody:     `{"description":"no title"}`,
			authenticated:   true,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "title is required",
		},
		{
			name:            "invalid request body",
			requestBody:     `{"title": broken}`,
			authenticated:   true,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
		{
			name:            "unauthenticated request",
			requestBody:     `{"title":"t","description":"d"}`,
			authenticated:   false,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockProblemRepository{}
			if tt.expectRepoCall {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Problem")).Return(tt.repoCreateErr)
			}
			router := newProblemRouter(repo)

			req := httptest.NewRequest("POST", "/problems", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			if tt.authenticated {
				req = withClaims(req, "tenant-a", "user-1")
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var envelope Envelope
			assert.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, envelope.Message)
				assert.False(t, envelope.Status)
			}
			if tt.expectedStatus == http.StatusCreated {
				assert.True(t, envelope.Status)
				data := envelope.Data.(map[string]interface{})
				assert.Equal(t, "tenant-a", data["tenant_id"])
				assert.Equal(t, "user-1", data["created_by"])
				assert.Equal(t, string(domain.ProblemStatusOpen), data["status"])
				assert.NotEmpty(t, data["id"])
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestProblemHandler_Get(t *testing.T) {
	existing := domain.NewProblem("tenant-a", "Calibration overdue", "Torque wrench #3 past calibration date", domain.ProblemSourceAudit, nil, "user-1")

	tests := []struct {
		name           string
		problemID      string
		repoProblem    *domain.Problem
		repoErr        error
		expectedStatus int
	}{
		{
			name:           "found",
			problemID:      existing.ID,
			repoProblem:    existing,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			problemID:      "missing-id",
			repoErr:        domain.ErrProblemNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockProblemRepository{}
			repo.On("FindByID", mock.Anything, domain.TenantID("tenant-a"), tt.problemID).Return(tt.repoProblem, tt.repoErr)
			router := newProblemRouter(repo)

			req := withClaims(httptest.NewRequest("GET", "/problems/"+tt.problemID, nil), "tenant-a", "user-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			repo.AssertExpectations(t)
		})
	}
}

func TestProblemHandler_Close(t *testing.T) {
	tests := []struct {
		name            string
		status          domain.ProblemStatus
		expectUpdate    bool
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "close open problem",
			status:          domain.ProblemStatusOpen,
			expectUpdate:    true,
			expectedStatus:  http.StatusOK,
			expectedMessage: "problem closed",
		},
		{
			name:            "close already closed problem",
			status:          domain.ProblemStatusClosed,
			expectedStatus:  http.StatusConflict,
			expectedMessage: "cannot modify closed problem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := domain.NewProblem("tenant-a", "Scrap rate spike", "Line 2 scrap above threshold", domain.ProblemSourceInternal, nil, "user-1")
			problem.Status = tt.status

			repo := &MockProblemRepository{}
			repo.On("FindByID", mock.Anything, domain.TenantID("tenant-a"), problem.ID).Return(problem, nil)
			if tt.expectUpdate {
				repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Problem")).Return(nil)
			}
			router := newProblemRouter(repo)

			req := withClaims(httptest.NewRequest("POST", "/problems/"+problem.ID+"/close", nil), "tenant-a", "user-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var envelope Envelope
			assert.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
			assert.Equal(t, tt.expectedMessage, envelope.Message)
			if tt.expectUpdate {
				assert.Equal(t, domain.ProblemStatusClosed, problem.Status)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestProblemHandler_RegisterRoutes(t *testing.T) {
	router := newProblemRouter(&MockProblemRepository{})

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/problems"},
		{"GET", "/problems"},
		{"GET", "/problems/some-id"},
		{"PATCH", "/problems/some-id"},
		{"DELETE", "/problems/some-id"},
		{"POST", "/problems/some-id/start"},
		{"POST", "/problems/some-id/close"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// Unauthenticated requests reach the handler and get a 401, so a
		// 404 here means the route was never registered
		assert.NotEqual(t, http.StatusNotFound, w.Code, "Route %s %s should be registered", route.method, route.path)
	}
}
