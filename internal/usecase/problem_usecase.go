package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateProblemRequest represents the request to log a problem
type CreateProblemRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Source      domain.ProblemSource `json:"source"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
}

// UpdateProblemRequest represents mutable problem fields
type UpdateProblemRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
}

// ProblemUseCase handles corrective action / improvement entries
type ProblemUseCase struct {
	problems ports.ProblemRepository
}

// NewProblemUseCase creates a new problem use case
func NewProblemUseCase(problems ports.ProblemRepository) *ProblemUseCase {
	return &ProblemUseCase{problems: problems}
}

// Create logs a new problem
func (uc *ProblemUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateProblemRequest) (*domain.Problem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}

	source := req.Source
	if source == "" {
		source = domain.ProblemSourceInternal
	}

	problem := domain.NewProblem(tenantID, req.Title, req.Description, source, req.DueDate, userID)
	if err := uc.problems.Create(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to create problem: %w", err)
	}
	return problem, nil
}

// Get retrieves a problem by ID
func (uc *ProblemUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error) {
	problem, err := uc.problems.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return problem, nil
}

// List retrieves all problems for a tenant
func (uc *ProblemUseCase) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Problem, error) {
	problems, err := uc.problems.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

// Update applies partial changes to a problem
func (uc *ProblemUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req UpdateProblemRequest) (*domain.Problem, error) {
	problem, err := uc.problems.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	if problem.Status == domain.ProblemStatusClosed {
		return nil, domain.ErrProblemClosed
	}

	if req.Title != nil && *req.Title != "" {
		problem.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		problem.Description = *req.Description
	}
	if req.DueDate != nil {
		problem.DueDate = req.DueDate
	}
	if req.AssignedTo != nil {
		problem.AssignedTo = req.AssignedTo
	}
	problem.UpdatedAt = time.Now()

	if err := uc.problems.Update(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}
	return problem, nil
}

// Start moves a problem to in progress
func (uc *ProblemUseCase) Start(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error) {
	return uc.transition(ctx, tenantID, id, (*domain.Problem).Start)
}

// Close closes a problem
func (uc *ProblemUseCase) Close(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error) {
	return uc.transition(ctx, tenantID, id, (*domain.Problem).Close)
}

func (uc *ProblemUseCase) transition(ctx context.Context, tenantID domain.TenantID, id string, apply func(*domain.Problem) error) (*domain.Problem, error) {
	problem, err := uc.problems.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	if err := apply(problem); err != nil {
		return nil, err
	}

	if err := uc.problems.Update(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}
	return problem, nil
}

// Delete removes a problem
func (uc *ProblemUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.problems.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	return nil
}
