package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateObjectiveRequest represents the request to set a quality objective
type CreateObjectiveRequest struct {
	Title   string     `json:"title"`
	Target  string     `json:"target"`
	Measure string     `json:"measure"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// UpdateObjectiveRequest represents mutable objective fields
type UpdateObjectiveRequest struct {
	Title   *string                 `json:"title,omitempty"`
	Target  *string                 `json:"target,omitempty"`
	Measure *string                 `json:"measure,omitempty"`
	Status  *domain.ObjectiveStatus `json:"status,omitempty"`
	DueDate *time.Time              `json:"due_date,omitempty"`
}

// ObjectiveUseCase handles quality objectives
type ObjectiveUseCase struct {
	objectives ports.ObjectiveRepository
}

// NewObjectiveUseCase creates a new objective use case
func NewObjectiveUseCase(objectives ports.ObjectiveRepository) *ObjectiveUseCase {
	return &ObjectiveUseCase{objectives: objectives}
}

// Create sets a new quality objective
func (uc *ObjectiveUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateObjectiveRequest) (*domain.QualityObjective, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	objective := domain.NewQualityObjective(tenantID, req.Title, req.Target, req.Measure, req.DueDate, userID)
	if err := uc.objectives.Create(ctx, objective); err != nil {
		return nil, fmt.Errorf("failed to create objective: %w", err)
	}
	return objective, nil
}

// Get retrieves an objective by ID
func (uc *ObjectiveUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.QualityObjective, error) {
	objective, err := uc.objectives.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get objective: %w", err)
	}
	return objective, nil
}

// List retrieves all objectives for a tenant
func (uc *ObjectiveUseCase) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.QualityObjective, error) {
	objectives, err := uc.objectives.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	return objectives, nil
}

// Update applies partial changes to an objective
func (uc *ObjectiveUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req UpdateObjectiveRequest) (*domain.QualityObjective, error) {
	objective, err := uc.objectives.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get objective: %w", err)
	}

	if req.Title != nil && *req.Title != "" {
		objective.Title = *req.Title
	}
	if req.Target != nil {
		objective.Target = *req.Target
	}
	if req.Measure != nil {
		objective.Measure = *req.Measure
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.ObjectiveStatusOnTrack, domain.ObjectiveStatusAtRisk, domain.ObjectiveStatusAchieved:
			objective.Status = *req.Status
		default:
			return nil, fmt.Errorf("invalid objective status: %s", *req.Status)
		}
	}
	if req.DueDate != nil {
		objective.DueDate = req.DueDate
	}
	objective.UpdatedAt = time.Now()

	if err := uc.objectives.Update(ctx, objective); err != nil {
		return nil, fmt.Errorf("failed to update objective: %w", err)
	}
	return objective, nil
}

// Delete removes an objective
func (uc *ObjectiveUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.objectives.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete objective: %w", err)
	}
	return nil
}
