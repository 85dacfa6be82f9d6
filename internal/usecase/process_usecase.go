package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateProcessRequest represents the request to define a process
type CreateProcessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Inputs      string `json:"inputs"`
	Outputs     string `json:"outputs"`
}

// ProcessUseCase handles business process definitions
type ProcessUseCase struct {
	processes ports.ProcessRepository
}

// NewProcessUseCase creates a new process use case
func NewProcessUseCase(processes ports.ProcessRepository) *ProcessUseCase {
	return &ProcessUseCase{processes: processes}
}

// Create defines a new process
func (uc *ProcessUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateProcessRequest) (*domain.Process, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	process := domain.NewProcess(tenantID, req.Name, req.Description, req.Owner, userID)
	process.Inputs = req.Inputs
	process.Outputs = req.Outputs

	if err := uc.processes.Create(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to create process: %w", err)
	}
	return process, nil
}

// Get retrieves a process by ID
func (uc *ProcessUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Process, error) {
	process, err := uc.processes.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get process: %w", err)
	}
	return process, nil
}

// List retrieves all processes for a tenant
func (uc *ProcessUseCase) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Process, error) {
	processes, err := uc.processes.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	return processes, nil
}

// Update replaces the mutable fields of a process
func (uc *ProcessUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req CreateProcessRequest) (*domain.Process, error) {
	process, err := uc.processes.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get process: %w", err)
	}

	if strings.TrimSpace(req.Name) != "" {
		process.Name = req.Name
	}
	process.Description = req.Description
	process.Owner = req.Owner
	process.Inputs = req.Inputs
	process.Outputs = req.Outputs
	process.UpdatedAt = time.Now()

	if err := uc.processes.Update(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to update process: %w", err)
	}
	return process, nil
}

// Delete removes a process
func (uc *ProcessUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.processes.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete process: %w", err)
	}
	return nil
}
