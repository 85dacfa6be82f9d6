package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// UpsertProfileRequest represents the company profile form
type UpsertProfileRequest struct {
	LegalName     string `json:"legal_name"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employee_count"`
	Address       string `json:"address"`
	ScopeStmt     string `json:"scope_statement"`
}

// CreateRoleRequest represents the request to define an organizational role
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AssignRoleRequest represents the request to assign a user to a role
type AssignRoleRequest struct {
	RoleID string `json:"role_id"`
	UserID string `json:"user_id"`
}

// CompanyUseCase handles the company profile and organizational roles
type CompanyUseCase struct {
	company ports.CompanyRepository
	users   ports.UserRepository
}

// NewCompanyUseCase creates a new company use case
func NewCompanyUseCase(company ports.CompanyRepository, users ports.UserRepository) *CompanyUseCase {
	return &CompanyUseCase{company: company, users: users}
}

// GetProfile retrieves the tenant's company profile
func (uc *CompanyUseCase) GetProfile(ctx context.Context, tenantID domain.TenantID) (*domain.CompanyProfile, error) {
	profile, err := uc.company.GetProfile(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}
	return profile, nil
}

// UpsertProfile creates or updates the tenant's company profile
func (uc *CompanyUseCase) UpsertProfile(ctx context.Context, tenantID domain.TenantID, req UpsertProfileRequest) (*domain.CompanyProfile, error) {
	if strings.TrimSpace(req.LegalName) == "" {
		return nil, fmt.Errorf("legal name is required")
	}

	now := time.Now()
	profile := &domain.CompanyProfile{
		TenantID:      tenantID,
		LegalName:     req.LegalName,
		Industry:      req.Industry,
		EmployeeCount: req.EmployeeCount,
		Address:       req.Address,
		ScopeStmt:     req.ScopeStmt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.company.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save company profile: %w", err)
	}
	return profile, nil
}

// CreateRole defines a new organizational role
func (uc *CompanyUseCase) CreateRole(ctx context.Context, tenantID domain.TenantID, req CreateRoleRequest) (*domain.CompanyRole, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	role := domain.NewCompanyRole(tenantID, req.Name, req.Description)
	if err := uc.company.CreateRole(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// ListRoles retrieves the tenant's organizational roles
func (uc *CompanyUseCase) ListRoles(ctx context.Context, tenantID domain.TenantID) ([]*domain.CompanyRole, error) {
	roles, err := uc.company.ListRoles(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// DeleteRole removes an organizational role
func (uc *CompanyUseCase) DeleteRole(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.company.DeleteRole(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

// AssignRole assigns a user to an organizational role. The user must
// belong to the same tenant.
func (uc *CompanyUseCase) AssignRole(ctx context.Context, tenantID domain.TenantID, req AssignRoleRequest) (*domain.RoleAssignment, error) {
	if req.RoleID == "" || req.UserID == "" {
		return nil, fmt.Errorf("role_id and user_id are required")
	}

	if _, err := uc.users.FindByID(ctx, tenantID, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	assignment := domain.NewRoleAssignment(tenantID, req.RoleID, req.UserID)
	if err := uc.company.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create role assignment: %w", err)
	}
	return assignment, nil
}

// ListAssignments retrieves the tenant's role assignments
func (uc *CompanyUseCase) ListAssignments(ctx context.Context, tenantID domain.TenantID) ([]*domain.RoleAssignment, error) {
	assignments, err := uc.company.ListAssignments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role assignments: %w", err)
	}
	return assignments, nil
}

// UnassignRole removes a role assignment
func (uc *CompanyUseCase) UnassignRole(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.company.DeleteAssignment(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete role assignment: %w", err)
	}
	return nil
}
