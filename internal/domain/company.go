package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyProfile represents the single company profile of a tenant
type CompanyProfile struct {
	TenantID      TenantID  `json:"tenant_id"`
	LegalName     string    `json:"legal_name"`
	Industry      string    `json:"industry,omitempty"`
	EmployeeCount int       `json:"employee_count,omitempty"`
	Address       string    `json:"address,omitempty"`
	ScopeStmt     string    `json:"scope_statement,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CompanyRole represents an organizational role defined by a tenant
// (quality manager, process owner, and so on)
type CompanyRole struct {
	ID          string    `json:"id"`
	TenantID    TenantID  `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCompanyRole creates a new organizational role
func NewCompanyRole(tenantID TenantID, name, description string) *CompanyRole {
	now := time.Now()
	return &CompanyRole{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RoleAssignment represents the assignment of a user to a company role
type RoleAssignment struct {
	ID        string    `json:"id"`
	TenantID  TenantID  `json:"tenant_id"`
	RoleID    string    `json:"role_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRoleAssignment creates a new role assignment
func NewRoleAssignment(tenantID TenantID, roleID, userID string) *RoleAssignment {
	return &RoleAssignment{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		RoleID:    roleID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}
