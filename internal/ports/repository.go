// Package ports defines the interfaces between use cases and adapters.
// Every tenant-owned repository method takes a domain.TenantID as its
// first argument after the context; there is no unscoped variant, so a
// cross-tenant query cannot be expressed by a caller.
package ports

import (
	"context"
	"time"

	"github.com/genestial/miniqms/internal/domain"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	FindByID(ctx context.Context, id domain.TenantID) (*domain.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// UserRepository defines the interface for user persistence.
// FindByEmail is deliberately unscoped: it is the login lookup that
// establishes which tenant a session belongs to.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.User, error)
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.User, error)
}

// EvidenceRepository defines the interface for evidence persistence
type EvidenceRepository interface {
	Create(ctx context.Context, evidence *domain.Evidence) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Evidence, error)
	Update(ctx context.Context, evidence *domain.Evidence) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID, filter domain.EvidenceFilter) ([]*domain.Evidence, error)

	// CountByKindAndStatus returns the number of evidence records of the
	// given kind and status. The readiness engine uses it as an
	// existence check.
	CountByKindAndStatus(ctx context.Context, tenantID domain.TenantID, kind domain.EvidenceKind, status domain.EvidenceStatus) (int, error)

	// ListByStatus retrieves evidence in a given status, newest first
	ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.EvidenceStatus) ([]*domain.Evidence, error)
}

// RiskRepository defines the interface for risk persistence
type RiskRepository interface {
	Create(ctx context.Context, risk *domain.Risk) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Risk, error)
	Update(ctx context.Context, risk *domain.Risk) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Risk, error)
	Count(ctx context.Context, tenantID domain.TenantID) (int, error)
}

// ProblemRepository defines the interface for problem persistence
type ProblemRepository interface {
	Create(ctx context.Context, problem *domain.Problem) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error)
	Update(ctx context.Context, problem *domain.Problem) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Problem, error)
	Count(ctx context.Context, tenantID domain.TenantID) (int, error)

	// ListByStatus retrieves problems in a given status, oldest first
	ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.ProblemStatus) ([]*domain.Problem, error)

	// ListOverdue retrieves open or in-progress problems whose due date
	// is before the given time
	ListOverdue(ctx context.Context, tenantID domain.TenantID, before time.Time) ([]*domain.Problem, error)
}

// AuditRepository defines the interface for internal audit persistence
type AuditRepository interface {
	Create(ctx context.Context, audit *domain.InternalAudit) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.InternalAudit, error)
	Update(ctx context.Context, audit *domain.InternalAudit) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.InternalAudit, error)
	Count(ctx context.Context, tenantID domain.TenantID) (int, error)
}

// ReviewRepository defines the interface for management review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.ManagementReview) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.ManagementReview, error)
	Update(ctx context.Context, review *domain.ManagementReview) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ManagementReview, error)
	Count(ctx context.Context, tenantID domain.TenantID) (int, error)
}

// ProcessRepository defines the interface for process persistence
type ProcessRepository interface {
	Create(ctx context.Context, process *domain.Process) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Process, error)
	Update(ctx context.Context, process *domain.Process) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Process, error)
	Count(ctx context.Context, tenantID domain.TenantID) (int, error)
}

// ObjectiveRepository defines the interface for quality objective persistence
type ObjectiveRepository interface {
	Create(ctx context.Context, objective *domain.QualityObjective) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.QualityObjective, error)
	Update(ctx context.Context, objective *domain.QualityObjective) error
	Delete(ctx context.Context, tenantID domain.TenantID, id string) error
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.QualityObjective, error)
}

// CompanyRepository defines the interface for company profile and
// organizational role persistence
type CompanyRepository interface {
	GetProfile(ctx context.Context, tenantID domain.TenantID) (*domain.CompanyProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error

	CreateRole(ctx context.Context, role *domain.CompanyRole) error
	ListRoles(ctx context.Context, tenantID domain.TenantID) ([]*domain.CompanyRole, error)
	DeleteRole(ctx context.Context, tenantID domain.TenantID, id string) error
	CountRoles(ctx context.Context, tenantID domain.TenantID) (int, error)

	CreateAssignment(ctx context.Context, assignment *domain.RoleAssignment) error
	ListAssignments(ctx context.Context, tenantID domain.TenantID) ([]*domain.RoleAssignment, error)
	DeleteAssignment(ctx context.Context, tenantID domain.TenantID, id string) error
	CountAssignments(ctx context.Context, tenantID domain.TenantID) (int, error)
}

// ScopeRepository defines the interface for per-tenant clause scope
// overrides
type ScopeRepository interface {
	// ListExcluded returns the clause codes marked not applicable
	ListExcluded(ctx context.Context, tenantID domain.TenantID) ([]string, error)

	// List returns all scope override records for the tenant
	List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ClauseScope, error)

	// Set creates or updates a scope override
	Set(ctx context.Context, scope *domain.ClauseScope) error
}
