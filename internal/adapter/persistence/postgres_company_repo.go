package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresCompanyRepository implements CompanyRepository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sql.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sql.DB) ports.CompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

// GetProfile retrieves the company profile of a tenant
func (r *PostgresCompanyRepository) GetProfile(ctx context.Context, tenantID domain.TenantID) (*domain.CompanyProfile, error) {
	query := `
		SELECT tenant_id, legal_name, industry, employee_count, address, scope_statement, created_at, updated_at
		FROM company_profiles
		WHERE tenant_id = $1
	`

	var profile domain.CompanyProfile
	err := r.db.QueryRowContext(ctx, query, string(tenantID)).Scan(
		&profile.TenantID,
		&profile.LegalName,
		&profile.Industry,
		&profile.EmployeeCount,
		&profile.Address,
		&profile.ScopeStmt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCompanyProfileNotFound
		}
		return nil, fmt.Errorf("failed to find company profile: %w", err)
	}

	return &profile, nil
}

// UpsertProfile creates or replaces the company profile of a tenant
func (r *PostgresCompanyRepository) UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles (tenant_id, legal_name, industry, employee_count, address, scope_statement, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tenant_id) DO UPDATE
		SET legal_name = EXCLUDED.legal_name,
			industry = EXCLUDED.industry,
			employee_count = EXCLUDED.employee_count,
			address = EXCLUDED.address,
			scope_statement = EXCLUDED.scope_statement,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		string(profile.TenantID),
		profile.LegalName,
		profile.Industry,
		profile.EmployeeCount,
		profile.Address,
		profile.ScopeStmt,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert company profile: %w", err)
	}

	return nil
}

// CreateRole saves a new organizational role
func (r *PostgresCompanyRepository) CreateRole(ctx context.Context, role *domain.CompanyRole) error {
	query := `
		INSERT INTO company_roles (id, tenant_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		role.ID,
		string(role.TenantID),
		role.Name,
		role.Description,
		role.CreatedAt,
		role.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	return nil
}

// ListRoles retrieves all organizational roles of a tenant
func (r *PostgresCompanyRepository) ListRoles(ctx context.Context, tenantID domain.TenantID) ([]*domain.CompanyRole, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM company_roles
		WHERE tenant_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []*domain.CompanyRole
	for rows.Next() {
		var role domain.CompanyRole
		err := rows.Scan(
			&role.ID,
			&role.TenantID,
			&role.Name,
			&role.Description,
			&role.CreatedAt,
			&role.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	return roles, nil
}

// DeleteRole removes an organizational role and its assignments
func (r *PostgresCompanyRepository) DeleteRole(ctx context.Context, tenantID domain.TenantID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM role_assignments WHERE tenant_id = $1 AND role_id = $2`, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete role assignments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM company_roles WHERE tenant_id = $1 AND id = $2`, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRoleNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountRoles returns the number of organizational roles of a tenant
func (r *PostgresCompanyRepository) CountRoles(ctx context.Context, tenantID domain.TenantID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM company_roles WHERE tenant_id = $1`, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roles: %w", err)
	}
	return count, nil
}

// CreateAssignment saves a new role assignment
func (r *PostgresCompanyRepository) CreateAssignment(ctx context.Context, assignment *domain.RoleAssignment) error {
	query := `
		INSERT INTO role_assignments (id, tenant_id, role_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		string(assignment.TenantID),
		assignment.RoleID,
		assignment.UserID,
		assignment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create role assignment: %w", err)
	}

	return nil
}

// ListAssignments retrieves all role assignments of a tenant
func (r *PostgresCompanyRepository) ListAssignments(ctx context.Context, tenantID domain.TenantID) ([]*domain.RoleAssignment, error) {
	query := `
		SELECT id, tenant_id, role_id, user_id, created_at
		FROM role_assignments
		WHERE tenant_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query role assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.RoleAssignment
	for rows.Next() {
		var assignment domain.RoleAssignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.TenantID,
			&assignment.RoleID,
			&assignment.UserID,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role assignment: %w", err)
		}
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role assignments: %w", err)
	}

	return assignments, nil
}

// DeleteAssignment removes a role assignment
func (r *PostgresCompanyRepository) DeleteAssignment(ctx context.Context, tenantID domain.TenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM role_assignments WHERE tenant_id = $1 AND id = $2`, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete role assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRoleNotFound
	}

	return nil
}

// CountAssignments returns the number of role assignments of a tenant
func (r *PostgresCompanyRepository) CountAssignments(ctx context.Context, tenantID domain.TenantID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM role_assignments WHERE tenant_id = $1`, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count role assignments: %w", err)
	}
	return count, nil
}

// PostgresScopeRepository implements ScopeRepository using PostgreSQL
type PostgresScopeRepository struct {
	db *sql.DB
}

// NewPostgresScopeRepository creates a new PostgreSQL scope repository
func NewPostgresScopeRepository(db *sql.DB) ports.ScopeRepository {
	return &PostgresScopeRepository{db: db}
}

// ListExcluded returns the clause codes marked not applicable for a tenant
func (r *PostgresScopeRepository) ListExcluded(ctx context.Context, tenantID domain.TenantID) ([]string, error) {
	query := `SELECT clause_code FROM tenant_clause_scopes WHERE tenant_id = $1 AND applicable = FALSE`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query excluded clauses: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan clause code: %w", err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating excluded clauses: %w", err)
	}

	return codes, nil
}

// List returns all scope override records of a tenant
func (r *PostgresScopeRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ClauseScope, error) {
	query := `
		SELECT tenant_id, clause_code, applicable, justification, updated_at
		FROM tenant_clause_scopes
		WHERE tenant_id = $1
		ORDER BY clause_code ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query clause scopes: %w", err)
	}
	defer rows.Close()

	var scopes []*domain.ClauseScope
	for rows.Next() {
		var scope domain.ClauseScope
		err := rows.Scan(
			&scope.TenantID,
			&scope.ClauseCode,
			&scope.Applicable,
			&scope.Justification,
			&scope.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clause scope: %w", err)
		}
		scopes = append(scopes, &scope)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clause scopes: %w", err)
	}

	return scopes, nil
}

// Set creates or updates a scope override
func (r *PostgresScopeRepository) Set(ctx context.Context, scope *domain.ClauseScope) error {
	query := `
		INSERT INTO tenant_clause_scopes (tenant_id, clause_code, applicable, justification, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, clause_code) DO UPDATE
		SET applicable = EXCLUDED.applicable,
			justification = EXCLUDED.justification,
			updated_at = EXCLUDED.updated_at
	`

	if scope.UpdatedAt.IsZero() {
		scope.UpdatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		string(scope.TenantID),
		scope.ClauseCode,
		scope.Applicable,
		scope.Justification,
		scope.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to set clause scope: %w", err)
	}

	return nil
}
