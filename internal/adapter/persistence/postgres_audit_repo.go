package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresAuditRepository implements AuditRepository using PostgreSQL
type PostgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository
func NewPostgresAuditRepository(db *sql.DB) ports.AuditRepository {
	return &PostgresAuditRepository{db: db}
}

const auditColumns = `id, tenant_id, title, scope, auditor, performed_at, findings, report_path, created_by, created_at, updated_at`

// Create saves a new internal audit record
func (r *PostgresAuditRepository) Create(ctx context.Context, audit *domain.InternalAudit) error {
	query := `
		INSERT INTO internal_audits (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		audit.ID,
		string(audit.TenantID),
		audit.Title,
		audit.Scope,
		audit.Auditor,
		audit.PerformedAt,
		audit.Findings,
		audit.ReportPath,
		audit.CreatedBy,
		audit.CreatedAt,
		audit.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create audit: %w", err)
	}

	return nil
}

// FindByID retrieves an internal audit by its ID within a tenant
func (r *PostgresAuditRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.InternalAudit, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM internal_audits
		WHERE tenant_id = $1 AND id = $2
	`

	audit, err := scanAudit(r.db.QueryRowContext(ctx, query, string(tenantID), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrAuditNotFound
		}
		return nil, fmt.Errorf("failed to find audit: %w", err)
	}

	return audit, nil
}

// Update updates an existing internal audit record
func (r *PostgresAuditRepository) Update(ctx context.Context, audit *domain.InternalAudit) error {
	query := `
		UPDATE internal_audits
		SET title = $3, scope = $4, auditor = $5, performed_at = $6, findings = $7,
			report_path = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(audit.TenantID),
		audit.ID,
		audit.Title,
		audit.Scope,
		audit.Auditor,
		audit.PerformedAt,
		audit.Findings,
		audit.ReportPath,
		audit.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update audit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrAuditNotFound
	}

	return nil
}

// Delete removes an internal audit record
func (r *PostgresAuditRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM internal_audits WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete audit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrAuditNotFound
	}

	return nil
}

// List retrieves all internal audits of a tenant, newest first
func (r *PostgresAuditRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.InternalAudit, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM internal_audits
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query audits: %w", err)
	}
	defer rows.Close()

	var audits []*domain.InternalAudit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		audits = append(audits, audit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audits: %w", err)
	}

	return audits, nil
}

// Count returns the number of internal audits of a tenant
func (r *PostgresAuditRepository) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	query := `SELECT COUNT(*) FROM internal_audits WHERE tenant_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audits: %w", err)
	}

	return count, nil
}

func scanAudit(row rowScanner) (*domain.InternalAudit, error) {
	var audit domain.InternalAudit
	var performedAt sql.NullTime
	var reportPath sql.NullString

	err := row.Scan(
		&audit.ID,
		&audit.TenantID,
		&audit.Title,
		&audit.Scope,
		&audit.Auditor,
		&performedAt,
		&audit.Findings,
		&reportPath,
		&audit.CreatedBy,
		&audit.CreatedAt,
		&audit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if performedAt.Valid {
		audit.PerformedAt = &performedAt.Time
	}
	if reportPath.Valid {
		audit.ReportPath = &reportPath.String
	}

	return &audit, nil
}
