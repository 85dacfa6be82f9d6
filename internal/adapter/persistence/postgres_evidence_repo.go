package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresEvidenceRepository implements EvidenceRepository using PostgreSQL
type PostgresEvidenceRepository struct {
	db *sql.DB
}

// NewPostgresEvidenceRepository creates a new PostgreSQL evidence repository
func NewPostgresEvidenceRepository(db *sql.DB) ports.EvidenceRepository {
	return &PostgresEvidenceRepository{db: db}
}

const evidenceColumns = `id, tenant_id, title, description, kind, status, file_path, external_url, clause_code, created_by, approved_by, approved_at, created_at, updated_at`

// Create saves a new evidence record
func (r *PostgresEvidenceRepository) Create(ctx context.Context, evidence *domain.Evidence) error {
	query := `
		INSERT INTO evidence (` + evidenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		evidence.ID,
		string(evidence.TenantID),
		evidence.Title,
		evidence.Description,
		string(evidence.Kind),
		string(evidence.Status),
		evidence.FilePath,
		evidence.ExternalURL,
		evidence.ClauseCode,
		evidence.CreatedBy,
		evidence.ApprovedBy,
		evidence.ApprovedAt,
		evidence.CreatedAt,
		evidence.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}

	return nil
}

// FindByID retrieves an evidence record by its ID within a tenant
func (r *PostgresEvidenceRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Evidence, error) {
	query := `
		SELECT ` + evidenceColumns + `
		FROM evidence
		WHERE tenant_id = $1 AND id = $2
	`

	evidence, err := r.scanRow(r.db.QueryRowContext(ctx, query, string(tenantID), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrEvidenceNotFound
		}
		return nil, fmt.Errorf("failed to find evidence: %w", err)
	}

	return evidence, nil
}

// Update updates an existing evidence record
func (r *PostgresEvidenceRepository) Update(ctx context.Context, evidence *domain.Evidence) error {
	query := `
		UPDATE evidence
		SET title = $3, description = $4, kind = $5, status = $6, file_path = $7,
			external_url = $8, clause_code = $9, approved_by = $10, approved_at = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(evidence.TenantID),
		evidence.ID,
		evidence.Title,
		evidence.Description,
		string(evidence.Kind),
		string(evidence.Status),
		evidence.FilePath,
		evidence.ExternalURL,
		evidence.ClauseCode,
		evidence.ApprovedBy,
		evidence.ApprovedAt,
		evidence.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update evidence: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrEvidenceNotFound
	}

	return nil
}

// Delete removes an evidence record
func (r *PostgresEvidenceRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM evidence WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrEvidenceNotFound
	}

	return nil
}

// List retrieves evidence records based on filter criteria
func (r *PostgresEvidenceRepository) List(ctx context.Context, tenantID domain.TenantID, filter domain.EvidenceFilter) ([]*domain.Evidence, error) {
	query := `
		SELECT ` + evidenceColumns + `
		FROM evidence
		WHERE tenant_id = $1
	`

	var conditions []string
	args := []interface{}{string(tenantID)}
	argIndex := 2

	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIndex))
		args = append(args, string(*filter.Kind))
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(*filter.Status))
		argIndex++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	return r.queryMany(ctx, query, args...)
}

// CountByKindAndStatus returns the number of evidence records of a kind
// and status within a tenant
func (r *PostgresEvidenceRepository) CountByKindAndStatus(ctx context.Context, tenantID domain.TenantID, kind domain.EvidenceKind, status domain.EvidenceStatus) (int, error) {
	query := `SELECT COUNT(*) FROM evidence WHERE tenant_id = $1 AND kind = $2 AND status = $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(tenantID), string(kind), string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count evidence: %w", err)
	}

	return count, nil
}

// ListByStatus retrieves evidence in a given status, newest first
func (r *PostgresEvidenceRepository) ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.EvidenceStatus) ([]*domain.Evidence, error) {
	query := `
		SELECT ` + evidenceColumns + `
		FROM evidence
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	return r.queryMany(ctx, query, string(tenantID), string(status))
}

func (r *PostgresEvidenceRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Evidence, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evidence: %w", err)
	}
	defer rows.Close()

	var records []*domain.Evidence
	for rows.Next() {
		evidence, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		records = append(records, evidence)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evidence: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresEvidenceRepository) scanRow(row rowScanner) (*domain.Evidence, error) {
	var evidence domain.Evidence
	var filePath, externalURL, clauseCode, approvedBy sql.NullString
	var approvedAt sql.NullTime

	err := row.Scan(
		&evidence.ID,
		&evidence.TenantID,
		&evidence.Title,
		&evidence.Description,
		&evidence.Kind,
		&evidence.Status,
		&filePath,
		&externalURL,
		&clauseCode,
		&evidence.CreatedBy,
		&approvedBy,
		&approvedAt,
		&evidence.CreatedAt,
		&evidence.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if filePath.Valid {
		evidence.FilePath = &filePath.String
	}
	if externalURL.Valid {
		evidence.ExternalURL = &externalURL.String
	}
	if clauseCode.Valid {
		evidence.ClauseCode = &clauseCode.String
	}
	if approvedBy.Valid {
		evidence.ApprovedBy = &approvedBy.String
	}
	if approvedAt.Valid {
		evidence.ApprovedAt = &approvedAt.Time
	}

	return &evidence, nil
}
