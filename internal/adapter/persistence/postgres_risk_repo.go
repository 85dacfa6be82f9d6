package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresRiskRepository implements RiskRepository using PostgreSQL
type PostgresRiskRepository struct {
	db *sql.DB
}

// NewPostgresRiskRepository creates a new PostgreSQL risk repository
func NewPostgresRiskRepository(db *sql.DB) ports.RiskRepository {
	return &PostgresRiskRepository{db: db}
}

// Create saves a new risk entry
func (r *PostgresRiskRepository) Create(ctx context.Context, risk *domain.Risk) error {
	query := `
		INSERT INTO risks (id, tenant_id, title, type, impact, likelihood, treatment, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		risk.ID,
		string(risk.TenantID),
		risk.Title,
		string(risk.Type),
		string(risk.Impact),
		string(risk.Likelihood),
		risk.Treatment,
		risk.CreatedBy,
		risk.CreatedAt,
		risk.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create risk: %w", err)
	}

	return nil
}

// FindByID retrieves a risk entry by its ID within a tenant
func (r *PostgresRiskRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Risk, error) {
	query := `
		SELECT id, tenant_id, title, type, impact, likelihood, treatment, created_by, created_at, updated_at
		FROM risks
		WHERE tenant_id = $1 AND id = $2
	`

	var risk domain.Risk
	err := r.db.QueryRowContext(ctx, query, string(tenantID), id).Scan(
		&risk.ID,
		&risk.TenantID,
		&risk.Title,
		&risk.Type,
		&risk.Impact,
		&risk.Likelihood,
		&risk.Treatment,
		&risk.CreatedBy,
		&risk.CreatedAt,
		&risk.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrRiskNotFound
		}
		return nil, fmt.Errorf("failed to find risk: %w", err)
	}

	return &risk, nil
}

// Update updates an existing risk entry
func (r *PostgresRiskRepository) Update(ctx context.Context, risk *domain.Risk) error {
	query := `
		UPDATE risks
		SET title = $3, type = $4, impact = $5, likelihood = $6, treatment = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(risk.TenantID),
		risk.ID,
		risk.Title,
		string(risk.Type),
		string(risk.Impact),
		string(risk.Likelihood),
		risk.Treatment,
		risk.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update risk: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrRiskNotFound
	}

	return nil
}

// Delete removes a risk entry
func (r *PostgresRiskRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM risks WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete risk: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrRiskNotFound
	}

	return nil
}

// List retrieves all risk entries of a tenant, newest first
func (r *PostgresRiskRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Risk, error) {
	query := `
		SELECT id, tenant_id, title, type, impact, likelihood, treatment, created_by, created_at, updated_at
		FROM risks
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query risks: %w", err)
	}
	defer rows.Close()

	var risks []*domain.Risk
	for rows.Next() {
		var risk domain.Risk
		err := rows.Scan(
			&risk.ID,
			&risk.TenantID,
			&risk.Title,
			&risk.Type,
			&risk.Impact,
			&risk.Likelihood,
			&risk.Treatment,
			&risk.CreatedBy,
			&risk.CreatedAt,
			&risk.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan risk: %w", err)
		}
		risks = append(risks, &risk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risks: %w", err)
	}

	return risks, nil
}

// Count returns the number of risk entries of a tenant
func (r *PostgresRiskRepository) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	query := `SELECT COUNT(*) FROM risks WHERE tenant_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count risks: %w", err)
	}

	return count, nil
}
