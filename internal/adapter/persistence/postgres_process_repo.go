package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresProcessRepository implements ProcessRepository using PostgreSQL
type PostgresProcessRepository struct {
	db *sql.DB
}

// NewPostgresProcessRepository creates a new PostgreSQL process repository
func NewPostgresProcessRepository(db *sql.DB) ports.ProcessRepository {
	return &PostgresProcessRepository{db: db}
}

// Create saves a new process
func (r *PostgresProcessRepository) Create(ctx context.Context, process *domain.Process) error {
	query := `
		INSERT INTO processes (id, tenant_id, name, description, owner, inputs, outputs, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		process.ID,
		string(process.TenantID),
		process.Name,
		process.Description,
		process.Owner,
		process.Inputs,
		process.Outputs,
		process.CreatedBy,
		process.CreatedAt,
		process.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create process: %w", err)
	}

	return nil
}

// FindByID retrieves a process by its ID within a tenant
func (r *PostgresProcessRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Process, error) {
	query := `
		SELECT id, tenant_id, name, description, owner, inputs, outputs, created_by, created_at, updated_at
		FROM processes
		WHERE tenant_id = $1 AND id = $2
	`

	var process domain.Process
	err := r.db.QueryRowContext(ctx, query, string(tenantID), id).Scan(
		&process.ID,
		&process.TenantID,
		&process.Name,
		&process.Description,
		&process.Owner,
		&process.Inputs,
		&process.Outputs,
		&process.CreatedBy,
		&process.CreatedAt,
		&process.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProcessNotFound
		}
		return nil, fmt.Errorf("failed to find process: %w", err)
	}

	return &process, nil
}

// Update updates an existing process
func (r *PostgresProcessRepository) Update(ctx context.Context, process *domain.Process) error {
	query := `
		UPDATE processes
		SET name = $3, description = $4, owner = $5, inputs = $6, outputs = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(process.TenantID),
		process.ID,
		process.Name,
		process.Description,
		process.Owner,
		process.Inputs,
		process.Outputs,
		process.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update process: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrProcessNotFound
	}

	return nil
}

// Delete removes a process
func (r *PostgresProcessRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM processes WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete process: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrProcessNotFound
	}

	return nil
}

// List retrieves all processes of a tenant in creation order
func (r *PostgresProcessRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Process, error) {
	query := `
		SELECT id, tenant_id, name, description, owner, inputs, outputs, created_by, created_at, updated_at
		FROM processes
		WHERE tenant_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query processes: %w", err)
	}
	defer rows.Close()

	var processes []*domain.Process
	for rows.Next() {
		var process domain.Process
		err := rows.Scan(
			&process.ID,
			&process.TenantID,
			&process.Name,
			&process.Description,
			&process.Owner,
			&process.Inputs,
			&process.Outputs,
			&process.CreatedBy,
			&process.CreatedAt,
			&process.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan process: %w", err)
		}
		processes = append(processes, &process)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating processes: %w", err)
	}

	return processes, nil
}

// Count returns the number of processes of a tenant
func (r *PostgresProcessRepository) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	query := `SELECT COUNT(*) FROM processes WHERE tenant_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count processes: %w", err)
	}

	return count, nil
}

// PostgresObjectiveRepository implements ObjectiveRepository using PostgreSQL
type PostgresObjectiveRepository struct {
	db *sql.DB
}

// NewPostgresObjectiveRepository creates a new PostgreSQL objective repository
func NewPostgresObjectiveRepository(db *sql.DB) ports.ObjectiveRepository {
	return &PostgresObjectiveRepository{db: db}
}

// Create saves a new quality objective
func (r *PostgresObjectiveRepository) Create(ctx context.Context, objective *domain.QualityObjective) error {
	query := `
		INSERT INTO quality_objectives (id, tenant_id, title, target, measure, status, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		objective.ID,
		string(objective.TenantID),
		objective.Title,
		objective.Target,
		objective.Measure,
		string(objective.Status),
		objective.DueDate,
		objective.CreatedBy,
		objective.CreatedAt,
		objective.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create objective: %w", err)
	}

	return nil
}

// FindByID retrieves a quality objective by its ID within a tenant
func (r *PostgresObjectiveRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.QualityObjective, error) {
	query := `
		SELECT id, tenant_id, title, target, measure, status, due_date, created_by, created_at, updated_at
		FROM quality_objectives
		WHERE tenant_id = $1 AND id = $2
	`

	objective, err := scanObjective(r.db.QueryRowContext(ctx, query, string(tenantID), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrObjectiveNotFound
		}
		return nil, fmt.Errorf("failed to find objective: %w", err)
	}

	return objective, nil
}

// Update updates an existing quality objective
func (r *PostgresObjectiveRepository) Update(ctx context.Context, objective *domain.QualityObjective) error {
	query := `
		UPDATE quality_objectives
		SET title = $3, target = $4, measure = $5, status = $6, due_date = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(objective.TenantID),
		objective.ID,
		objective.Title,
		objective.Target,
		objective.Measure,
		string(objective.Status),
		objective.DueDate,
		objective.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update objective: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrObjectiveNotFound
	}

	return nil
}

// Delete removes a quality objective
func (r *PostgresObjectiveRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM quality_objectives WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete objective: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrObjectiveNotFound
	}

	return nil
}

// List retrieves all quality objectives of a tenant, newest first
func (r *PostgresObjectiveRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.QualityObjective, error) {
	query := `
		SELECT id, tenant_id, title, target, measure, status, due_date, created_by, created_at, updated_at
		FROM quality_objectives
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query objectives: %w", err)
	}
	defer rows.Close()

	var objectives []*domain.QualityObjective
	for rows.Next() {
		objective, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		objectives = append(objectives, objective)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating objectives: %w", err)
	}

	return objectives, nil
}

func scanObjective(row rowScanner) (*domain.QualityObjective, error) {
	var objective domain.QualityObjective
	var dueDate sql.NullTime

	err := row.Scan(
		&objective.ID,
		&objective.TenantID,
		&objective.Title,
		&objective.Target,
		&objective.Measure,
		&objective.Status,
		&dueDate,
		&objective.CreatedBy,
		&objective.CreatedAt,
		&objective.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		objective.DueDate = &dueDate.Time
	}

	return &objective, nil
}
