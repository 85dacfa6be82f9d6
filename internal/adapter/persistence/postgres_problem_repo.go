package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresProblemRepository implements ProblemRepository using PostgreSQL
type PostgresProblemRepository struct {
	db *sql.DB
}

// NewPostgresProblemRepository creates a new PostgreSQL problem repository
func NewPostgresProblemRepository(db *sql.DB) ports.ProblemRepository {
	return &PostgresProblemRepository{db: db}
}

const problemColumns = `id, tenant_id, title, description, source, status, due_date, assigned_to, created_by, created_at, updated_at`

// Create saves a new problem
func (r *PostgresProblemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	query := `
		INSERT INTO problems (` + problemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		problem.ID,
		string(problem.TenantID),
		problem.Title,
		problem.Description,
		string(problem.Source),
		string(problem.Status),
		problem.DueDate,
		problem.AssignedTo,
		problem.CreatedBy,
		problem.CreatedAt,
		problem.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create problem: %w", err)
	}

	return nil
}

// FindByID retrieves a problem by its ID within a tenant
func (r *PostgresProblemRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM problems
		WHERE tenant_id = $1 AND id = $2
	`

	problem, err := scanProblem(r.db.QueryRowContext(ctx, query, string(tenantID), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProblemNotFound
		}
		return nil, fmt.Errorf("failed to find problem: %w", err)
	}

	return problem, nil
}

// Update updates an existing problem
func (r *PostgresProblemRepository) Update(ctx context.Context, problem *domain.Problem) error {
	query := `
		UPDATE problems
		SET title = $3, description = $4, source = $5, status = $6, due_date = $7,
			assigned_to = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(problem.TenantID),
		problem.ID,
		problem.Title,
		problem.Description,
		string(problem.Source),
		string(problem.Status),
		problem.DueDate,
		problem.AssignedTo,
		problem.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update problem: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrProblemNotFound
	}

	return nil
}

// Delete removes a problem
func (r *PostgresProblemRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM problems WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete problem: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrProblemNotFound
	}

	return nil
}

// List retrieves all problems of a tenant, newest first
func (r *PostgresProblemRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Problem, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM problems
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	return r.queryMany(ctx, query, string(tenantID))
}

// Count returns the number of problems of a tenant
func (r *PostgresProblemRepository) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	query := `SELECT COUNT(*) FROM problems WHERE tenant_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count problems: %w", err)
	}

	return count, nil
}

// ListByStatus retrieves problems in a given status, oldest first
func (r *PostgresProblemRepository) ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.ProblemStatus) ([]*domain.Problem, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM problems
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at ASC
	`

	return r.queryMany(ctx, query, string(tenantID), string(status))
}

// ListOverdue retrieves open or in-progress problems whose due date is
// before the given time
func (r *PostgresProblemRepository) ListOverdue(ctx context.Context, tenantID domain.TenantID, before time.Time) ([]*domain.Problem, error) {
	query := `
		SELECT ` + problemColumns + `
		FROM problems
		WHERE tenant_id = $1 AND status != 'CLOSED' AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date ASC
	`

	return r.queryMany(ctx, query, string(tenantID), before)
}

func (r *PostgresProblemRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Problem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query problems: %w", err)
	}
	defer rows.Close()

	var problems []*domain.Problem
	for rows.Next() {
		problem, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		problems = append(problems, problem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating problems: %w", err)
	}

	return problems, nil
}

func scanProblem(row rowScanner) (*domain.Problem, error) {
	var problem domain.Problem
	var dueDate sql.NullTime
	var assignedTo sql.NullString

	err := row.Scan(
		&problem.ID,
		&problem.TenantID,
		&problem.Title,
		&problem.Description,
		&problem.Source,
		&problem.Status,
		&dueDate,
		&assignedTo,
		&problem.CreatedBy,
		&problem.CreatedAt,
		&problem.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		problem.DueDate = &dueDate.Time
	}
	if assignedTo.Valid {
		problem.AssignedTo = &assignedTo.String
	}

	return &problem, nil
}
