package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// PostgresReviewRepository implements ReviewRepository using PostgreSQL
type PostgresReviewRepository struct {
	db *sql.DB
}

// NewPostgresReviewRepository creates a new PostgreSQL review repository
func NewPostgresReviewRepository(db *sql.DB) ports.ReviewRepository {
	return &PostgresReviewRepository{db: db}
}

const reviewColumns = `id, tenant_id, title, held_at, attendees, notes, decisions, created_by, created_at, updated_at`

// Create saves a new management review record
func (r *PostgresReviewRepository) Create(ctx context.Context, review *domain.ManagementReview) error {
	query := `
		INSERT INTO management_reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		string(review.TenantID),
		review.Title,
		review.HeldAt,
		pq.Array(review.Attendees),
		review.Notes,
		review.Decisions,
		review.CreatedBy,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// FindByID retrieves a management review by its ID within a tenant
func (r *PostgresReviewRepository) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.ManagementReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM management_reviews
		WHERE tenant_id = $1 AND id = $2
	`

	review, err := scanReview(r.db.QueryRowContext(ctx, query, string(tenantID), id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}

	return review, nil
}

// Update updates an existing management review record
func (r *PostgresReviewRepository) Update(ctx context.Context, review *domain.ManagementReview) error {
	query := `
		UPDATE management_reviews
		SET title = $3, held_at = $4, attendees = $5, notes = $6, decisions = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		string(review.TenantID),
		review.ID,
		review.Title,
		review.HeldAt,
		pq.Array(review.Attendees),
		review.Notes,
		review.Decisions,
		review.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

// Delete removes a management review record
func (r *PostgresReviewRepository) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	query := `DELETE FROM management_reviews WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, string(tenantID), id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}

// List retrieves all management reviews of a tenant, newest first
func (r *PostgresReviewRepository) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ManagementReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM management_reviews
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.ManagementReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Count returns the number of management reviews of a tenant
func (r *PostgresReviewRepository) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	query := `SELECT COUNT(*) FROM management_reviews WHERE tenant_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, string(tenantID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}

func scanReview(row rowScanner) (*domain.ManagementReview, error) {
	var review domain.ManagementReview
	var heldAt sql.NullTime
	var attendees pq.StringArray

	err := row.Scan(
		&review.ID,
		&review.TenantID,
		&review.Title,
		&heldAt,
		&attendees,
		&review.Notes,
		&review.Decisions,
		&review.CreatedBy,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if heldAt.Valid {
		review.HeldAt = &heldAt.Time
	}
	review.Attendees = attendees

	return &review, nil
}
