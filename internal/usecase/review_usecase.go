package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateReviewRequest represents the request to record a management review
type CreateReviewRequest struct {
	Title     string     `json:"title"`
	HeldAt    *time.Time `json:"held_at,omitempty"`
	Attendees []string   `json:"attendees"`
	Notes     string     `json:"notes"`
	Decisions string     `json:"decisions"`
}

// ReviewUseCase handles management review records
type ReviewUseCase struct {
	reviews ports.ReviewRepository
}

// NewReviewUseCase creates a new review use case
func NewReviewUseCase(reviews ports.ReviewRepository) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews}
}

// Create records a new management review
func (uc *ReviewUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateReviewRequest) (*domain.ManagementReview, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	review := domain.NewManagementReview(tenantID, req.Title, req.HeldAt, req.Attendees, req.Notes, userID)
	review.Decisions = req.Decisions

	if err := uc.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// Get retrieves a review by ID
func (uc *ReviewUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.ManagementReview, error) {
	review, err := uc.reviews.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// List retrieves all reviews for a tenant
func (uc *ReviewUseCase) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ManagementReview, error) {
	reviews, err := uc.reviews.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Update replaces the mutable fields of a review record
func (uc *ReviewUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req CreateReviewRequest) (*domain.ManagementReview, error) {
	review, err := uc.reviews.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if strings.TrimSpace(req.Title) != "" {
		review.Title = req.Title
	}
	if req.HeldAt != nil {
		review.HeldAt = req.HeldAt
	}
	if req.Attendees != nil {
		review.Attendees = req.Attendees
	}
	review.Notes = req.Notes
	review.Decisions = req.Decisions
	review.UpdatedAt = time.Now()

	if err := uc.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// Delete removes a review record
func (uc *ReviewUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.reviews.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
