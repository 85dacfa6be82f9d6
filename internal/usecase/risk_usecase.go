package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateRiskRequest represents the request to create a risk entry
type CreateRiskRequest struct {
	Title      string           `json:"title"`
	Type       domain.RiskType  `json:"type"`
	Impact     domain.RiskLevel `json:"impact"`
	Likelihood domain.RiskLevel `json:"likelihood"`
	Treatment  string           `json:"treatment"`
}

// RiskUseCase handles risk-and-opportunity entries
type RiskUseCase struct {
	risks ports.RiskRepository
}

// NewRiskUseCase creates a new risk use case
func NewRiskUseCase(risks ports.RiskRepository) *RiskUseCase {
	return &RiskUseCase{risks: risks}
}

// Create creates a new risk entry
func (uc *RiskUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateRiskRequest) (*domain.Risk, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Type == "" {
		req.Type = domain.RiskTypeRisk
	}
	if !validRiskLevel(req.Impact) || !validRiskLevel(req.Likelihood) {
		return nil, fmt.Errorf("impact and likelihood must be LOW, MEDIUM or HIGH")
	}

	risk := domain.NewRisk(tenantID, req.Title, req.Type, req.Impact, req.Likelihood, req.Treatment, userID)
	if err := uc.risks.Create(ctx, risk); err != nil {
		return nil, fmt.Errorf("failed to create risk: %w", err)
	}
	return risk, nil
}

// Get retrieves a risk by ID
func (uc *RiskUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Risk, error) {
	risk, err := uc.risks.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk: %w", err)
	}
	return risk, nil
}

// List retrieves all risk entries for a tenant
func (uc *RiskUseCase) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Risk, error) {
	risks, err := uc.risks.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list risks: %w", err)
	}
	return risks, nil
}

// Update replaces the mutable fields of a risk entry
func (uc *RiskUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req CreateRiskRequest) (*domain.Risk, error) {
	risk, err := uc.risks.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk: %w", err)
	}

	if strings.TrimSpace(req.Title) != "" {
		risk.Title = req.Title
	}
	if req.Type != "" {
		risk.Type = req.Type
	}
	if req.Impact != "" {
		if !validRiskLevel(req.Impact) {
			return nil, fmt.Errorf("invalid impact: %s", req.Impact)
		}
		risk.Impact = req.Impact
	}
	if req.Likelihood != "" {
		if !validRiskLevel(req.Likelihood) {
			return nil, fmt.Errorf("invalid likelihood: %s", req.Likelihood)
		}
		risk.Likelihood = req.Likelihood
	}
	risk.Treatment = req.Treatment

	if err := uc.risks.Update(ctx, risk); err != nil {
		return nil, fmt.Errorf("failed to update risk: %w", err)
	}
	return risk, nil
}

// Delete removes a risk entry
func (uc *RiskUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.risks.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete risk: %w", err)
	}
	return nil
}

func validRiskLevel(level domain.RiskLevel) bool {
	switch level {
	case domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh:
		return true
	}
	return false
}
