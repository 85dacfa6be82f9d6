package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskType represents whether an entry is a risk or an opportunity
type RiskType string

const (
	RiskTypeRisk        RiskType = "RISK"
	RiskTypeOpportunity RiskType = "OPPORTUNITY"
)

// RiskLevel represents an impact or likelihood classification
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// Risk represents a tenant-owned risk-or-opportunity entry
type Risk struct {
	ID         string    `json:"id"`
	TenantID   TenantID  `json:"tenant_id"`
	Title      string    `json:"title"`
	Type       RiskType  `json:"type"`
	Impact     RiskLevel `json:"impact"`
	Likelihood RiskLevel `json:"likelihood"`
	Treatment  string    `json:"treatment,omitempty"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewRisk creates a new risk entry
func NewRisk(tenantID TenantID, title string, riskType RiskType, impact, likelihood RiskLevel, treatment, createdBy string) *Risk {
	now := time.Now()
	return &Risk{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Title:      title,
		Type:       riskType,
		Impact:     impact,
		Likelihood: likelihood,
		Treatment:  treatment,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
