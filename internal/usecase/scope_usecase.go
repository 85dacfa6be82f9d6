package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
	"github.com/genestial/miniqms/internal/standards"
)

// ClauseWithScope represents a catalog clause together with its
// applicability for one tenant
type ClauseWithScope struct {
	domain.Clause
	Applicable    bool   `json:"applicable"`
	Justification string `json:"justification,omitempty"`
}

// SetScopeRequest represents the request to toggle clause applicability
type SetScopeRequest struct {
	ClauseCode    string `json:"clause_code"`
	Applicable    bool   `json:"applicable"`
	Justification string `json:"justification"`
}

// ScopeUseCase handles per-tenant clause applicability overrides
type ScopeUseCase struct {
	catalog *standards.Catalog
	scopes  ports.ScopeRepository
}

// NewScopeUseCase creates a new scope use case
func NewScopeUseCase(catalog *standards.Catalog, scopes ports.ScopeRepository) *ScopeUseCase {
	return &ScopeUseCase{catalog: catalog, scopes: scopes}
}

// ListClauses returns the full catalog annotated with the tenant's
// applicability overrides. Clauses without an override are applicable.
func (uc *ScopeUseCase) ListClauses(ctx context.Context, tenantID domain.TenantID) ([]ClauseWithScope, error) {
	overrides, err := uc.scopes.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clause scope: %w", err)
	}

	byCode := make(map[string]*domain.ClauseScope, len(overrides))
	for _, o := range overrides {
		byCode[o.ClauseCode] = o
	}

	clauses := uc.catalog.Clauses()
	out := make([]ClauseWithScope, 0, len(clauses))
	for _, clause := range clauses {
		entry := ClauseWithScope{Clause: clause, Applicable: true}
		if o, ok := byCode[clause.Code]; ok {
			entry.Applicable = o.Applicable
			entry.Justification = o.Justification
		}
		out = append(out, entry)
	}
	return out, nil
}

// SetScope creates or updates an applicability override for a clause
func (uc *ScopeUseCase) SetScope(ctx context.Context, tenantID domain.TenantID, req SetScopeRequest) (*domain.ClauseScope, error) {
	if _, err := uc.catalog.Get(req.ClauseCode); err != nil {
		return nil, err
	}
	if !req.Applicable && req.Justification == "" {
		return nil, fmt.Errorf("a justification is required to exclude a clause")
	}

	scope := &domain.ClauseScope{
		TenantID:      tenantID,
		ClauseCode:    req.ClauseCode,
		Applicable:    req.Applicable,
		Justification: req.Justification,
		UpdatedAt:     time.Now(),
	}
	if err := uc.scopes.Set(ctx, scope); err != nil {
		return nil, fmt.Errorf("failed to save clause scope: %w", err)
	}
	return scope, nil
}
