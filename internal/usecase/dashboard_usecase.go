package usecase

import (
	"context"

	"github.com/genestial/miniqms/internal/domain"
)

// DefaultActionLimit bounds the next-best-action list on the dashboard
const DefaultActionLimit = 5

// DashboardResponse represents the full dashboard payload
type DashboardResponse struct {
	Summary *domain.ReadinessSummary `json:"summary"`
	Cards   []*domain.ClauseCard     `json:"clause_cards"`
	Actions []domain.NextBestAction  `json:"next_best_actions"`
}

// DashboardUseCase assembles the dashboard for a tenant: readiness
// summary, per-clause cards, and the prioritized action list
type DashboardUseCase struct {
	readiness *ReadinessUseCase
	actions   *ActionUseCase
}

// NewDashboardUseCase creates a new dashboard use case
func NewDashboardUseCase(readiness *ReadinessUseCase, actions *ActionUseCase) *DashboardUseCase {
	return &DashboardUseCase{readiness: readiness, actions: actions}
}

// Build computes the dashboard payload for a tenant
func (uc *DashboardUseCase) Build(ctx context.Context, tenantID domain.TenantID) (*DashboardResponse, error) {
	clauses, err := uc.readiness.ApplicableClauses(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary, err := uc.readiness.Summary(ctx, tenantID, clauses)
	if err != nil {
		return nil, err
	}

	cards, err := uc.readiness.ClauseCards(ctx, tenantID, clauses)
	if err != nil {
		return nil, err
	}

	actions, err := uc.actions.NextBestActions(ctx, tenantID, clauses, DefaultActionLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Summary: summary,
		Cards:   cards,
		Actions: actions,
	}, nil
}
