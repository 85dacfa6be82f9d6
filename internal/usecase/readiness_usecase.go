package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
	"github.com/genestial/miniqms/internal/standards"
)

// ReadinessUseCase computes per-clause compliance status and overall
// readiness for a tenant. It is a pure read-side projection: every call
// re-queries the tenant's current records and nothing is mutated.
type ReadinessUseCase struct {
	catalog  *standards.Catalog
	evidence ports.EvidenceRepository
	risks    ports.RiskRepository
	problems ports.ProblemRepository
	audits   ports.AuditRepository
	reviews  ports.ReviewRepository
	scopes   ports.ScopeRepository
}

// NewReadinessUseCase creates a new readiness use case
func NewReadinessUseCase(
	catalog *standards.Catalog,
	evidence ports.EvidenceRepository,
	risks ports.RiskRepository,
	problems ports.ProblemRepository,
	audits ports.AuditRepository,
	reviews ports.ReviewRepository,
	scopes ports.ScopeRepository,
) *ReadinessUseCase {
	return &ReadinessUseCase{
		catalog:  catalog,
		evidence: evidence,
		risks:    risks,
		problems: problems,
		audits:   audits,
		reviews:  reviews,
		scopes:   scopes,
	}
}

// ApplicableClauses returns the catalog clauses not marked "not
// applicable" for the tenant, in catalog order
func (uc *ReadinessUseCase) ApplicableClauses(ctx context.Context, tenantID domain.TenantID) ([]domain.Clause, error) {
	excluded, err := uc.scopes.ListExcluded(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clause scope: %w", err)
	}
	return uc.catalog.ApplicableClauses(excluded), nil
}

// IsRequirementMet checks whether one required evidence kind of a clause
// is satisfied by the tenant's current records. Unknown kinds are unmet,
// never an error; a "review" requirement is only satisfiable on clauses
// 9.2 (internal audits) and 9.3 (management reviews).
func (uc *ReadinessUseCase) IsRequirementMet(ctx context.Context, tenantID domain.TenantID, clauseCode string, kind domain.RequirementKind) (bool, error) {
	switch kind {
	case domain.RequirementPolicy:
		return uc.hasApprovedEvidence(ctx, tenantID, domain.EvidenceKindPolicy)

	case domain.RequirementProcedure:
		return uc.hasApprovedEvidence(ctx, tenantID, domain.EvidenceKindProcedure)

	case domain.RequirementRecord:
		return uc.hasApprovedEvidence(ctx, tenantID, domain.EvidenceKindRecord)

	case domain.RequirementRiskThinking:
		count, err := uc.risks.Count(ctx, tenantID)
		if err != nil {
			return false, fmt.Errorf("failed to count risks: %w", err)
		}
		return count > 0, nil

	case domain.RequirementReview:
		switch clauseCode {
		case "9.2":
			count, err := uc.audits.Count(ctx, tenantID)
			if err != nil {
				return false, fmt.Errorf("failed to count audits: %w", err)
			}
			return count > 0, nil
		case "9.3":
			count, err := uc.reviews.Count(ctx, tenantID)
			if err != nil {
				return false, fmt.Errorf("failed to count reviews: %w", err)
			}
			return count > 0, nil
		}
		// no satisfying category for a review requirement on other clauses
		return false, nil

	case domain.RequirementAction:
		count, err := uc.problems.Count(ctx, tenantID)
		if err != nil {
			return false, fmt.Errorf("failed to count problems: %w", err)
		}
		return count > 0, nil

	default:
		return false, nil
	}
}

func (uc *ReadinessUseCase) hasApprovedEvidence(ctx context.Context, tenantID domain.TenantID, kind domain.EvidenceKind) (bool, error) {
	count, err := uc.evidence.CountByKindAndStatus(ctx, tenantID, kind, domain.EvidenceStatusApproved)
	if err != nil {
		return false, fmt.Errorf("failed to count %s evidence: %w", strings.ToLower(string(kind)), err)
	}
	return count > 0, nil
}

// ClauseStatus evaluates all requirements of a clause and produces the
// dashboard card: status level, explanation, missing items, and one
// remediation link per missing kind
func (uc *ReadinessUseCase) ClauseStatus(ctx context.Context, tenantID domain.TenantID, clause domain.Clause) (*domain.ClauseCard, error) {
	missingItems := []string{}
	fixLinks := []domain.FixLink{}

	for _, req := range clause.Requirements {
		met, err := uc.IsRequirementMet(ctx, tenantID, clause.Code, req.Kind)
		if err != nil {
			return nil, err
		}
		if !met {
			missingItems = append(missingItems, req.Description)
			fixLinks = append(fixLinks, remediationLinks(clause.Code, req.Kind)...)
		}
	}

	status := domain.ClauseStatusFullyMet
	if len(missingItems) > 0 {
		if len(missingItems) == len(clause.Requirements) {
			status = domain.ClauseStatusUnmet
		} else {
			status = domain.ClauseStatusPartiallyMet
		}
	}

	return &domain.ClauseCard{
		ClauseCode:   clause.Code,
		ClauseTitle:  clause.Title,
		Status:       status,
		Explanation:  explain(status, missingItems, clause),
		MissingItems: missingItems,
		FixLinks:     fixLinks,
	}, nil
}

// ClauseCards evaluates every given clause for the tenant
func (uc *ReadinessUseCase) ClauseCards(ctx context.Context, tenantID domain.TenantID, clauses []domain.Clause) ([]*domain.ClauseCard, error) {
	cards := make([]*domain.ClauseCard, 0, len(clauses))
	for _, clause := range clauses {
		card, err := uc.ClauseStatus(ctx, tenantID, clause)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Summary computes the overall readiness percentage and per-status
// counts over the given clause set. The three counts always sum to the
// clause count; an empty set yields 0 percent.
func (uc *ReadinessUseCase) Summary(ctx context.Context, tenantID domain.TenantID, clauses []domain.Clause) (*domain.ReadinessSummary, error) {
	summary := &domain.ReadinessSummary{Applicable: len(clauses)}

	for _, clause := range clauses {
		card, err := uc.ClauseStatus(ctx, tenantID, clause)
		if err != nil {
			return nil, err
		}
		switch card.Status {
		case domain.ClauseStatusFullyMet:
			summary.FullyMet++
		case domain.ClauseStatusPartiallyMet:
			summary.PartiallyMet++
		default:
			summary.Unmet++
		}
	}

	if summary.Applicable > 0 {
		summary.Percentage = int(math.Round(float64(summary.FullyMet) / float64(summary.Applicable) * 100))
	}

	return summary, nil
}

// remediationLinks returns the creation-flow link for a missing
// requirement kind
func remediationLinks(clauseCode string, kind domain.RequirementKind) []domain.FixLink {
	switch kind {
	case domain.RequirementPolicy, domain.RequirementProcedure, domain.RequirementRecord:
		return []domain.FixLink{{
			Label: "Add Evidence",
			Href:  fmt.Sprintf("/evidence/new?kind=%s&clause=%s", kind, clauseCode),
		}}
	case domain.RequirementRiskThinking:
		return []domain.FixLink{{Label: "Add Risk", Href: "/risks/new"}}
	case domain.RequirementReview:
		switch clauseCode {
		case "9.2":
			return []domain.FixLink{{Label: "Record Audit", Href: "/audits/new"}}
		case "9.3":
			return []domain.FixLink{{Label: "Record Review", Href: "/reviews/new"}}
		}
		return nil
	case domain.RequirementAction:
		return []domain.FixLink{{Label: "Log Problem", Href: "/problems/new"}}
	}
	return nil
}

// explain builds the deterministic plain-language explanation for a card
func explain(status domain.ClauseStatusLevel, missingItems []string, clause domain.Clause) string {
	switch status {
	case domain.ClauseStatusFullyMet:
		return fmt.Sprintf("All requirements for %s are met. %s", clause.Code, clause.PlainEnglish)
	case domain.ClauseStatusUnmet:
		return fmt.Sprintf("Missing all required items for %s. You need: %s. %s",
			clause.Code, strings.Join(missingItems, ", "), clause.PlainEnglish)
	default:
		return fmt.Sprintf("Partially compliant. Missing: %s. %s",
			strings.Join(missingItems, ", "), clause.PlainEnglish)
	}
}
