package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
	"github.com/genestial/miniqms/internal/standards"
)

// Priority bases per candidate source. Setup gaps carry fixed scores;
// the other categories add the integer part of the clause code on top,
// so later clauses outrank earlier ones within a category. That
// coupling is kept for compatibility with the original scoring.
const (
	priorityCompanyProfile    = 100
	priorityProcesses         = 95
	priorityRisks             = 90
	priorityReview            = 85
	priorityQualityPolicy     = 80
	prioritySkippedOnboarding = 75
	priorityOverdueBase       = 70
	priorityRoleAssignment    = 70
	priorityPendingBase       = 65
	priorityMissingBase       = 60
)

const maxSkippedOnboardingActions = 3

// minRiskEntries is the baseline number of risk entries expected before
// the risk setup gap stops being suggested
const minRiskEntries = 3

var onboardingStepPattern = regexp.MustCompile(`(?i)onboarding:?\s*(.+?)(?:\.|$)`)

// ActionUseCase scans a tenant's records for gaps and ranks them into a
// bounded next-best-action list. Like the readiness engine it is a pure
// read-side projection.
type ActionUseCase struct {
	catalog   *standards.Catalog
	readiness *ReadinessUseCase
	evidence  ports.EvidenceRepository
	risks     ports.RiskRepository
	problems  ports.ProblemRepository
	reviews   ports.ReviewRepository
	processes ports.ProcessRepository
	company   ports.CompanyRepository
}

// NewActionUseCase creates a new action use case
func NewActionUseCase(
	catalog *standards.Catalog,
	readiness *ReadinessUseCase,
	evidence ports.EvidenceRepository,
	risks ports.RiskRepository,
	problems ports.ProblemRepository,
	reviews ports.ReviewRepository,
	processes ports.ProcessRepository,
	company ports.CompanyRepository,
) *ActionUseCase {
	return &ActionUseCase{
		catalog:   catalog,
		readiness: readiness,
		evidence:  evidence,
		risks:     risks,
		problems:  problems,
		reviews:   reviews,
		processes: processes,
		company:   company,
	}
}

// NextBestActions builds the ranked action list for a tenant over the
// given applicable clauses, truncated to limit. Candidates are scanned
// in a fixed source order; the sort is stable, so equal scores keep
// scan order.
func (uc *ActionUseCase) NextBestActions(ctx context.Context, tenantID domain.TenantID, clauses []domain.Clause, limit int) ([]domain.NextBestAction, error) {
	if limit <= 0 {
		limit = 5
	}

	var actions []domain.NextBestAction

	skipped, err := uc.skippedOnboardingActions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	actions = append(actions, skipped...)

	missing, err := uc.missingEvidenceActions(ctx, tenantID, clauses)
	if err != nil {
		return nil, err
	}
	actions = append(actions, missing...)

	overdue, err := uc.overdueProblemActions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	actions = append(actions, overdue...)

	pending, err := uc.pendingApprovalActions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	actions = append(actions, pending...)

	setup, err := uc.setupGapActions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	actions = append(actions, setup...)

	roles, err := uc.roleAssignmentActions(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	actions = append(actions, roles...)

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority > actions[j].Priority
	})

	if len(actions) > limit {
		actions = actions[:limit]
	}
	return actions, nil
}

// skippedOnboardingActions surfaces open problems recorded when a user
// skipped an onboarding step. Detection is a keyword match over the
// problem description; at most three are included.
func (uc *ActionUseCase) skippedOnboardingActions(ctx context.Context, tenantID domain.TenantID) ([]domain.NextBestAction, error) {
	open, err := uc.problems.ListByStatus(ctx, tenantID, domain.ProblemStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to list open problems: %w", err)
	}

	var actions []domain.NextBestAction
	for _, problem := range open {
		desc := strings.ToLower(problem.Description)
		if !strings.Contains(desc, "complete onboarding") && !strings.Contains(desc, "onboarding step") {
			continue
		}
		actions = append(actions, domain.NextBestAction{
			ID:            "onboarding-skipped-" + problem.ID,
			Priority:      prioritySkippedOnboarding,
			ClauseCode:    "4.1",
			ClauseTitle:   uc.clauseTitle("4.1"),
			Description:   problem.Description,
			CTALink:       "/onboarding",
			EstimatedTime: "15 min",
		})
		if len(actions) == maxSkippedOnboardingActions {
			break
		}
	}
	return actions, nil
}

// OnboardingStepName extracts the step name from a skipped-onboarding
// problem description, falling back to a generic label
func OnboardingStepName(description string) string {
	if m := onboardingStepPattern.FindStringSubmatch(description); len(m) == 2 {
		return m[1]
	}
	return "onboarding step"
}

func (uc *ActionUseCase) missingEvidenceActions(ctx context.Context, tenantID domain.TenantID, clauses []domain.Clause) ([]domain.NextBestAction, error) {
	var actions []domain.NextBestAction
	for _, clause := range clauses {
		for _, req := range clause.Requirements {
			met, err := uc.readiness.IsRequirementMet(ctx, tenantID, clause.Code, req.Kind)
			if err != nil {
				return nil, err
			}
			if met {
				continue
			}
			actions = append(actions, domain.NextBestAction{
				ID:            fmt.Sprintf("missing-%s-%s", clause.Code, req.Kind),
				Priority:      priorityMissingBase + standards.ClauseMajor(clause.Code),
				ClauseCode:    clause.Code,
				ClauseTitle:   clause.Title,
				Description:   fmt.Sprintf("Missing %s for %s", req.Description, clause.Code),
				CTALink:       actionLink(req.Kind, clause.Code),
				EstimatedTime: estimatedTime(req.Kind),
			})
		}
	}
	return actions, nil
}

func (uc *ActionUseCase) overdueProblemActions(ctx context.Context, tenantID domain.TenantID) ([]domain.NextBestAction, error) {
	overdue, err := uc.problems.ListOverdue(ctx, tenantID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue problems: %w", err)
	}

	var actions []domain.NextBestAction
	for _, problem := range overdue {
		actions = append(actions, domain.NextBestAction{
			ID:            "overdue-" + problem.ID,
			Priority:      priorityOverdueBase + standards.ClauseMajor("10.2"),
			ClauseCode:    "10.2",
			ClauseTitle:   uc.clauseTitle("10.2"),
			Description:   "Overdue corrective action: " + truncate(problem.Description, 50),
			CTALink:       "/problems/" + problem.ID,
			EstimatedTime: "15 min",
		})
	}
	return actions, nil
}

func (uc *ActionUseCase) pendingApprovalActions(ctx context.Context, tenantID domain.TenantID) ([]domain.NextBestAction, error) {
	drafts, err := uc.evidence.ListByStatus(ctx, tenantID, domain.EvidenceStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft evidence: %w", err)
	}

	var actions []domain.NextBestAction
	for _, evidence := range drafts {
		actions = append(actions, domain.NextBestAction{
			ID:            "approve-" + evidence.ID,
			Priority:      priorityPendingBase + standards.ClauseMajor("7.5"),
			ClauseCode:    "7.5",
			ClauseTitle:   uc.clauseTitle("7.5"),
			Description:   "Approve evidence: " + evidence.Title,
			CTALink:       "/evidence/" + evidence.ID,
			EstimatedTime: "5 min",
		})
	}
	return actions, nil
}

// setupGapActions checks the five baseline setup steps. Each gap is a
// single fixed candidate, present or absent as a whole.
func (uc *ActionUseCase) setupGapActions(ctx context.Context, tenantID domain.TenantID) ([]domain.NextBestAction, error) {
	var actions []domain.NextBestAction

	_, err := uc.company.GetProfile(ctx, tenantID)
	if err == domain.ErrCompanyProfileNotFound {
		actions = append(actions, domain.NextBestAction{
			ID:            "onboarding-company",
			Priority:      priorityCompanyProfile,
			ClauseCode:    "4.1",
			ClauseTitle:   uc.clauseTitle("4.1"),
			Description:   "Complete company profile",
			CTALink:       "/onboarding?step=1",
			EstimatedTime: "10 min",
		})
	} else if err != nil {
		return nil, fmt.Errorf("failed to load company profile: %w", err)
	}

	processCount, err := uc.processes.Count(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count processes: %w", err)
	}
	if processCount == 0 {
		actions = append(actions, domain.NextBestAction{
			ID:            "onboarding-processes",
			Priority:      priorityProcesses,
			ClauseCode:    "4.4",
			ClauseTitle:   uc.clauseTitle("4.4"),
			Description:   "Add your business processes",
			CTALink:       "/onboarding?step=2",
			EstimatedTime: "15 min",
		})
	}

	riskCount, err := uc.risks.Count(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count risks: %w", err)
	}
	if riskCount < minRiskEntries {
		actions = append(actions, domain.NextBestAction{
			ID:            "onboarding-risks",
			Priority:      priorityRisks,
			ClauseCode:    "6.1",
			ClauseTitle:   uc.clauseTitle("6.1"),
			Description:   "Add 3-5 risks or opportunities",
			CTALink:       "/onboarding?step=3",
			EstimatedTime: "20 min",
		})
	}

	reviewCount, err := uc.reviews.Count(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	if reviewCount == 0 {
		actions = append(actions, domain.NextBestAction{
			ID:            "onboarding-review",
			Priority:      priorityReview,
			ClauseCode:    "9.3",
			ClauseTitle:   uc.clauseTitle("9.3"),
			Description:   "Record your first management review",
			CTALink:       "/onboarding?step=4",
			EstimatedTime: "10 min",
		})
	}

	policyCount, err := uc.evidence.CountByKindAndStatus(ctx, tenantID, domain.EvidenceKindPolicy, domain.EvidenceStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to count approved policies: %w", err)
	}
	if policyCount == 0 {
		actions = append(actions, domain.NextBestAction{
			ID:            "onboarding-policy",
			Priority:      priorityQualityPolicy,
			ClauseCode:    "5.2",
			ClauseTitle:   uc.clauseTitle("5.2"),
			Description:   "Upload and approve Quality Policy",
			CTALink:       "/onboarding?step=5",
			EstimatedTime: "15 min",
		})
	}

	return actions, nil
}

func (uc *ActionUseCase) roleAssignmentActions(ctx context.Context, tenantID domain.TenantID) ([]domain.NextBestAction, error) {
	roleCount, err := uc.company.CountRoles(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}
	if roleCount == 0 {
		return nil, nil
	}

	assignmentCount, err := uc.company.CountAssignments(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count role assignments: %w", err)
	}
	if assignmentCount > 0 {
		return nil, nil
	}

	return []domain.NextBestAction{{
		ID:            "assign-roles",
		Priority:      priorityRoleAssignment,
		ClauseCode:    "5.3",
		ClauseTitle:   uc.clauseTitle("5.3"),
		Description:   "Assign users to roles",
		CTALink:       "/company/roles",
		EstimatedTime: "10 min",
	}}, nil
}

func (uc *ActionUseCase) clauseTitle(code string) string {
	clause, err := uc.catalog.Get(code)
	if err != nil {
		return code
	}
	return clause.Title
}

// actionLink returns the creation flow for a requirement kind
func actionLink(kind domain.RequirementKind, clauseCode string) string {
	switch kind {
	case domain.RequirementPolicy, domain.RequirementProcedure, domain.RequirementRecord:
		return fmt.Sprintf("/evidence/new?kind=%s&clause=%s", kind, clauseCode)
	case domain.RequirementRiskThinking:
		return "/risks/new"
	case domain.RequirementReview:
		if clauseCode == "9.2" {
			return "/audits/new"
		}
		if clauseCode == "9.3" {
			return "/reviews/new"
		}
		return "/dashboard"
	case domain.RequirementAction:
		return "/problems/new"
	default:
		return "/dashboard"
	}
}

// estimatedTime returns a rough completion time per requirement kind
func estimatedTime(kind domain.RequirementKind) string {
	switch kind {
	case domain.RequirementPolicy:
		return "20 min"
	case domain.RequirementProcedure:
		return "30 min"
	case domain.RequirementRecord:
		return "10 min"
	case domain.RequirementRiskThinking:
		return "15 min"
	case domain.RequirementReview:
		return "20 min"
	case domain.RequirementAction:
		return "15 min"
	default:
		return "15 min"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
