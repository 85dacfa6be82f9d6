package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genestial/miniqms/internal/domain"
)

type actionFixture struct {
	*readinessFixture
	processes *fakeProcessRepo
	company   *fakeCompanyRepo
	actions   *ActionUseCase
}

func newActionFixture(t *testing.T) *actionFixture {
	t.Helper()

	f := &actionFixture{
		readinessFixture: newReadinessFixture(t),
		processes:        &fakeProcessRepo{},
		company:          newFakeCompanyRepo(),
	}
	f.actions = NewActionUseCase(f.catalog, f.uc, f.evidence, f.risks, f.problems, f.reviews, f.processes, f.company)
	return f
}

// completeBaseline fills in every setup step so no setup gap candidates
// are generated: profile, a process, three risks, a review, and an
// approved quality policy.
func (f *actionFixture) completeBaseline(t *testing.T, tenantID domain.TenantID) {
	t.Helper()

	f.company.profiles[tenantID] = &domain.CompanyProfile{TenantID: tenantID, LegalName: "Acme Widgets Ltd"}
	f.processes.items = append(f.processes.items, domain.NewProcess(tenantID, "Order fulfilment", "", "ops", "user-1"))
	for i := 0; i < minRiskEntries; i++ {
		f.risks.items = append(f.risks.items, domain.NewRisk(tenantID, "risk", domain.RiskTypeRisk, domain.RiskLevelLow, domain.RiskLevelLow, "", "user-1"))
	}
	f.reviews.items = append(f.reviews.items, domain.NewManagementReview(tenantID, "annual review", nil, nil, "", "user-1"))
	f.addApprovedEvidence(t, tenantID, domain.EvidenceKindPolicy)
}

func TestNextBestActions_EmptyTenantTopFive(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	clauses, err := f.uc.ApplicableClauses(ctx, testTenant)
	require.NoError(t, err)

	actions, err := f.actions.NextBestActions(ctx, testTenant, clauses, 0)
	require.NoError(t, err)
	require.Len(t, actions, 5, "limit defaults to five")

	// the five setup gaps outrank everything on an empty tenant
	wantIDs := []string{"onboarding-company", "onboarding-processes", "onboarding-risks", "onboarding-review", "onboarding-policy"}
	wantScores := []int{100, 95, 90, 85, 80}
	for i, action := range actions {
		assert.Equal(t, wantIDs[i], action.ID)
		assert.Equal(t, wantScores[i], action.Priority)
	}
}

func TestNextBestActions_ScoresNonIncreasing(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	clauses, err := f.uc.ApplicableClauses(ctx, testTenant)
	require.NoError(t, err)

	actions, err := f.actions.NextBestActions(ctx, testTenant, clauses, 100)
	require.NoError(t, err)
	require.Greater(t, len(actions), 5)

	for i := 1; i < len(actions); i++ {
		assert.GreaterOrEqual(t, actions[i-1].Priority, actions[i].Priority,
			"action %s outranked by later %s", actions[i-1].ID, actions[i].ID)
	}
}

func TestNextBestActions_RespectsLimit(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	clauses, err := f.uc.ApplicableClauses(ctx, testTenant)
	require.NoError(t, err)

	actions, err := f.actions.NextBestActions(ctx, testTenant, clauses, 3)
	require.NoError(t, err)
	assert.Len(t, actions, 3)
}

func TestNextBestActions_SkippedOnboardingCapped(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	steps := []string{"Company profile", "Processes", "Risks", "Management review", "Quality policy"}
	for _, step := range steps {
		f.problems.items = append(f.problems.items,
			domain.NewProblem(testTenant, "Skipped: "+step, "Complete onboarding: "+step, domain.ProblemSourceOnboarding, nil, "user-1"))
	}

	actions, err := f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	require.Len(t, actions, maxSkippedOnboardingActions, "skipped-onboarding candidates are capped at three")

	for _, action := range actions {
		assert.True(t, strings.HasPrefix(action.ID, "onboarding-skipped-"), "unexpected action %s", action.ID)
		assert.Equal(t, prioritySkippedOnboarding, action.Priority)
		assert.Equal(t, "/onboarding", action.CTALink)
	}
}

func TestNextBestActions_OverdueProblem(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	due := time.Now().Add(-48 * time.Hour)
	longDescription := "Customer complaint about recurring late deliveries from our main distribution center"
	problem := domain.NewProblem(testTenant, "late deliveries", longDescription, domain.ProblemSourceCustomer, &due, "user-1")
	f.problems.items = append(f.problems.items, problem)

	actions, err := f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, "overdue-"+problem.ID, action.ID)
	assert.Equal(t, priorityOverdueBase+10, action.Priority)
	assert.Equal(t, "10.2", action.ClauseCode)
	assert.Equal(t, "/problems/"+problem.ID, action.CTALink)
	assert.True(t, strings.HasPrefix(action.Description, "Overdue corrective action: "))
	assert.True(t, strings.HasSuffix(action.Description, "..."), "long descriptions are truncated")
}

func TestNextBestActions_ClosedProblemNotOverdue(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	due := time.Now().Add(-48 * time.Hour)
	problem := domain.NewProblem(testTenant, "old issue", "resolved long ago", domain.ProblemSourceInternal, &due, "user-1")
	require.NoError(t, problem.Close())
	f.problems.items = append(f.problems.items, problem)

	actions, err := f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestNextBestActions_PendingApproval(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	draft := domain.NewEvidence(testTenant, "Calibration procedure", "", domain.EvidenceKindProcedure, "user-1")
	f.evidence.items = append(f.evidence.items, draft)

	actions, err := f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, "approve-"+draft.ID, action.ID)
	assert.Equal(t, priorityPendingBase+7, action.Priority)
	assert.Equal(t, "7.5", action.ClauseCode)
	assert.Equal(t, "Approve evidence: Calibration procedure", action.Description)
	assert.Equal(t, "/evidence/"+draft.ID, action.CTALink)
}

func TestNextBestActions_MissingEvidenceRankedByClause(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	// 10.2 needs a problem, 4.1 a procedure; neither exists, and the
	// later clause must outrank the earlier one
	clauses := []domain.Clause{f.clause(t, "10.2"), f.clause(t, "4.1")}

	actions, err := f.actions.NextBestActions(ctx, testTenant, clauses, 10)
	require.NoError(t, err)
	require.Len(t, actions, 2)

	assert.Equal(t, "missing-10.2-action", actions[0].ID)
	assert.Equal(t, priorityMissingBase+10, actions[0].Priority)
	assert.Equal(t, "/problems/new", actions[0].CTALink)

	assert.Equal(t, "missing-4.1-procedure", actions[1].ID)
	assert.Equal(t, priorityMissingBase+4, actions[1].Priority)
	assert.Equal(t, "/evidence/new?kind=procedure&clause=4.1", actions[1].CTALink)
	assert.Equal(t, "30 min", actions[1].EstimatedTime)
}

func TestNextBestActions_RoleAssignmentGap(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	role := domain.NewCompanyRole(testTenant, "Quality Manager", "")
	f.company.roles = append(f.company.roles, role)

	actions, err := f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "assign-roles", actions[0].ID)
	assert.Equal(t, priorityRoleAssignment, actions[0].Priority)

	// any assignment clears the gap
	f.company.assignments = append(f.company.assignments, domain.NewRoleAssignment(testTenant, role.ID, "user-1"))

	actions, err = f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestNextBestActions_RiskCountBelowMinimum(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	f.completeBaseline(t, testTenant)

	// drop below the three-entry baseline
	f.risks.items = f.risks.items[:2]

	actions, err := f.actions.NextBestActions(ctx, testTenant, nil, 10)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "onboarding-risks", actions[0].ID)
	assert.Equal(t, priorityRisks, actions[0].Priority)
}

func TestOnboardingStepName(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "colon separated step",
			description: "Complete onboarding: Add your business processes.",
			want:        "Add your business processes",
		},
		{
			name:        "no trailing period",
			description: "Complete onboarding: Upload quality policy",
			want:        "Upload quality policy",
		},
		{
			name:        "generic skip note",
			description: "User skipped an onboarding step",
			want:        "step",
		},
		{
			name:        "no onboarding keyword",
			description: "Customer complaint about packaging",
			want:        "onboarding step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnboardingStepName(tt.description))
		})
	}
}
