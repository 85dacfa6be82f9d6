package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/standards"
)

type readinessFixture struct {
	catalog  *standards.Catalog
	evidence *fakeEvidenceRepo
	risks    *fakeRiskRepo
	problems *fakeProblemRepo
	audits   *fakeAuditRepo
	reviews  *fakeReviewRepo
	scopes   *fakeScopeRepo
	uc       *ReadinessUseCase
}

func newReadinessFixture(t *testing.T) *readinessFixture {
	t.Helper()

	catalog, err := standards.Load()
	require.NoError(t, err)

	f := &readinessFixture{
		catalog:  catalog,
		evidence: &fakeEvidenceRepo{},
		risks:    &fakeRiskRepo{},
		problems: &fakeProblemRepo{},
		audits:   &fakeAuditRepo{},
		reviews:  &fakeReviewRepo{},
		scopes:   &fakeScopeRepo{},
	}
	f.uc = NewReadinessUseCase(catalog, f.evidence, f.risks, f.problems, f.audits, f.reviews, f.scopes)
	return f
}

func (f *readinessFixture) addApprovedEvidence(t *testing.T, tenantID domain.TenantID, kind domain.EvidenceKind) {
	t.Helper()
	e := domain.NewEvidence(tenantID, "doc", "", kind, "user-1")
	require.NoError(t, e.Approve("user-1"))
	f.evidence.items = append(f.evidence.items, e)
}

func (f *readinessFixture) clause(t *testing.T, code string) domain.Clause {
	t.Helper()
	clause, err := f.catalog.Get(code)
	require.NoError(t, err)
	return *clause
}

const testTenant = domain.TenantID("tenant-a")

func TestIsRequirementMet_EmptyTenant(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	kinds := []domain.RequirementKind{
		domain.RequirementPolicy,
		domain.RequirementProcedure,
		domain.RequirementRecord,
		domain.RequirementRiskThinking,
		domain.RequirementReview,
		domain.RequirementAction,
	}
	for _, kind := range kinds {
		met, err := f.uc.IsRequirementMet(ctx, testTenant, "9.2", kind)
		require.NoError(t, err)
		assert.False(t, met, "kind %s should be unmet on an empty tenant", kind)
	}
}

func TestIsRequirementMet_ApprovedEvidenceOnly(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	draft := domain.NewEvidence(testTenant, "draft policy", "", domain.EvidenceKindPolicy, "user-1")
	f.evidence.items = append(f.evidence.items, draft)

	met, err := f.uc.IsRequirementMet(ctx, testTenant, "5.2", domain.RequirementPolicy)
	require.NoError(t, err)
	assert.False(t, met, "draft evidence must not satisfy a policy requirement")

	f.addApprovedEvidence(t, testTenant, domain.EvidenceKindPolicy)

	met, err = f.uc.IsRequirementMet(ctx, testTenant, "5.2", domain.RequirementPolicy)
	require.NoError(t, err)
	assert.True(t, met)
}

func TestIsRequirementMet_TenantIsolation(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	f.addApprovedEvidence(t, domain.TenantID("tenant-b"), domain.EvidenceKindPolicy)

	met, err := f.uc.IsRequirementMet(ctx, testTenant, "5.2", domain.RequirementPolicy)
	require.NoError(t, err)
	assert.False(t, met, "another tenant's evidence must not count")
}

func TestIsRequirementMet_ReviewClauseDisambiguation(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	f.audits.items = append(f.audits.items, domain.NewInternalAudit(testTenant, "Q1 audit", "full system", "auditor", nil, "user-1"))

	met, err := f.uc.IsRequirementMet(ctx, testTenant, "9.2", domain.RequirementReview)
	require.NoError(t, err)
	assert.True(t, met, "an internal audit satisfies 9.2")

	met, err = f.uc.IsRequirementMet(ctx, testTenant, "9.3", domain.RequirementReview)
	require.NoError(t, err)
	assert.False(t, met, "an internal audit must not satisfy 9.3")

	met, err = f.uc.IsRequirementMet(ctx, testTenant, "7.1", domain.RequirementReview)
	require.NoError(t, err)
	assert.False(t, met, "a review requirement on any other clause is never satisfiable")

	f.reviews.items = append(f.reviews.items, domain.NewManagementReview(testTenant, "annual review", nil, nil, "", "user-1"))

	met, err = f.uc.IsRequirementMet(ctx, testTenant, "9.3", domain.RequirementReview)
	require.NoError(t, err)
	assert.True(t, met)
}

func TestIsRequirementMet_UnknownKind(t *testing.T) {
	f := newReadinessFixture(t)

	met, err := f.uc.IsRequirementMet(context.Background(), testTenant, "4.1", domain.RequirementKind("attestation"))
	require.NoError(t, err, "an unknown requirement kind is unmet, not an error")
	assert.False(t, met)
}

func TestClauseStatus_Unmet(t *testing.T) {
	f := newReadinessFixture(t)

	card, err := f.uc.ClauseStatus(context.Background(), testTenant, f.clause(t, "5.2"))
	require.NoError(t, err)

	assert.Equal(t, domain.ClauseStatusUnmet, card.Status)
	assert.Equal(t, []string{"Quality Policy"}, card.MissingItems)
	require.Len(t, card.FixLinks, 1)
	assert.Equal(t, "Add Evidence", card.FixLinks[0].Label)
	assert.Equal(t, "/evidence/new?kind=policy&clause=5.2", card.FixLinks[0].Href)
	assert.Contains(t, card.Explanation, "Missing all required items for 5.2")
}

func TestClauseStatus_FullyMet(t *testing.T) {
	f := newReadinessFixture(t)
	f.addApprovedEvidence(t, testTenant, domain.EvidenceKindPolicy)

	card, err := f.uc.ClauseStatus(context.Background(), testTenant, f.clause(t, "5.2"))
	require.NoError(t, err)

	assert.Equal(t, domain.ClauseStatusFullyMet, card.Status)
	assert.Empty(t, card.MissingItems)
	assert.NotNil(t, card.MissingItems, "missing items serializes as [], not null")
	assert.Empty(t, card.FixLinks)
	assert.Contains(t, card.Explanation, "All requirements for 5.2 are met")
}

func TestClauseStatus_PartiallyMet(t *testing.T) {
	f := newReadinessFixture(t)
	f.addApprovedEvidence(t, testTenant, domain.EvidenceKindPolicy)

	clause := domain.Clause{
		Code:         "6.1",
		Title:        "Actions to address risks and opportunities",
		PlainEnglish: "Identify and manage risks and opportunities",
		Requirements: []domain.EvidenceRequirement{
			{Kind: domain.RequirementPolicy, Description: "Risk policy"},
			{Kind: domain.RequirementRiskThinking, Description: "Risk register entries"},
		},
	}

	card, err := f.uc.ClauseStatus(context.Background(), testTenant, clause)
	require.NoError(t, err)

	assert.Equal(t, domain.ClauseStatusPartiallyMet, card.Status)
	assert.Equal(t, []string{"Risk register entries"}, card.MissingItems)
	require.Len(t, card.FixLinks, 1)
	assert.Equal(t, "/risks/new", card.FixLinks[0].Href)
	assert.Contains(t, card.Explanation, "Partially compliant. Missing: Risk register entries")
}

func TestClauseStatus_NoRequirements(t *testing.T) {
	f := newReadinessFixture(t)

	clause := domain.Clause{Code: "4.9", Title: "Informative annex", PlainEnglish: "No evidence expected"}

	card, err := f.uc.ClauseStatus(context.Background(), testTenant, clause)
	require.NoError(t, err)
	assert.Equal(t, domain.ClauseStatusFullyMet, card.Status, "a clause without requirements is vacuously met")
}

func TestClauseStatus_Deterministic(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()
	clause := f.clause(t, "6.1")

	first, err := f.uc.ClauseStatus(ctx, testTenant, clause)
	require.NoError(t, err)
	second, err := f.uc.ClauseStatus(ctx, testTenant, clause)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs must produce the same card")
}

func TestSummary_EmptyTenant(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	clauses, err := f.uc.ApplicableClauses(ctx, testTenant)
	require.NoError(t, err)
	require.Len(t, clauses, 27)

	summary, err := f.uc.Summary(ctx, testTenant, clauses)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, 0, summary.FullyMet)
	assert.Equal(t, 0, summary.PartiallyMet)
	assert.Equal(t, 27, summary.Unmet)
	assert.Equal(t, summary.Applicable, summary.FullyMet+summary.PartiallyMet+summary.Unmet)
}

func TestSummary_AllMet(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	f.addApprovedEvidence(t, testTenant, domain.EvidenceKindPolicy)
	f.addApprovedEvidence(t, testTenant, domain.EvidenceKindProcedure)
	f.addApprovedEvidence(t, testTenant, domain.EvidenceKindRecord)
	f.risks.items = append(f.risks.items, domain.NewRisk(testTenant, "supplier delay", domain.RiskTypeRisk, domain.RiskLevelMedium, domain.RiskLevelLow, "", "user-1"))
	f.audits.items = append(f.audits.items, domain.NewInternalAudit(testTenant, "Q1 audit", "full system", "auditor", nil, "user-1"))
	f.reviews.items = append(f.reviews.items, domain.NewManagementReview(testTenant, "annual review", nil, nil, "", "user-1"))
	f.problems.items = append(f.problems.items, domain.NewProblem(testTenant, "late delivery", "shipment arrived late", domain.ProblemSourceInternal, nil, "user-1"))

	clauses, err := f.uc.ApplicableClauses(ctx, testTenant)
	require.NoError(t, err)

	summary, err := f.uc.Summary(ctx, testTenant, clauses)
	require.NoError(t, err)

	assert.Equal(t, 100, summary.Percentage)
	assert.Equal(t, 27, summary.FullyMet)
	assert.Equal(t, 0, summary.PartiallyMet)
	assert.Equal(t, 0, summary.Unmet)
}

func TestSummary_NoApplicableClauses(t *testing.T) {
	f := newReadinessFixture(t)

	summary, err := f.uc.Summary(context.Background(), testTenant, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, 0, summary.Applicable)
}

func TestSummary_RoundsHalfUp(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	// one internal audit makes 9.2 the only fully met clause of eight
	f.audits.items = append(f.audits.items, domain.NewInternalAudit(testTenant, "Q1 audit", "full system", "auditor", nil, "user-1"))

	codes := []string{"4.1", "5.2", "6.1", "8.6", "9.2", "9.3", "10.1", "10.2"}
	clauses := make([]domain.Clause, 0, len(codes))
	for _, code := range codes {
		clauses = append(clauses, f.clause(t, code))
	}

	summary, err := f.uc.Summary(ctx, testTenant, clauses)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FullyMet)
	assert.Equal(t, 13, summary.Percentage, "1/8 rounds 12.5 up to 13")
}

func TestApplicableClauses_ScopeExclusion(t *testing.T) {
	f := newReadinessFixture(t)
	ctx := context.Background()

	f.scopes.items = append(f.scopes.items,
		&domain.ClauseScope{TenantID: testTenant, ClauseCode: "8.3", Applicable: false, Justification: "no design activities"},
		&domain.ClauseScope{TenantID: testTenant, ClauseCode: "7.1", Applicable: true},
	)

	clauses, err := f.uc.ApplicableClauses(ctx, testTenant)
	require.NoError(t, err)

	assert.Len(t, clauses, 26)
	for _, clause := range clauses {
		assert.NotEqual(t, "8.3", clause.Code)
	}

	// catalog order is preserved around the exclusion
	assert.Equal(t, "4.1", clauses[0].Code)
	assert.Equal(t, "10.3", clauses[len(clauses)-1].Code)
}
