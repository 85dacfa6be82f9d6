package usecase

import (
	"context"
	"time"

	"github.com/genestial/miniqms/internal/domain"
)

// Map-backed fakes for the repository ports. They filter by tenant the
// same way the Postgres adapters do, so cross-tenant reads stay invisible
// in tests too.

type fakeEvidenceRepo struct {
	items []*domain.Evidence
}

func (f *fakeEvidenceRepo) Create(ctx context.Context, e *domain.Evidence) error {
	f.items = append(f.items, e)
	return nil
}

func (f *fakeEvidenceRepo) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Evidence, error) {
	for _, e := range f.items {
		if e.TenantID == tenantID && e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrEvidenceNotFound
}

func (f *fakeEvidenceRepo) Update(ctx context.Context, e *domain.Evidence) error {
	for i, existing := range f.items {
		if existing.TenantID == e.TenantID && existing.ID == e.ID {
			f.items[i] = e
			return nil
		}
	}
	return domain.ErrEvidenceNotFound
}

func (f *fakeEvidenceRepo) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	for i, e := range f.items {
		if e.TenantID == tenantID && e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrEvidenceNotFound
}

func (f *fakeEvidenceRepo) List(ctx context.Context, tenantID domain.TenantID, filter domain.EvidenceFilter) ([]*domain.Evidence, error) {
	var out []*domain.Evidence
	for _, e := range f.items {
		if e.TenantID != tenantID {
			continue
		}
		if filter.Kind != nil && e.Kind != *filter.Kind {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEvidenceRepo) CountByKindAndStatus(ctx context.Context, tenantID domain.TenantID, kind domain.EvidenceKind, status domain.EvidenceStatus) (int, error) {
	count := 0
	for _, e := range f.items {
		if e.TenantID == tenantID && e.Kind == kind && e.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeEvidenceRepo) ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.EvidenceStatus) ([]*domain.Evidence, error) {
	var out []*domain.Evidence
	for _, e := range f.items {
		if e.TenantID == tenantID && e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRiskRepo struct {
	items []*domain.Risk
}

func (f *fakeRiskRepo) Create(ctx context.Context, r *domain.Risk) error {
	f.items = append(f.items, r)
	return nil
}

func (f *fakeRiskRepo) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Risk, error) {
	for _, r := range f.items {
		if r.TenantID == tenantID && r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrRiskNotFound
}

func (f *fakeRiskRepo) Update(ctx context.Context, r *domain.Risk) error { return nil }

func (f *fakeRiskRepo) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeRiskRepo) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Risk, error) {
	var out []*domain.Risk
	for _, r := range f.items {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRiskRepo) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, r := range f.items {
		if r.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeProblemRepo struct {
	items []*domain.Problem
}

func (f *fakeProblemRepo) Create(ctx context.Context, p *domain.Problem) error {
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProblemRepo) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Problem, error) {
	for _, p := range f.items {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProblemNotFound
}

func (f *fakeProblemRepo) Update(ctx context.Context, p *domain.Problem) error { return nil }

func (f *fakeProblemRepo) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeProblemRepo) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Problem, error) {
	var out []*domain.Problem
	for _, p := range f.items {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProblemRepo) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, p := range f.items {
		if p.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProblemRepo) ListByStatus(ctx context.Context, tenantID domain.TenantID, status domain.ProblemStatus) ([]*domain.Problem, error) {
	var out []*domain.Problem
	for _, p := range f.items {
		if p.TenantID == tenantID && p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProblemRepo) ListOverdue(ctx context.Context, tenantID domain.TenantID, before time.Time) ([]*domain.Problem, error) {
	var out []*domain.Problem
	for _, p := range f.items {
		if p.TenantID == tenantID && p.IsOverdue(before) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	items []*domain.InternalAudit
}

func (f *fakeAuditRepo) Create(ctx context.Context, a *domain.InternalAudit) error {
	f.items = append(f.items, a)
	return nil
}

func (f *fakeAuditRepo) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.InternalAudit, error) {
	for _, a := range f.items {
		if a.TenantID == tenantID && a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAuditNotFound
}

func (f *fakeAuditRepo) Update(ctx context.Context, a *domain.InternalAudit) error { return nil }

func (f *fakeAuditRepo) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.InternalAudit, error) {
	var out []*domain.InternalAudit
	for _, a := range f.items {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, a := range f.items {
		if a.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeReviewRepo struct {
	items []*domain.ManagementReview
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *domain.ManagementReview) error {
	f.items = append(f.items, r)
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.ManagementReview, error) {
	for _, r := range f.items {
		if r.TenantID == tenantID && r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (f *fakeReviewRepo) Update(ctx context.Context, r *domain.ManagementReview) error { return nil }

func (f *fakeReviewRepo) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeReviewRepo) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ManagementReview, error) {
	var out []*domain.ManagementReview
	for _, r := range f.items {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, r := range f.items {
		if r.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeProcessRepo struct {
	items []*domain.Process
}

func (f *fakeProcessRepo) Create(ctx context.Context, p *domain.Process) error {
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProcessRepo) FindByID(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Process, error) {
	for _, p := range f.items {
		if p.TenantID == tenantID && p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProcessNotFound
}

func (f *fakeProcessRepo) Update(ctx context.Context, p *domain.Process) error { return nil }

func (f *fakeProcessRepo) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeProcessRepo) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.Process, error) {
	var out []*domain.Process
	for _, p := range f.items {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProcessRepo) Count(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, p := range f.items {
		if p.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeCompanyRepo struct {
	profiles    map[domain.TenantID]*domain.CompanyProfile
	roles       []*domain.CompanyRole
	assignments []*domain.RoleAssignment
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{profiles: make(map[domain.TenantID]*domain.CompanyProfile)}
}

func (f *fakeCompanyRepo) GetProfile(ctx context.Context, tenantID domain.TenantID) (*domain.CompanyProfile, error) {
	if profile, ok := f.profiles[tenantID]; ok {
		return profile, nil
	}
	return nil, domain.ErrCompanyProfileNotFound
}

func (f *fakeCompanyRepo) UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error {
	f.profiles[profile.TenantID] = profile
	return nil
}

func (f *fakeCompanyRepo) CreateRole(ctx context.Context, role *domain.CompanyRole) error {
	f.roles = append(f.roles, role)
	return nil
}

func (f *fakeCompanyRepo) ListRoles(ctx context.Context, tenantID domain.TenantID) ([]*domain.CompanyRole, error) {
	var out []*domain.CompanyRole
	for _, r := range f.roles {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) DeleteRole(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeCompanyRepo) CountRoles(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, r := range f.roles {
		if r.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCompanyRepo) CreateAssignment(ctx context.Context, a *domain.RoleAssignment) error {
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeCompanyRepo) ListAssignments(ctx context.Context, tenantID domain.TenantID) ([]*domain.RoleAssignment, error) {
	var out []*domain.RoleAssignment
	for _, a := range f.assignments {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) DeleteAssignment(ctx context.Context, tenantID domain.TenantID, id string) error {
	return nil
}

func (f *fakeCompanyRepo) CountAssignments(ctx context.Context, tenantID domain.TenantID) (int, error) {
	count := 0
	for _, a := range f.assignments {
		if a.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeScopeRepo struct {
	items []*domain.ClauseScope
}

func (f *fakeScopeRepo) ListExcluded(ctx context.Context, tenantID domain.TenantID) ([]string, error) {
	var out []string
	for _, s := range f.items {
		if s.TenantID == tenantID && !s.Applicable {
			out = append(out, s.ClauseCode)
		}
	}
	return out, nil
}

func (f *fakeScopeRepo) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.ClauseScope, error) {
	var out []*domain.ClauseScope
	for _, s := range f.items {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScopeRepo) Set(ctx context.Context, scope *domain.ClauseScope) error {
	for i, s := range f.items {
		if s.TenantID == scope.TenantID && s.ClauseCode == scope.ClauseCode {
			f.items[i] = scope
			return nil
		}
	}
	f.items = append(f.items, scope)
	return nil
}
