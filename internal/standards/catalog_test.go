package standards

import (
	"testing"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	clauses := catalog.Clauses()
	assert.Len(t, clauses, 27)
	assert.Equal(t, "4.1", clauses[0].Code)
	assert.Equal(t, "10.3", clauses[len(clauses)-1].Code)

	for _, clause := range clauses {
		assert.NotEmpty(t, clause.Title, "clause %s has no title", clause.Code)
		assert.NotEmpty(t, clause.PlainEnglish, "clause %s has no plain english", clause.Code)
		assert.NotEmpty(t, clause.Requirements, "clause %s has no requirements", clause.Code)
	}
}

func TestCatalog_Get(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	clause, err := catalog.Get("9.2")
	require.NoError(t, err)
	assert.Equal(t, "Internal audit", clause.Title)

	_, err = catalog.Get("99.9")
	assert.ErrorIs(t, err, domain.ErrClauseNotFound)
}

func TestCatalog_Requirements(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	reqs := catalog.Requirements("5.2")
	require.Len(t, reqs, 1)
	assert.Equal(t, domain.RequirementPolicy, reqs[0].Kind)

	assert.Empty(t, catalog.Requirements("not-a-clause"))
}

func TestCatalog_RequiresKind(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	assert.True(t, catalog.RequiresKind("6.1", domain.RequirementRiskThinking))
	assert.True(t, catalog.RequiresKind("9.3", domain.RequirementReview))
	assert.False(t, catalog.RequiresKind("6.1", domain.RequirementPolicy))
	assert.False(t, catalog.RequiresKind("unknown", domain.RequirementPolicy))
}

func TestCatalog_ApplicableClauses(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	all := catalog.ApplicableClauses(nil)
	assert.Len(t, all, 27)

	applicable := catalog.ApplicableClauses([]string{"8.3", "8.4"})
	assert.Len(t, applicable, 25)
	for _, clause := range applicable {
		assert.NotEqual(t, "8.3", clause.Code)
		assert.NotEqual(t, "8.4", clause.Code)
	}

	// excluding an unknown code is a no-op
	assert.Len(t, catalog.ApplicableClauses([]string{"99.9"}), 27)
}

func TestClauseMajor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"4.1", 4},
		{"7.5", 7},
		{"10.2", 10},
		{"9", 9},
		{"abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClauseMajor(tt.code), "code %q", tt.code)
	}
}
