// Package standards holds the static ISO 9001 clause catalog: clause
// codes, titles, plain-language summaries, and the evidence kinds each
// clause requires. The catalog is loaded once at startup and treated as
// read-only reference data by the readiness engine.
package standards

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed clauses.yaml
var clausesYAML []byte

// Catalog represents the loaded clause catalog
type Catalog struct {
	clauses []domain.Clause
	byCode  map[string]*domain.Clause
}

type catalogFile struct {
	Clauses []domain.Clause `yaml:"clauses"`
}

// Load parses the embedded clause catalog
func Load() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(clausesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse clause catalog: %w", err)
	}
	if len(file.Clauses) == 0 {
		return nil, fmt.Errorf("clause catalog is empty")
	}

	byCode := make(map[string]*domain.Clause, len(file.Clauses))
	for i := range file.Clauses {
		c := &file.Clauses[i]
		if c.Code == "" {
			return nil, fmt.Errorf("clause at index %d has no code", i)
		}
		if _, exists := byCode[c.Code]; exists {
			return nil, fmt.Errorf("duplicate clause code %q", c.Code)
		}
		byCode[c.Code] = c
	}

	return &Catalog{clauses: file.Clauses, byCode: byCode}, nil
}

// Clauses returns all clauses in catalog order
func (c *Catalog) Clauses() []domain.Clause {
	out := make([]domain.Clause, len(c.clauses))
	copy(out, c.clauses)
	return out
}

// Get returns the clause with the given code
func (c *Catalog) Get(code string) (*domain.Clause, error) {
	clause, ok := c.byCode[code]
	if !ok {
		return nil, domain.ErrClauseNotFound
	}
	return clause, nil
}

// Requirements returns the required evidence kinds for a clause code.
// Unknown codes yield an empty list, never an error.
func (c *Catalog) Requirements(code string) []domain.EvidenceRequirement {
	clause, ok := c.byCode[code]
	if !ok {
		return nil
	}
	return clause.Requirements
}

// RequiresKind reports whether a clause requires a given evidence kind
func (c *Catalog) RequiresKind(code string, kind domain.RequirementKind) bool {
	for _, req := range c.Requirements(code) {
		if req.Kind == kind {
			return true
		}
	}
	return false
}

// ApplicableClauses returns the catalog minus the given excluded codes,
// catalog order preserved. Absence from excluded means applicable.
func (c *Catalog) ApplicableClauses(excluded []string) []domain.Clause {
	if len(excluded) == 0 {
		return c.Clauses()
	}
	skip := make(map[string]bool, len(excluded))
	for _, code := range excluded {
		skip[code] = true
	}
	var out []domain.Clause
	for _, clause := range c.clauses {
		if !skip[clause.Code] {
			out = append(out, clause)
		}
	}
	return out
}

// ClauseMajor returns the integer part of a clause code ("10.2" -> 10).
// Non-numeric codes yield 0.
func ClauseMajor(code string) int {
	major := code
	if idx := strings.Index(code, "."); idx >= 0 {
		major = code[:idx]
	}
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0
	}
	return n
}
