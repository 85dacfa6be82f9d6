package domain

import "time"

// RequirementKind represents the kind of evidence a clause requires
type RequirementKind string

const (
	RequirementPolicy       RequirementKind = "policy"
	RequirementProcedure    RequirementKind = "procedure"
	RequirementRecord       RequirementKind = "record"
	RequirementRiskThinking RequirementKind = "risk_thinking"
	RequirementReview       RequirementKind = "review"
	RequirementAction       RequirementKind = "action"
)

// EvidenceRequirement represents one required evidence kind of a clause
type EvidenceRequirement struct {
	Kind        RequirementKind `json:"kind" yaml:"kind"`
	Description string          `json:"description" yaml:"description"`
}

// Clause represents a numbered requirement of the tracked standard.
// Clauses are immutable reference data shared across all tenants.
type Clause struct {
	Code               string                `json:"code" yaml:"code"`
	Title              string                `json:"title" yaml:"title"`
	PlainEnglish       string                `json:"plain_english" yaml:"plain_english"`
	AuditorExpectation string                `json:"auditor_expectation" yaml:"auditor_expectation"`
	Requirements       []EvidenceRequirement `json:"requirements" yaml:"requirements"`
	ModuleLinks        []string              `json:"module_links" yaml:"module_links"`
}

// ClauseScope represents a per-tenant override marking a clause as not
// applicable. Absence of a record means the clause applies.
type ClauseScope struct {
	TenantID      TenantID  `json:"tenant_id"`
	ClauseCode    string    `json:"clause_code"`
	Applicable    bool      `json:"applicable"`
	Justification string    `json:"justification,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
