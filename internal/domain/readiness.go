package domain

// ClauseStatusLevel represents the three-level compliance status of a clause
type ClauseStatusLevel string

const (
	ClauseStatusFullyMet     ClauseStatusLevel = "FULLY_MET"
	ClauseStatusPartiallyMet ClauseStatusLevel = "PARTIALLY_MET"
	ClauseStatusUnmet        ClauseStatusLevel = "UNMET"
)

// FixLink represents a suggested remediation link for a missing item
type FixLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ClauseCard represents the computed compliance status of one clause,
// rendered as a dashboard card
type ClauseCard struct {
	ClauseCode   string            `json:"clause_code"`
	ClauseTitle  string            `json:"clause_title"`
	Status       ClauseStatusLevel `json:"status"`
	Explanation  string            `json:"explanation"`
	MissingItems []string          `json:"missing_items"`
	FixLinks     []FixLink         `json:"fix_links"`
}

// ReadinessSummary represents overall readiness across applicable clauses
type ReadinessSummary struct {
	Percentage   int `json:"percentage"`
	Applicable   int `json:"applicable"`
	FullyMet     int `json:"fully_met"`
	PartiallyMet int `json:"partially_met"`
	Unmet        int `json:"unmet"`
}

// NextBestAction represents a ranked gap-closing suggestion
type NextBestAction struct {
	ID            string `json:"id"`
	Priority      int    `json:"priority"`
	ClauseCode    string `json:"clause_code"`
	ClauseTitle   string `json:"clause_title"`
	Description   string `json:"description"`
	CTALink       string `json:"cta_link"`
	EstimatedTime string `json:"estimated_time"`
}
