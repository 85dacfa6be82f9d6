package domain

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Custom errors
var (
	ErrTenantNotFound         = NewDomainError("tenant not found")
	ErrUserNotFound           = NewDomainError("user not found")
	ErrUserAlreadyExists      = NewDomainError("user already exists")
	ErrInvalidCredentials     = NewDomainError("invalid credentials")
	ErrEvidenceNotFound       = NewDomainError("evidence not found")
	ErrEvidenceNotDraft       = NewDomainError("evidence must be in draft status")
	ErrRiskNotFound           = NewDomainError("risk not found")
	ErrProblemNotFound        = NewDomainError("problem not found")
	ErrProblemClosed          = NewDomainError("cannot modify closed problem")
	ErrAuditNotFound          = NewDomainError("audit not found")
	ErrReviewNotFound         = NewDomainError("review not found")
	ErrProcessNotFound        = NewDomainError("process not found")
	ErrObjectiveNotFound      = NewDomainError("objective not found")
	ErrRoleNotFound           = NewDomainError("role not found")
	ErrCompanyProfileNotFound = NewDomainError("company profile not found")
	ErrClauseNotFound         = NewDomainError("clause not found")
)
