package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProblemStatus represents the status of a problem
type ProblemStatus string

const (
	ProblemStatusOpen       ProblemStatus = "OPEN"
	ProblemStatusInProgress ProblemStatus = "IN_PROGRESS"
	ProblemStatusClosed     ProblemStatus = "CLOSED"
)

// ProblemSource represents where a problem was raised from
type ProblemSource string

const (
	ProblemSourceInternal   ProblemSource = "INTERNAL"
	ProblemSourceAudit      ProblemSource = "AUDIT"
	ProblemSourceCustomer   ProblemSource = "CUSTOMER"
	ProblemSourceSupplier   ProblemSource = "SUPPLIER"
	ProblemSourceOnboarding ProblemSource = "ONBOARDING"
)

// Problem represents a tenant-owned issue or improvement entry
// (nonconformity, corrective action, continual improvement)
type Problem struct {
	ID          string        `json:"id"`
	TenantID    TenantID      `json:"tenant_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Source      ProblemSource `json:"source"`
	Status      ProblemStatus `json:"status"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	AssignedTo  *string       `json:"assigned_to,omitempty"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewProblem creates a new problem in open status
func NewProblem(tenantID TenantID, title, description string, source ProblemSource, dueDate *time.Time, createdBy string) *Problem {
	now := time.Now()
	return &Problem{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Title:       title,
		Description: description,
		Source:      source,
		Status:      ProblemStatusOpen,
		DueDate:     dueDate,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Start moves an open problem to in progress
func (p *Problem) Start() error {
	if p.Status == ProblemStatusClosed {
		return ErrProblemClosed
	}
	p.Status = ProblemStatusInProgress
	p.UpdatedAt = time.Now()
	return nil
}

// Close closes a problem
func (p *Problem) Close() error {
	if p.Status == ProblemStatusClosed {
		return ErrProblemClosed
	}
	p.Status = ProblemStatusClosed
	p.UpdatedAt = time.Now()
	return nil
}

// IsOverdue reports whether the problem has a due date in the past and
// is still open or in progress
func (p *Problem) IsOverdue(now time.Time) bool {
	if p.DueDate == nil || p.Status == ProblemStatusClosed {
		return false
	}
	return p.DueDate.Before(now)
}
