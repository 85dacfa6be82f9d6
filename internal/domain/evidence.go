package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvidenceKind represents the kind of an evidence artifact
type EvidenceKind string

const (
	EvidenceKindPolicy    EvidenceKind = "POLICY"
	EvidenceKindProcedure EvidenceKind = "PROCEDURE"
	EvidenceKindRecord    EvidenceKind = "RECORD"
	EvidenceKindTemplate  EvidenceKind = "TEMPLATE"
	EvidenceKindOther     EvidenceKind = "OTHER"
)

// EvidenceStatus represents the approval status of an evidence artifact
type EvidenceStatus string

const (
	EvidenceStatusDraft    EvidenceStatus = "DRAFT"
	EvidenceStatusApproved EvidenceStatus = "APPROVED"
	EvidenceStatusArchived EvidenceStatus = "ARCHIVED"
)

// Evidence represents a tenant-authored artifact used to demonstrate
// compliance with a clause: an uploaded file or an external link.
type Evidence struct {
	ID          string         `json:"id"`
	TenantID    TenantID       `json:"tenant_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Kind        EvidenceKind   `json:"kind"`
	Status      EvidenceStatus `json:"status"`
	FilePath    *string        `json:"file_path,omitempty"`
	ExternalURL *string        `json:"external_url,omitempty"`
	ClauseCode  *string        `json:"clause_code,omitempty"`
	CreatedBy   string         `json:"created_by"`
	ApprovedBy  *string        `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time     `json:"approved_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewEvidence creates a new evidence record in draft status
func NewEvidence(tenantID TenantID, title, description string, kind EvidenceKind, createdBy string) *Evidence {
	now := time.Now()
	return &Evidence{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Title:       title,
		Description: description,
		Kind:        kind,
		Status:      EvidenceStatusDraft,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Approve marks draft evidence as approved
func (e *Evidence) Approve(approvedBy string) error {
	if e.Status != EvidenceStatusDraft {
		return ErrEvidenceNotDraft
	}
	now := time.Now()
	e.Status = EvidenceStatusApproved
	e.ApprovedBy = &approvedBy
	e.ApprovedAt = &now
	e.UpdatedAt = now
	return nil
}

// Archive retires an evidence record
func (e *Evidence) Archive() {
	e.Status = EvidenceStatusArchived
	e.UpdatedAt = time.Now()
}

// EvidenceFilter represents filters for listing evidence
type EvidenceFilter struct {
	Kind   *EvidenceKind   `json:"kind,omitempty"`
	Status *EvidenceStatus `json:"status,omitempty"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
