package domain

import (
	"time"

	"github.com/google/uuid"
)

// InternalAudit represents a tenant-owned record of an internal audit
type InternalAudit struct {
	ID          string     `json:"id"`
	TenantID    TenantID   `json:"tenant_id"`
	Title       string     `json:"title"`
	Scope       string     `json:"scope,omitempty"`
	Auditor     string     `json:"auditor,omitempty"`
	PerformedAt *time.Time `json:"performed_at,omitempty"`
	Findings    string     `json:"findings,omitempty"`
	ReportPath  *string    `json:"report_path,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewInternalAudit creates a new internal audit record
func NewInternalAudit(tenantID TenantID, title, scope, auditor string, performedAt *time.Time, createdBy string) *InternalAudit {
	now := time.Now()
	return &InternalAudit{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Title:       title,
		Scope:       scope,
		Auditor:     auditor,
		PerformedAt: performedAt,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
