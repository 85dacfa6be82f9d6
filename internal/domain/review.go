package domain

import (
	"time"

	"github.com/google/uuid"
)

// ManagementReview represents a tenant-owned record of a management review
type ManagementReview struct {
	ID        string     `json:"id"`
	TenantID  TenantID   `json:"tenant_id"`
	Title     string     `json:"title"`
	HeldAt    *time.Time `json:"held_at,omitempty"`
	Attendees []string   `json:"attendees,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Decisions string     `json:"decisions,omitempty"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewManagementReview creates a new management review record
func NewManagementReview(tenantID TenantID, title string, heldAt *time.Time, attendees []string, notes, createdBy string) *ManagementReview {
	now := time.Now()
	return &ManagementReview{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Title:     title,
		HeldAt:    heldAt,
		Attendees: attendees,
		Notes:     notes,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
