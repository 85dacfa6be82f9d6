package domain

import (
	"time"

	"github.com/google/uuid"
)

// Process represents a tenant-defined business process
type Process struct {
	ID          string    `json:"id"`
	TenantID    TenantID  `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Owner       string    `json:"owner,omitempty"`
	Inputs      string    `json:"inputs,omitempty"`
	Outputs     string    `json:"outputs,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProcess creates a new process
func NewProcess(tenantID TenantID, name, description, owner, createdBy string) *Process {
	now := time.Now()
	return &Process{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Owner:       owner,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ObjectiveStatus represents progress on a quality objective
type ObjectiveStatus string

const (
	ObjectiveStatusOnTrack  ObjectiveStatus = "ON_TRACK"
	ObjectiveStatusAtRisk   ObjectiveStatus = "AT_RISK"
	ObjectiveStatusAchieved ObjectiveStatus = "ACHIEVED"
)

// QualityObjective represents a measurable quality goal of a tenant
type QualityObjective struct {
	ID        string          `json:"id"`
	TenantID  TenantID        `json:"tenant_id"`
	Title     string          `json:"title"`
	Target    string          `json:"target,omitempty"`
	Measure   string          `json:"measure,omitempty"`
	Status    ObjectiveStatus `json:"status"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewQualityObjective creates a new quality objective
func NewQualityObjective(tenantID TenantID, title, target, measure string, dueDate *time.Time, createdBy string) *QualityObjective {
	now := time.Now()
	return &QualityObjective{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Title:     title,
		Target:    target,
		Measure:   measure,
		Status:    ObjectiveStatusOnTrack,
		DueDate:   dueDate,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
