package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateAuditRequest represents the request to record an internal audit
type CreateAuditRequest struct {
	Title       string     `json:"title"`
	Scope       string     `json:"scope"`
	Auditor     string     `json:"auditor"`
	PerformedAt *time.Time `json:"performed_at,omitempty"`
	Findings    string     `json:"findings"`
}

// AuditUseCase handles internal audit records
type AuditUseCase struct {
	audits ports.AuditRepository
	files  ports.FileStore
}

// NewAuditUseCase creates a new audit use case
func NewAuditUseCase(audits ports.AuditRepository, files ports.FileStore) *AuditUseCase {
	return &AuditUseCase{audits: audits, files: files}
}

// Create records a new internal audit
func (uc *AuditUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateAuditRequest) (*domain.InternalAudit, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	audit := domain.NewInternalAudit(tenantID, req.Title, req.Scope, req.Auditor, req.PerformedAt, userID)
	audit.Findings = req.Findings

	if err := uc.audits.Create(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to create audit: %w", err)
	}
	return audit, nil
}

// Get retrieves an audit by ID
func (uc *AuditUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.InternalAudit, error) {
	audit, err := uc.audits.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}
	return audit, nil
}

// List retrieves all audits for a tenant
func (uc *AuditUseCase) List(ctx context.Context, tenantID domain.TenantID) ([]*domain.InternalAudit, error) {
	audits, err := uc.audits.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	return audits, nil
}

// Update replaces the mutable fields of an audit record
func (uc *AuditUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req CreateAuditRequest) (*domain.InternalAudit, error) {
	audit, err := uc.audits.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	if strings.TrimSpace(req.Title) != "" {
		audit.Title = req.Title
	}
	audit.Scope = req.Scope
	audit.Auditor = req.Auditor
	if req.PerformedAt != nil {
		audit.PerformedAt = req.PerformedAt
	}
	audit.Findings = req.Findings
	audit.UpdatedAt = time.Now()

	if err := uc.audits.Update(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to update audit: %w", err)
	}
	return audit, nil
}

// AttachReport stores an uploaded audit report and records its path
func (uc *AuditUseCase) AttachReport(ctx context.Context, tenantID domain.TenantID, id, filename string, content io.Reader) (*domain.InternalAudit, error) {
	audit, err := uc.audits.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	path, err := uc.files.Save(ctx, tenantID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	audit.ReportPath = &path
	audit.UpdatedAt = time.Now()
	if err := uc.audits.Update(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to update audit: %w", err)
	}
	return audit, nil
}

// Delete removes an audit record
func (uc *AuditUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	if err := uc.audits.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete audit: %w", err)
	}
	return nil
}
