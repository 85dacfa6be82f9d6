package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// CreateEvidenceRequest represents the request to create evidence
type CreateEvidenceRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Kind        domain.EvidenceKind `json:"kind"`
	ExternalURL string              `json:"external_url"`
	ClauseCode  string              `json:"clause_code"`
}

// UpdateEvidenceRequest represents mutable evidence fields
type UpdateEvidenceRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Kind        *domain.EvidenceKind `json:"kind,omitempty"`
	ExternalURL *string              `json:"external_url,omitempty"`
}

// EvidenceUseCase handles evidence lifecycle: creation, file upload,
// approval, archival
type EvidenceUseCase struct {
	evidence ports.EvidenceRepository
	files    ports.FileStore
}

// NewEvidenceUseCase creates a new evidence use case
func NewEvidenceUseCase(evidence ports.EvidenceRepository, files ports.FileStore) *EvidenceUseCase {
	return &EvidenceUseCase{evidence: evidence, files: files}
}

// Create creates a new draft evidence record
func (uc *EvidenceUseCase) Create(ctx context.Context, tenantID domain.TenantID, userID string, req CreateEvidenceRequest) (*domain.Evidence, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !validEvidenceKind(req.Kind) {
		return nil, fmt.Errorf("invalid evidence kind: %s", req.Kind)
	}

	evidence := domain.NewEvidence(tenantID, req.Title, req.Description, req.Kind, userID)
	if req.ExternalURL != "" {
		evidence.ExternalURL = &req.ExternalURL
	}
	if req.ClauseCode != "" {
		evidence.ClauseCode = &req.ClauseCode
	}

	if err := uc.evidence.Create(ctx, evidence); err != nil {
		return nil, fmt.Errorf("failed to create evidence: %w", err)
	}
	return evidence, nil
}

// Get retrieves evidence by ID
func (uc *EvidenceUseCase) Get(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Evidence, error) {
	evidence, err := uc.evidence.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}
	return evidence, nil
}

// List retrieves evidence matching the filter
func (uc *EvidenceUseCase) List(ctx context.Context, tenantID domain.TenantID, filter domain.EvidenceFilter) ([]*domain.Evidence, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	list, err := uc.evidence.List(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	return list, nil
}

// Update applies partial changes to an evidence record
func (uc *EvidenceUseCase) Update(ctx context.Context, tenantID domain.TenantID, id string, req UpdateEvidenceRequest) (*domain.Evidence, error) {
	evidence, err := uc.evidence.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}

	if req.Title != nil && *req.Title != "" {
		evidence.Title = *req.Title
	}
	if req.Description != nil {
		evidence.Description = *req.Description
	}
	if req.Kind != nil {
		if !validEvidenceKind(*req.Kind) {
			return nil, fmt.Errorf("invalid evidence kind: %s", *req.Kind)
		}
		evidence.Kind = *req.Kind
	}
	if req.ExternalURL != nil {
		evidence.ExternalURL = req.ExternalURL
	}

	if err := uc.evidence.Update(ctx, evidence); err != nil {
		return nil, fmt.Errorf("failed to update evidence: %w", err)
	}
	return evidence, nil
}

// AttachFile stores an uploaded file and records its path on the evidence
func (uc *EvidenceUseCase) AttachFile(ctx context.Context, tenantID domain.TenantID, id, filename string, content io.Reader) (*domain.Evidence, error) {
	evidence, err := uc.evidence.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}

	path, err := uc.files.Save(ctx, tenantID, filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	evidence.FilePath = &path
	if err := uc.evidence.Update(ctx, evidence); err != nil {
		return nil, fmt.Errorf("failed to update evidence: %w", err)
	}
	return evidence, nil
}

// Approve transitions draft evidence to approved
func (uc *EvidenceUseCase) Approve(ctx context.Context, tenantID domain.TenantID, id, approvedBy string) (*domain.Evidence, error) {
	evidence, err := uc.evidence.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}

	if err := evidence.Approve(approvedBy); err != nil {
		return nil, err
	}

	if err := uc.evidence.Update(ctx, evidence); err != nil {
		return nil, fmt.Errorf("failed to update evidence: %w", err)
	}
	return evidence, nil
}

// Archive retires an evidence record
func (uc *EvidenceUseCase) Archive(ctx context.Context, tenantID domain.TenantID, id string) (*domain.Evidence, error) {
	evidence, err := uc.evidence.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}

	evidence.Archive()
	if err := uc.evidence.Update(ctx, evidence); err != nil {
		return nil, fmt.Errorf("failed to update evidence: %w", err)
	}
	return evidence, nil
}

// Delete removes an evidence record and its stored file, if any
func (uc *EvidenceUseCase) Delete(ctx context.Context, tenantID domain.TenantID, id string) error {
	evidence, err := uc.evidence.FindByID(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to get evidence: %w", err)
	}

	if err := uc.evidence.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}

	if evidence.FilePath != nil {
		// best effort; the record is already gone
		_ = uc.files.Remove(ctx, tenantID, *evidence.FilePath)
	}
	return nil
}

func validEvidenceKind(kind domain.EvidenceKind) bool {
	switch kind {
	case domain.EvidenceKindPolicy, domain.EvidenceKindProcedure, domain.EvidenceKindRecord,
		domain.EvidenceKindTemplate, domain.EvidenceKindOther:
		return true
	}
	return false
}
