package domain

import (
	"testing"
)

func TestNewEvidence(t *testing.T) {
	evidence := NewEvidence("tenant-1", "Quality Policy", "Signed quality policy", EvidenceKindPolicy, "user-1")

	if evidence.ID == "" {
		t.Error("Expected ID to be generated")
	}

	if evidence.TenantID != "tenant-1" {
		t.Errorf("Expected tenant tenant-1, got %s", evidence.TenantID)
	}

	if evidence.Status != EvidenceStatusDraft {
		t.Errorf("Expected status %s, got %s", EvidenceStatusDraft, evidence.Status)
	}

	if evidence.ApprovedBy != nil {
		t.Errorf("Expected ApprovedBy to be nil, got %v", evidence.ApprovedBy)
	}

	if evidence.ApprovedAt != nil {
		t.Error("Expected ApprovedAt to be nil")
	}
}

func TestEvidence_Approve(t *testing.T) {
	evidence := NewEvidence("tenant-1", "SOP-01", "Document control procedure", EvidenceKindProcedure, "user-1")

	err := evidence.Approve("approver-1")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if evidence.Status != EvidenceStatusApproved {
		t.Errorf("Expected status %s, got %s", EvidenceStatusApproved, evidence.Status)
	}

	if evidence.ApprovedBy == nil {
		t.Error("Expected ApprovedBy to be set")
	} else if *evidence.ApprovedBy != "approver-1" {
		t.Errorf("Expected ApprovedBy approver-1, got %s", *evidence.ApprovedBy)
	}

	if evidence.ApprovedAt == nil {
		t.Error("Expected ApprovedAt to be set")
	}
}

func TestEvidence_ApproveNonDraft(t *testing.T) {
	evidence := NewEvidence("tenant-1", "SOP-01", "Document control procedure", EvidenceKindProcedure, "user-1")
	if err := evidence.Approve("approver-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := evidence.Approve("approver-2")
	if err != ErrEvidenceNotDraft {
		t.Errorf("Expected ErrEvidenceNotDraft, got %v", err)
	}

	if *evidence.ApprovedBy != "approver-1" {
		t.Errorf("Expected approver to stay approver-1, got %s", *evidence.ApprovedBy)
	}
}

func TestEvidence_Archive(t *testing.T) {
	evidence := NewEvidence("tenant-1", "Old record", "Superseded training record", EvidenceKindRecord, "user-1")
	if err := evidence.Approve("approver-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	evidence.Archive()

	if evidence.Status != EvidenceStatusArchived {
		t.Errorf("Expected status %s, got %s", EvidenceStatusArchived, evidence.Status)
	}
}
