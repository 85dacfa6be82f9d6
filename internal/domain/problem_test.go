package domain

import (
	"testing"
	"time"
)

func TestNewProblem(t *testing.T) {
	due := time.Now().Add(7 * 24 * time.Hour)
	problem := NewProblem("tenant-1", "Late delivery", "Order 42 missed its promised date", ProblemSourceCustomer, &due, "user-1")

	if problem.ID == "" {
		t.Error("Expected ID to be generated")
	}

	if problem.Status != ProblemStatusOpen {
		t.Errorf("Expected status %s, got %s", ProblemStatusOpen, problem.Status)
	}

	if problem.Source != ProblemSourceCustomer {
		t.Errorf("Expected source %s, got %s", ProblemSourceCustomer, problem.Source)
	}

	if problem.DueDate == nil || !problem.DueDate.Equal(due) {
		t.Errorf("Expected due date %v, got %v", due, problem.DueDate)
	}
}

func TestProblem_Start(t *testing.T) {
	problem := NewProblem("tenant-1", "Test", "Description", ProblemSourceInternal, nil, "user-1")

	err := problem.Start()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if problem.Status != ProblemStatusInProgress {
		t.Errorf("Expected status %s, got %s", ProblemStatusInProgress, problem.Status)
	}
}

func TestProblem_StartClosed(t *testing.T) {
	problem := NewProblem("tenant-1", "Test", "Description", ProblemSourceInternal, nil, "user-1")
	problem.Status = ProblemStatusClosed

	err := problem.Start()
	if err != ErrProblemClosed {
		t.Errorf("Expected ErrProblemClosed, got %v", err)
	}
}

func TestProblem_Close(t *testing.T) {
	problem := NewProblem("tenant-1", "Test", "Description", ProblemSourceAudit, nil, "user-1")

	err := problem.Close()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if problem.Status != ProblemStatusClosed {
		t.Errorf("Expected status %s, got %s", ProblemStatusClosed, problem.Status)
	}

	if err := problem.Close(); err != ErrProblemClosed {
		t.Errorf("Expected ErrProblemClosed on double close, got %v", err)
	}
}

func TestProblem_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		dueDate  *time.Time
		status   ProblemStatus
		expected bool
	}{
		{"no due date", nil, ProblemStatusOpen, false},
		{"due date in future", &future, ProblemStatusOpen, false},
		{"due date in past, open", &past, ProblemStatusOpen, true},
		{"due date in past, in progress", &past, ProblemStatusInProgress, true},
		{"due date in past, closed", &past, ProblemStatusClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := NewProblem("tenant-1", "Test", "Description", ProblemSourceInternal, tt.dueDate, "user-1")
			problem.Status = tt.status

			if got := problem.IsOverdue(now); got != tt.expected {
				t.Errorf("Expected IsOverdue %v, got %v", tt.expected, got)
			}
		})
	}
}
