package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// SkipStepRequest represents the request to skip an onboarding step
type SkipStepRequest struct {
	Step string `json:"step"`
}

// OnboardingUseCase records skipped onboarding steps as open problems so
// the action prioritizer can surface them later
type OnboardingUseCase struct {
	problems ports.ProblemRepository
}

// NewOnboardingUseCase creates a new onboarding use case
func NewOnboardingUseCase(problems ports.ProblemRepository) *OnboardingUseCase {
	return &OnboardingUseCase{problems: problems}
}

// SkipStep logs a skipped onboarding step. The description format is
// what the action prioritizer's keyword detection looks for.
func (uc *OnboardingUseCase) SkipStep(ctx context.Context, tenantID domain.TenantID, userID string, req SkipStepRequest) (*domain.Problem, error) {
	step := strings.TrimSpace(req.Step)
	if step == "" {
		return nil, fmt.Errorf("step is required")
	}

	problem := domain.NewProblem(
		tenantID,
		"Skipped onboarding step",
		fmt.Sprintf("Complete onboarding: %s", step),
		domain.ProblemSourceOnboarding,
		nil,
		userID,
	)
	if err := uc.problems.Create(ctx, problem); err != nil {
		return nil, fmt.Errorf("failed to record skipped step: %w", err)
	}
	return problem, nil
}
