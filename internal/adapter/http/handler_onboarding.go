package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// OnboardingHandler handles HTTP requests for onboarding flow events
type OnboardingHandler struct {
	onboarding *usecase.OnboardingUseCase
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboarding *usecase.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

// RegisterRoutes registers onboarding routes
func (h *OnboardingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/onboarding/skip", h.SkipStep).Methods("POST")
}

// SkipStep records a skipped onboarding step as an open problem
func (h *OnboardingHandler) SkipStep(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.SkipStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	problem, err := h.onboarding.SkipStep(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "onboarding step skipped", problem)
}
