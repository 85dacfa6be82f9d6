package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// DashboardHandler handles HTTP requests for the readiness dashboard
// and the next-best-action list
type DashboardHandler struct {
	dashboard *usecase.DashboardUseCase
	readiness *usecase.ReadinessUseCase
	actions   *usecase.ActionUseCase
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *usecase.DashboardUseCase, readiness *usecase.ReadinessUseCase, actions *usecase.ActionUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, readiness: readiness, actions: actions}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/readiness", h.GetReadiness).Methods("GET")
	router.HandleFunc("/actions", h.GetActions).Methods("GET")
}

// GetDashboard returns the full dashboard: summary, clause cards, and
// top next-best actions in one payload
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	resp, err := h.dashboard.Build(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", resp)
}

// GetReadiness returns the readiness summary without cards or actions
func (h *DashboardHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	clauses, err := h.readiness.ApplicableClauses(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	summary, err := h.readiness.Summary(r.Context(), claims.TenantID, clauses)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", summary)
}

// GetActions returns the ranked next-best-action list
func (h *DashboardHandler) GetActions(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := usecase.DefaultActionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	clauses, err := h.readiness.ApplicableClauses(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	actions, err := h.actions.NextBestActions(r.Context(), claims.TenantID, clauses, limit)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", actions)
}
