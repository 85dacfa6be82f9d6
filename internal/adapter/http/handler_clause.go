package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// ClauseHandler handles HTTP requests for the clause catalog and
// per-tenant scope decisions
type ClauseHandler struct {
	scope *usecase.ScopeUseCase
}

// NewClauseHandler creates a new clause handler
func NewClauseHandler(scope *usecase.ScopeUseCase) *ClauseHandler {
	return &ClauseHandler{scope: scope}
}

// RegisterRoutes registers clause routes
func (h *ClauseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/clauses", h.List).Methods("GET")
	router.HandleFunc("/clauses/{code}/scope", h.SetScope).Methods("PUT")
}

// List handles listing the clause catalog annotated with scope decisions
func (h *ClauseHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	clauses, err := h.scope.ListClauses(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", clauses)
}

// SetScope handles marking a clause applicable or excluded for the tenant
func (h *ClauseHandler) SetScope(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.SetScopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ClauseCode = mux.Vars(r)["code"]

	scope, err := h.scope.SetScope(r.Context(), claims.TenantID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "scope updated", scope)
}
