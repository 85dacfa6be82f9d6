package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// CompanyHandler handles HTTP requests for the company profile, quality
// roles and role assignments
type CompanyHandler struct {
	company *usecase.CompanyUseCase
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(company *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{company: company}
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/company/profile", h.GetProfile).Methods("GET")
	router.HandleFunc("/company/profile", h.UpsertProfile).Methods("PUT")
	router.HandleFunc("/company/roles", h.CreateRole).Methods("POST")
	router.HandleFunc("/company/roles", h.ListRoles).Methods("GET")
	router.HandleFunc("/company/roles/{id}", h.DeleteRole).Methods("DELETE")
	router.HandleFunc("/company/assignments", h.AssignRole).Methods("POST")
	router.HandleFunc("/company/assignments", h.ListAssignments).Methods("GET")
	router.HandleFunc("/company/assignments/{id}", h.UnassignRole).Methods("DELETE")
}

// GetProfile handles retrieving the company profile
func (h *CompanyHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.company.GetProfile(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", profile)
}

// UpsertProfile handles creating or replacing the company profile
func (h *CompanyHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.company.UpsertProfile(r.Context(), claims.TenantID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "profile saved", profile)
}

// CreateRole handles quality role creation
func (h *CompanyHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.company.CreateRole(r.Context(), claims.TenantID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "role created", role)
}

// ListRoles handles listing the tenant's quality roles
func (h *CompanyHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	roles, err := h.company.ListRoles(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", roles)
}

// DeleteRole handles removing a quality role and its assignments
func (h *CompanyHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.company.DeleteRole(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "role deleted", nil)
}

// AssignRole handles assigning a quality role to a person
func (h *CompanyHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.company.AssignRole(r.Context(), claims.TenantID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "role assigned", assignment)
}

// ListAssignments handles listing the tenant's role assignments
func (h *CompanyHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	assignments, err := h.company.ListAssignments(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", assignments)
}

// UnassignRole handles removing a role assignment
func (h *CompanyHandler) UnassignRole(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.company.UnassignRole(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "assignment removed", nil)
}
