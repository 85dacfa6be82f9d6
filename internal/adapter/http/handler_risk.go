package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// RiskHandler handles HTTP requests for the risk and opportunity register
type RiskHandler struct {
	risks *usecase.RiskUseCase
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(risks *usecase.RiskUseCase) *RiskHandler {
	return &RiskHandler{risks: risks}
}

// RegisterRoutes registers risk routes
func (h *RiskHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/risks", h.Create).Methods("POST")
	router.HandleFunc("/risks", h.List).Methods("GET")
	router.HandleFunc("/risks/{id}", h.Get).Methods("GET")
	router.HandleFunc("/risks/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/risks/{id}", h.Delete).Methods("DELETE")
}

// Create handles risk creation
func (h *RiskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	risk, err := h.risks.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "risk created", risk)
}

// List handles listing the tenant's risk register
func (h *RiskHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.risks.List(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// Get handles retrieving a single risk
func (h *RiskHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	risk, err := h.risks.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", risk)
}

// Update handles updating a risk entry
func (h *RiskHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	risk, err := h.risks.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "risk updated", risk)
}

// Delete handles removing a risk entry
func (h *RiskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.risks.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "risk deleted", nil)
}
