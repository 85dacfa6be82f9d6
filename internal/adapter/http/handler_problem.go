package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// ProblemHandler handles HTTP requests for problems and corrective actions
type ProblemHandler struct {
	problems *usecase.ProblemUseCase
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problems *usecase.ProblemUseCase) *ProblemHandler {
	return &ProblemHandler{problems: problems}
}

// RegisterRoutes registers problem routes
func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/problems", h.Create).Methods("POST")
	router.HandleFunc("/problems", h.List).Methods("GET")
	router.HandleFunc("/problems/{id}", h.Get).Methods("GET")
	router.HandleFunc("/problems/{id}", h.Update).Methods("PATCH")
	router.HandleFunc("/problems/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/problems/{id}/start", h.Start).Methods("POST")
	router.HandleFunc("/problems/{id}/close", h.Close).Methods("POST")
}

// Create handles problem creation
func (h *ProblemHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	problem, err := h.problems.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "problem created", problem)
}

// List handles listing the tenant's problems
func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.problems.List(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// Get handles retrieving a single problem
func (h *ProblemHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	problem, err := h.problems.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", problem)
}

// Update handles partial problem updates
func (h *ProblemHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.UpdateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	problem, err := h.problems.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "problem updated", problem)
}

// Start handles moving a problem into progress
func (h *ProblemHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	problem, err := h.problems.Start(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "problem started", problem)
}

// Close handles closing a problem
func (h *ProblemHandler) Close(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	problem, err := h.problems.Close(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "problem closed", problem)
}

// Delete handles removing a problem
func (h *ProblemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.problems.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "problem deleted", nil)
}
