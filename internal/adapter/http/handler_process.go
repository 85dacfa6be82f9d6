package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// ProcessHandler handles HTTP requests for processes and quality objectives
type ProcessHandler struct {
	processes  *usecase.ProcessUseCase
	objectives *usecase.ObjectiveUseCase
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(processes *usecase.ProcessUseCase, objectives *usecase.ObjectiveUseCase) *ProcessHandler {
	return &ProcessHandler{processes: processes, objectives: objectives}
}

// RegisterRoutes registers process and objective routes
func (h *ProcessHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/processes", h.CreateProcess).Methods("POST")
	router.HandleFunc("/processes", h.ListProcesses).Methods("GET")
	router.HandleFunc("/processes/{id}", h.GetProcess).Methods("GET")
	router.HandleFunc("/processes/{id}", h.UpdateProcess).Methods("PUT")
	router.HandleFunc("/processes/{id}", h.DeleteProcess).Methods("DELETE")

	router.HandleFunc("/objectives", h.CreateObjective).Methods("POST")
	router.HandleFunc("/objectives", h.ListObjectives).Methods("GET")
	router.HandleFunc("/objectives/{id}", h.GetObjective).Methods("GET")
	router.HandleFunc("/objectives/{id}", h.UpdateObjective).Methods("PATCH")
	router.HandleFunc("/objectives/{id}", h.DeleteObjective).Methods("DELETE")
}

// CreateProcess handles process creation
func (h *ProcessHandler) CreateProcess(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	process, err := h.processes.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "process created", process)
}

// ListProcesses handles listing the tenant's process map
func (h *ProcessHandler) ListProcesses(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.processes.List(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// GetProcess handles retrieving a single process
func (h *ProcessHandler) GetProcess(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	process, err := h.processes.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", process)
}

// UpdateProcess handles updating a process
func (h *ProcessHandler) UpdateProcess(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	process, err := h.processes.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "process updated", process)
}

// DeleteProcess handles removing a process
func (h *ProcessHandler) DeleteProcess(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.processes.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "process deleted", nil)
}

// CreateObjective handles quality objective creation
func (h *ProcessHandler) CreateObjective(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	objective, err := h.objectives.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "objective created", objective)
}

// ListObjectives handles listing the tenant's quality objectives
func (h *ProcessHandler) ListObjectives(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.objectives.List(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// GetObjective handles retrieving a single objective
func (h *ProcessHandler) GetObjective(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	objective, err := h.objectives.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", objective)
}

// UpdateObjective handles partial objective updates
func (h *ProcessHandler) UpdateObjective(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.UpdateObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	objective, err := h.objectives.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "objective updated", objective)
}

// DeleteObjective handles removing an objective
func (h *ProcessHandler) DeleteObjective(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.objectives.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "objective deleted", nil)
}
