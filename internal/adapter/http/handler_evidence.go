package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/usecase"
)

// EvidenceHandler handles HTTP requests for evidence records
type EvidenceHandler struct {
	evidence    *usecase.EvidenceUseCase
	maxFileSize int64
}

// NewEvidenceHandler creates a new evidence handler
func NewEvidenceHandler(evidence *usecase.EvidenceUseCase, maxFileSize int64) *EvidenceHandler {
	return &EvidenceHandler{evidence: evidence, maxFileSize: maxFileSize}
}

// RegisterRoutes registers evidence routes
func (h *EvidenceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/evidence", h.Create).Methods("POST")
	router.HandleFunc("/evidence", h.List).Methods("GET")
	router.HandleFunc("/evidence/{id}", h.Get).Methods("GET")
	router.HandleFunc("/evidence/{id}", h.Update).Methods("PATCH")
	router.HandleFunc("/evidence/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/evidence/{id}/file", h.UploadFile).Methods("POST")
	router.HandleFunc("/evidence/{id}/approve", h.Approve).Methods("POST")
	router.HandleFunc("/evidence/{id}/archive", h.Archive).Methods("POST")
}

// Create handles evidence creation
func (h *EvidenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	evidence, err := h.evidence.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "evidence created", evidence)
}

// List handles listing evidence with filters
func (h *EvidenceHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	filter := domain.EvidenceFilter{}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := domain.EvidenceKind(kind)
		filter.Kind = &k
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.EvidenceStatus(status)
		filter.Status = &s
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	list, err := h.evidence.List(r.Context(), claims.TenantID, filter)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// Get handles retrieving a single evidence record
func (h *EvidenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	evidence, err := h.evidence.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", evidence)
}

// Update handles partial evidence updates
func (h *EvidenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.UpdateEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	evidence, err := h.evidence.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "evidence updated", evidence)
}

// Delete handles evidence deletion
func (h *EvidenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.evidence.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "evidence deleted", nil)
}

// UploadFile handles a multipart file upload onto an evidence record
func (h *EvidenceHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	evidence, err := h.evidence.AttachFile(r.Context(), claims.TenantID, mux.Vars(r)["id"], header.Filename, io.Reader(file))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "file attached", evidence)
}

// Approve handles the draft-to-approved transition
func (h *EvidenceHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	evidence, err := h.evidence.Approve(r.Context(), claims.TenantID, mux.Vars(r)["id"], claims.UserID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "evidence approved", evidence)
}

// Archive handles retiring an evidence record
func (h *EvidenceHandler) Archive(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	evidence, err := h.evidence.Archive(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "evidence archived", evidence)
}
