package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// AuditHandler handles HTTP requests for internal audits
type AuditHandler struct {
	audits      *usecase.AuditUseCase
	maxFileSize int64
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audits *usecase.AuditUseCase, maxFileSize int64) *AuditHandler {
	return &AuditHandler{audits: audits, maxFileSize: maxFileSize}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/audits", h.Create).Methods("POST")
	router.HandleFunc("/audits", h.List).Methods("GET")
	router.HandleFunc("/audits/{id}", h.Get).Methods("GET")
	router.HandleFunc("/audits/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/audits/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/audits/{id}/report", h.UploadReport).Methods("POST")
}

// Create handles audit creation
func (h *AuditHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	audit, err := h.audits.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "audit created", audit)
}

// List handles listing the tenant's internal audits
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.audits.List(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// Get handles retrieving a single audit
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	audit, err := h.audits.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", audit)
}

// Update handles updating an audit entry
func (h *AuditHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	audit, err := h.audits.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "audit updated", audit)
}

// UploadReport handles a multipart audit report upload
func (h *AuditHandler) UploadReport(w http.ResponseWriter, r *http.Request) {
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

	audit, err := h.audits.AttachReport(r.Context(), claims.TenantID, mux.Vars(r)["id"], header.Filename, io.Reader(file))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "report attached", audit)
}

// Delete handles removing an audit entry
func (h *AuditHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.audits.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "audit deleted", nil)
}
