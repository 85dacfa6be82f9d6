package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// ReviewHandler handles HTTP requests for management reviews
type ReviewHandler struct {
	reviews *usecase.ReviewUseCase
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// RegisterRoutes registers review routes
func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reviews", h.Create).Methods("POST")
	router.HandleFunc("/reviews", h.List).Methods("GET")
	router.HandleFunc("/reviews/{id}", h.Get).Methods("GET")
	router.HandleFunc("/reviews/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/reviews/{id}", h.Delete).Methods("DELETE")
}

// Create handles review creation
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.Create(r.Context(), claims.TenantID, claims.UserID, req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "review created", review)
}

// List handles listing the tenant's management reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	list, err := h.reviews.List(r.Context(), claims.TenantID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", list)
}

// Get handles retrieving a single review
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	review, err := h.reviews.Get(r.Context(), claims.TenantID, mux.Vars(r)["id"])
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", review)
}

// Update handles updating a review
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req usecase.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.Update(r.Context(), claims.TenantID, mux.Vars(r)["id"], req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "review updated", review)
}

// Delete handles removing a review
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.reviews.Delete(r.Context(), claims.TenantID, mux.Vars(r)["id"]); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "review deleted", nil)
}
