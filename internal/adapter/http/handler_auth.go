package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/genestial/miniqms/internal/usecase"
)

// AuthHandler handles HTTP requests for authentication and signup
type AuthHandler struct {
	auth      *usecase.AuthUseCase
	rateLimit *RateLimitMiddleware
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *usecase.AuthUseCase, rateLimit *RateLimitMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth, rateLimit: rateLimit}
}

// RegisterPublicRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterPublicRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/api/v1/auth/login", h.rateLimit.Limit(h.Login)).Methods("POST")
}

// RegisterRoutes registers the authenticated auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/me", h.Me).Methods("GET")
}

// Register handles new tenant signup
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "account created", resp)
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "login successful", resp)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.auth.Me(r.Context(), claims.TenantID, claims.UserID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "ok", user)
}
