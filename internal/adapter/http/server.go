package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/genestial/miniqms/internal/ports"
	"github.com/genestial/miniqms/internal/usecase"
)

// Server represents the HTTP server
type Server struct {
	addr   string
	logger *logrus.Logger
	server *http.Server
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxFileSize       int64
	RateLimitAttempts int
	RateLimitWindow   time.Duration
}

// Deps bundles everything the server's handlers depend on
type Deps struct {
	Logger  *logrus.Logger
	Tokens  ports.TokenService
	Limiter ports.RateLimiter

	Auth       *usecase.AuthUseCase
	Dashboard  *usecase.DashboardUseCase
	Readiness  *usecase.ReadinessUseCase
	Actions    *usecase.ActionUseCase
	Evidence   *usecase.EvidenceUseCase
	Risks      *usecase.RiskUseCase
	Problems   *usecase.ProblemUseCase
	Audits     *usecase.AuditUseCase
	Reviews    *usecase.ReviewUseCase
	Processes  *usecase.ProcessUseCase
	Objectives *usecase.ObjectiveUseCase
	Company    *usecase.CompanyUseCase
	Scope      *usecase.ScopeUseCase
	Onboarding *usecase.OnboardingUseCase
}

// NewServer creates a new HTTP server with all routes registered
func NewServer(config ServerConfig, deps Deps) *Server {
	router := mux.NewRouter()

	router.Use(loggingMiddleware(deps.Logger))
	router.Use(corsMiddleware)
	router.Use(recoveryMiddleware(deps.Logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Public routes: registration and login, with login rate limited
	rateLimit := NewRateLimitMiddleware(deps.Limiter, config.RateLimitAttempts, config.RateLimitWindow, deps.Logger)
	authHandler := NewAuthHandler(deps.Auth, rateLimit)
	authHandler.RegisterPublicRoutes(router)

	// Everything else requires a valid token
	authed := router.PathPrefix("/api/v1").Subrouter()
	authed.Use(NewAuthMiddleware(deps.Tokens).Middleware)

	authHandler.RegisterRoutes(authed)
	NewDashboardHandler(deps.Dashboard, deps.Readiness, deps.Actions).RegisterRoutes(authed)
	NewEvidenceHandler(deps.Evidence, config.MaxFileSize).RegisterRoutes(authed)
	NewRiskHandler(deps.Risks).RegisterRoutes(authed)
	NewProblemHandler(deps.Problems).RegisterRoutes(authed)
	NewAuditHandler(deps.Audits, config.MaxFileSize).RegisterRoutes(authed)
	NewReviewHandler(deps.Reviews).RegisterRoutes(authed)
	NewProcessHandler(deps.Processes, deps.Objectives).RegisterRoutes(authed)
	NewCompanyHandler(deps.Company).RegisterRoutes(authed)
	NewClauseHandler(deps.Scope).RegisterRoutes(authed)
	NewOnboardingHandler(deps.Onboarding).RegisterRoutes(authed)

	return &Server{
		addr:   ":" + config.Port,
		logger: deps.Logger,
		server: &http.Server{
			Addr:         ":" + config.Port,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("addr", s.addr).Info("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
