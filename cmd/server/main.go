package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	httpadapter "github.com/genestial/miniqms/internal/adapter/http"
	"github.com/genestial/miniqms/internal/adapter/persistence"
	"github.com/genestial/miniqms/internal/adapter/service"
	"github.com/genestial/miniqms/internal/adapter/storage"
	"github.com/genestial/miniqms/internal/config"
	"github.com/genestial/miniqms/internal/ports"
	"github.com/genestial/miniqms/internal/standards"
	"github.com/genestial/miniqms/internal/usecase"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize structured logger
	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	logger.WithField("environment", cfg.Server.Environment).Info("application starting")

	// Load the clause catalog
	catalog, err := standards.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load clause catalog")
	}

	// Connect to database
	db, err := sql.Open("postgres", cfg.GetDatabaseURL())
	if err != nil {
		logger.WithError(err).Fatal("failed to open database connection")
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetConnMaxIdleTime(cfg.Database.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.WithError(err).Fatal("failed to ping database")
	}
	logger.WithFields(logrus.Fields{
		"host":   cfg.Database.Host,
		"dbname": cfg.Database.DBName,
	}).Info("database connection established")

	// Initialize rate limiting (Redis-backed or noop based on config)
	var limiter ports.RateLimiter = service.NewNoopRateLimiter()
	if cfg.Security.RateLimitEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			limiter = service.NewRedisRateLimiter(redisClient)
			logger.WithField("addr", cfg.GetRedisAddr()).Info("rate limiting enabled")
		}
	}

	// Initialize services
	tokens := service.NewJWTTokenService(cfg.Security.JWTSecret, cfg.Security.JWTExpiration)
	passwords := service.NewBcryptPasswordService(cfg.Security.BcryptCost)
	files, err := storage.NewDiskStore(cfg.Storage.Root)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize file storage")
	}

	// Initialize repositories
	tenantRepo := persistence.NewPostgresTenantRepository(db)
	userRepo := persistence.NewPostgresUserRepository(db)
	evidenceRepo := persistence.NewPostgresEvidenceRepository(db)
	riskRepo := persistence.NewPostgresRiskRepository(db)
	problemRepo := persistence.NewPostgresProblemRepository(db)
	auditRepo := persistence.NewPostgresAuditRepository(db)
	reviewRepo := persistence.NewPostgresReviewRepository(db)
	processRepo := persistence.NewPostgresProcessRepository(db)
	objectiveRepo := persistence.NewPostgresObjectiveRepository(db)
	companyRepo := persistence.NewPostgresCompanyRepository(db)
	scopeRepo := persistence.NewPostgresScopeRepository(db)

	// Initialize use cases
	readinessUC := usecase.NewReadinessUseCase(catalog, evidenceRepo, riskRepo, problemRepo, auditRepo, reviewRepo, scopeRepo)
	actionUC := usecase.NewActionUseCase(catalog, readinessUC, evidenceRepo, riskRepo, problemRepo, reviewRepo, processRepo, companyRepo)

	deps := httpadapter.Deps{
		Logger:  logger,
		Tokens:  tokens,
		Limiter: limiter,

		Auth:       usecase.NewAuthUseCase(tenantRepo, userRepo, tokens, passwords),
		Dashboard:  usecase.NewDashboardUseCase(readinessUC, actionUC),
		Readiness:  readinessUC,
		Actions:    actionUC,
		Evidence:   usecase.NewEvidenceUseCase(evidenceRepo, files),
		Risks:      usecase.NewRiskUseCase(riskRepo),
		Problems:   usecase.NewProblemUseCase(problemRepo),
		Audits:     usecase.NewAuditUseCase(auditRepo, files),
		Reviews:    usecase.NewReviewUseCase(reviewRepo),
		Processes:  usecase.NewProcessUseCase(processRepo),
		Objectives: usecase.NewObjectiveUseCase(objectiveRepo),
		Company:    usecase.NewCompanyUseCase(companyRepo, userRepo),
		Scope:      usecase.NewScopeUseCase(catalog, scopeRepo),
		Onboarding: usecase.NewOnboardingUseCase(problemRepo),
	}

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxFileSize:       cfg.Storage.MaxFileSize,
		RateLimitAttempts: cfg.Security.RateLimitAttempts,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
	}, deps)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	logger.Info("server exited")
}
