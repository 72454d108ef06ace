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

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	httpadapter "github.com/projecthub/projecthub/internal/adapter/http"
	"github.com/projecthub/projecthub/internal/adapter/identity"
	"github.com/projecthub/projecthub/internal/adapter/persistence"
	"github.com/projecthub/projecthub/internal/config"
	"github.com/projecthub/projecthub/internal/service/ratelimit"
	"github.com/projecthub/projecthub/internal/usecase"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	logger.WithField("env", cfg.Environment).Info("application starting")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.WithError(err).Fatal("failed to ping database")
	}
	logger.Info("database connection established")

	limiter, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
		Attempts: cfg.RateLimitAttempts,
		Window:   cfg.RateLimitWindow,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize rate limiter")
	}

	// Repositories
	projectRepo := persistence.NewPostgresProjectRepository(db)
	noteRepo := persistence.NewPostgresNoteRepository(db)
	costRepo := persistence.NewPostgresCostRepository(db)
	proposalRepo := persistence.NewPostgresProposalRepository(db)
	taskRepo := persistence.NewPostgresTaskRepository(db)
	auditRepo := persistence.NewPostgresAuditRepository(db)
	notificationRepo := persistence.NewPostgresNotificationRepository(db)
	settingsRepo := persistence.NewPostgresSettingsRepository(db)

	// Use cases
	auditUC := usecase.NewAuditUseCase(auditRepo, logger)
	resolver := usecase.NewAccessResolver(projectRepo)
	gate := usecase.NewMaintenanceGate(settingsRepo, logger, cfg.MaintenanceCacheTTL)
	noteUC := usecase.NewNoteUseCase(noteRepo, auditUC, logger)
	costUC := usecase.NewCostUseCase(costRepo, auditUC, logger)
	proposalUC := usecase.NewProposalUseCase(proposalRepo, projectRepo, notificationRepo, auditUC, logger)
	ganttUC := usecase.NewGanttUseCase(taskRepo, resolver, auditUC, logger)
	memberUC := usecase.NewMemberUseCase(projectRepo, resolver, auditUC, logger)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, gate, auditUC, logger)

	// HTTP layer
	verifier := identity.NewVerifier(cfg.JWTSecret)
	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Port:         cfg.ServerPort,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		httpadapter.Handlers{
			Note:     httpadapter.NewNoteHandler(noteUC),
			Workflow: httpadapter.NewWorkflowHandler(costUC, proposalUC),
			Project:  httpadapter.NewProjectHandler(resolver, memberUC, ganttUC),
			Audit:    httpadapter.NewAuditHandler(auditUC),
			Settings: httpadapter.NewSettingsHandler(settingsUC),
		},
		httpadapter.NewAuthMiddleware(verifier),
		httpadapter.NewMaintenanceMiddleware(gate),
		httpadapter.NewRateLimitMiddleware(limiter, cfg.RateLimitAttempts, cfg.RateLimitWindow),
		logger,
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano, FullTimestamp: true})
	}

	return logger
}
