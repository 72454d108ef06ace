package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server.
type Server struct {
	addr   string
	server *http.Server
	logger *logrus.Logger
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Handlers groups the route handlers wired into the server.
type Handlers struct {
	Note     *NoteHandler
	Workflow *WorkflowHandler
	Project  *ProjectHandler
	Audit    *AuditHandler
	Settings *SettingsHandler
}

// NewServer creates a new HTTP server. The middleware order matters:
// logging and recovery wrap everything, authentication resolves the
// principal, the maintenance gate needs that principal to exempt
// SUPER_ADMIN, and the rate limiter keys off it.
func NewServer(
	config ServerConfig,
	handlers Handlers,
	auth *AuthMiddleware,
	maintenance *MaintenanceMiddleware,
	rateLimit *RateLimitMiddleware,
	logger *logrus.Logger,
) *Server {
	router := mux.NewRouter()

	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	router.HandleFunc("/maintenance", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"maintenance","message":"The platform is under maintenance"}`))
	}).Methods("GET")

	router.Use(mux.MiddlewareFunc(auth.RequireAuth))
	router.Use(mux.MiddlewareFunc(maintenance.Handler))
	router.Use(mux.MiddlewareFunc(rateLimit.Handler))

	handlers.Note.RegisterRoutes(router)
	handlers.Workflow.RegisterRoutes(router)
	handlers.Project.RegisterRoutes(router)
	handlers.Audit.RegisterRoutes(router)
	handlers.Settings.RegisterRoutes(router)

	addr := ":" + config.Port
	return &Server{
		addr:   addr,
		logger: logger,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.addr).Info("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
