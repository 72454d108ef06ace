package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/adapter/http/response"
	"github.com/projecthub/projecthub/internal/adapter/identity"
	"github.com/projecthub/projecthub/internal/domain"
	"github.com/projecthub/projecthub/internal/service/ratelimit"
	"github.com/projecthub/projecthub/internal/usecase"
)

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// AuthMiddleware resolves the request principal from a Bearer token.
type AuthMiddleware struct {
	verifier *identity.Verifier
}

// NewAuthMiddleware creates an auth middleware.
func NewAuthMiddleware(verifier *identity.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Endpoints reachable without a principal.
func openEndpoint(path string) bool {
	return path == "/health" || path == "/maintenance"
}

// RequireAuth rejects requests without a valid principal. A missing or
// invalid token is always a 401, never treated as anonymous.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if openEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		principal, err := m.verifier.Verify(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaintenanceMiddleware blocks non-privileged traffic while maintenance
// mode is active. SUPER_ADMIN principals, the health check, the maintenance
// notice, and the settings surface used to disable the mode pass through.
type MaintenanceMiddleware struct {
	gate *usecase.MaintenanceGate
}

// NewMaintenanceMiddleware creates a maintenance middleware.
func NewMaintenanceMiddleware(gate *usecase.MaintenanceGate) *MaintenanceMiddleware {
	return &MaintenanceMiddleware{gate: gate}
}

func (m *MaintenanceMiddleware) exempt(path string) bool {
	return path == "/health" ||
		path == "/maintenance" ||
		strings.HasPrefix(path, "/api/v1/settings")
}

// Handler enforces the gate.
func (m *MaintenanceMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if !m.gate.Active(r.Context()) {
			next.ServeHTTP(w, r)
			return
		}
		if p, ok := PrincipalFromContext(r.Context()); ok && p.Role == domain.RoleSuperAdmin {
			next.ServeHTTP(w, r)
			return
		}
		response.ServiceUnavailable(w, "The platform is under maintenance")
	})
}

// RateLimitMiddleware limits mutating requests per principal.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimitService
	limit   int
	window  time.Duration
}

// NewRateLimitMiddleware creates a rate limit middleware.
func NewRateLimitMiddleware(limiter ratelimit.RateLimitService, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, limit: limit, window: window}
}

// Handler applies the limit to non-GET requests, keyed by principal when
// authenticated and by remote address otherwise.
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		key := r.RemoteAddr
		if p, ok := PrincipalFromContext(r.Context()); ok {
			key = p.ID.String()
		}

		allowed, _ := m.limiter.Allow(r.Context(), key, m.limit, m.window)
		if !allowed {
			response.TooManyRequests(w, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"remote":   r.RemoteAddr,
				"duration": time.Since(start).String(),
			}).Info("request handled")
		})
	}
}

// RecoveryMiddleware converts panics into generic 500 responses without
// leaking internals.
func RecoveryMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.WithField("panic", err).Error("panic recovered")
					response.InternalServerError(w, "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
