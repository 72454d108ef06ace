package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/projecthub/projecthub/internal/ports"
)

// DefaultMaintenanceCacheTTL bounds how stale the cached maintenance flag
// may get before the authoritative settings row is re-read.
const DefaultMaintenanceCacheTTL = 60 * time.Second

// MaintenanceGate caches the platform maintenance flag. The settings store
// stays authoritative; the cache only bounds read traffic. When a refresh
// fails, the previous value is retained so a transient store error cannot
// silently reopen a platform that is meant to be down.
type MaintenanceGate struct {
	settings ports.SettingsRepository
	logger   *logrus.Logger
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	cached   bool
	cachedAt time.Time
	primed   bool
}

// NewMaintenanceGate creates a gate with the given cache TTL.
func NewMaintenanceGate(settings ports.SettingsRepository, logger *logrus.Logger, ttl time.Duration) *MaintenanceGate {
	if ttl <= 0 {
		ttl = DefaultMaintenanceCacheTTL
	}
	return &MaintenanceGate{
		settings: settings,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Active reports whether maintenance mode is on, refreshing the cache when
// it is older than the TTL.
func (g *MaintenanceGate) Active(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.primed && g.now().Sub(g.cachedAt) < g.ttl {
		return g.cached
	}

	enabled, err := g.settings.MaintenanceEnabled(ctx)
	if err != nil {
		// Keep the last known value. The timestamp still advances so a
		// store outage does not turn every request into a failing read.
		g.logger.WithError(err).Warn("maintenance flag refresh failed, keeping cached value")
		g.cachedAt = g.now()
		return g.cached
	}

	g.cached = enabled
	g.cachedAt = g.now()
	g.primed = true
	return g.cached
}

// Invalidate forces the next Active call to bypass the cache. Called when
// an administrator changes the setting.
func (g *MaintenanceGate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.primed = false
}
