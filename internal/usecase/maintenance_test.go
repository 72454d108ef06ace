package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaintenanceGate_CachesWithinTTL(t *testing.T) {
	settings := new(MockSettingsRepository)
	settings.On("MaintenanceEnabled", context.Background()).Return(true, nil).Once()

	gate := NewMaintenanceGate(settings, testLogger(), time.Minute)
	clock := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return clock }

	assert.True(t, gate.Active(context.Background()))

	// within TTL, the store is not consulted again
	clock = clock.Add(30 * time.Second)
	assert.True(t, gate.Active(context.Background()))

	settings.AssertNumberOfCalls(t, "MaintenanceEnabled", 1)
}

func TestMaintenanceGate_RefreshesAfterTTL(t *testing.T) {
	settings := new(MockSettingsRepository)
	settings.On("MaintenanceEnabled", context.Background()).Return(true, nil).Once()
	settings.On("MaintenanceEnabled", context.Background()).Return(false, nil).Once()

	gate := NewMaintenanceGate(settings, testLogger(), time.Minute)
	clock := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return clock }

	assert.True(t, gate.Active(context.Background()))

	clock = clock.Add(61 * time.Second)
	assert.False(t, gate.Active(context.Background()))

	settings.AssertNumberOfCalls(t, "MaintenanceEnabled", 2)
}

func TestMaintenanceGate_KeepsValueOnReadFailure(t *testing.T) {
	settings := new(MockSettingsRepository)
	settings.On("MaintenanceEnabled", context.Background()).Return(true, nil).Once()
	settings.On("MaintenanceEnabled", context.Background()).Return(false, errors.New("connection refused")).Once()

	gate := NewMaintenanceGate(settings, testLogger(), time.Minute)
	clock := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return clock }

	assert.True(t, gate.Active(context.Background()))

	clock = clock.Add(2 * time.Minute)
	assert.True(t, gate.Active(context.Background()), "failed refresh must keep the cached value")

	// the failed refresh advanced the timestamp, so the next request
	// within the TTL serves from cache instead of hammering the store
	clock = clock.Add(10 * time.Second)
	assert.True(t, gate.Active(context.Background()))
	settings.AssertNumberOfCalls(t, "MaintenanceEnabled", 2)
}

func TestMaintenanceGate_InvalidateForcesFreshRead(t *testing.T) {
	settings := new(MockSettingsRepository)
	settings.On("MaintenanceEnabled", context.Background()).Return(false, nil).Once()
	settings.On("MaintenanceEnabled", context.Background()).Return(true, nil).Once()

	gate := NewMaintenanceGate(settings, testLogger(), time.Hour)
	clock := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return clock }

	assert.False(t, gate.Active(context.Background()))

	gate.Invalidate()
	assert.True(t, gate.Active(context.Background()))

	settings.AssertNumberOfCalls(t, "MaintenanceEnabled", 2)
}

func TestMaintenanceGate_ZeroTTLFallsBackToDefault(t *testing.T) {
	gate := NewMaintenanceGate(new(MockSettingsRepository), testLogger(), 0)
	assert.Equal(t, DefaultMaintenanceCacheTTL, gate.ttl)
}
