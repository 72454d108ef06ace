package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/projecthub/projecthub/internal/ports"
)

const maintenanceKey = "maintenance_enabled"

// PostgresSettingsRepository implements SettingsRepository using
// PostgreSQL. The settings table is the authoritative source for the
// maintenance flag; the gate caches above it.
type PostgresSettingsRepository struct {
	db *sql.DB
}

// NewPostgresSettingsRepository creates a new PostgreSQL settings repository.
func NewPostgresSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// MaintenanceEnabled reads the authoritative maintenance flag. A missing
// row means maintenance has never been enabled.
func (r *PostgresSettingsRepository) MaintenanceEnabled(ctx context.Context) (bool, error) {
	query := `SELECT value FROM settings WHERE key = $1`

	var value string
	err := r.db.QueryRowContext(ctx, query, maintenanceKey).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to read maintenance setting: %w", err)
	}

	return value == "true", nil
}

// SetMaintenanceEnabled writes the authoritative maintenance flag.
func (r *PostgresSettingsRepository) SetMaintenanceEnabled(ctx context.Context, enabled bool) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	value := "false"
	if enabled {
		value = "true"
	}

	if _, err := r.db.ExecContext(ctx, query, maintenanceKey, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write maintenance setting: %w", err)
	}

	return nil
}
