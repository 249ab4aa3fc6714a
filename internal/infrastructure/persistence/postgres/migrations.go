package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// migration is a single schema change applied exactly once.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations is the ordered schema history. Append only.
var migrations = []migration{
	{
		version: 1,
		name:    "create_user_progress",
		sql: `
			CREATE TABLE IF NOT EXISTS user_progress (
				user_id    TEXT PRIMARY KEY,
				xp         BIGINT NOT NULL DEFAULT 0,
				level      INT NOT NULL DEFAULT 1,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_user_progress_xp
				ON user_progress (xp DESC);
		`,
	},
	{
		version: 2,
		name:    "create_recommendations",
		sql: `
			CREATE TABLE IF NOT EXISTS recommendations (
				id             TEXT PRIMARY KEY,
				movie_name     TEXT NOT NULL,
				recommender_id TEXT NOT NULL,
				rating         INT NOT NULL DEFAULT 0,
				created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_recommendations_created_at
				ON recommendations (created_at DESC);
			CREATE INDEX IF NOT EXISTS idx_recommendations_movie_name
				ON recommendations (LOWER(movie_name));
		`,
	},
	{
		version: 3,
		name:    "create_watch_parties",
		sql: `
			CREATE TABLE IF NOT EXISTS watch_parties (
				id         TEXT PRIMARY KEY,
				movie_name TEXT NOT NULL,
				host_id    TEXT NOT NULL,
				channel_id TEXT NOT NULL,
				starts_at  TIMESTAMPTZ NOT NULL,
				status     TEXT NOT NULL DEFAULT 'scheduled',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_watch_parties_starts_at
				ON watch_parties (starts_at);
			CREATE INDEX IF NOT EXISTS idx_watch_parties_status
				ON watch_parties (status);
		`,
	},
}

// Migrator applies pending migrations on startup.
type Migrator struct {
	conn   *Connection
	logger *slog.Logger
}

// NewMigrator creates a migrator.
func NewMigrator(conn *Connection, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		conn:   conn,
		logger: logger.With("component", "postgres_migrator"),
	}
}

// Run applies all migrations not yet recorded in schema_migrations.
func (m *Migrator) Run(ctx context.Context) error {
	if _, err := m.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrMigrationFailed, err)
	}

	var current int
	if err := m.conn.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&current); err != nil {
		return fmt.Errorf("%w: read current version: %v", ErrMigrationFailed, err)
	}

	for _, mig := range migrations {
		if mig.version <= current {
			continue
		}

		if _, err := m.conn.Exec(ctx, mig.sql); err != nil {
			return fmt.Errorf("%w: apply %s (v%d): %v", ErrMigrationFailed, mig.name, mig.version, err)
		}
		if _, err := m.conn.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			mig.version, mig.name,
		); err != nil {
			return fmt.Errorf("%w: record %s (v%d): %v", ErrMigrationFailed, mig.name, mig.version, err)
		}

		m.logger.Info("applied migration", "version", mig.version, "name", mig.name)
	}

	return nil
}
