package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS deals (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		stage            TEXT NOT NULL
		                 CHECK(stage IN ('discovery','qualification','proposal','negotiation','closed_won','closed_lost')),
		value            REAL NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'active',
		risk_score       REAL NOT NULL DEFAULT 0,
		risk_level       TEXT NOT NULL DEFAULT 'low',
		last_activity_at TEXT NOT NULL,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage)`,
	`CREATE INDEX IF NOT EXISTS idx_deals_status ON deals(status)`,

	`CREATE TABLE IF NOT EXISTS timeline_events (
		id         TEXT PRIMARY KEY,
		deal_id    TEXT NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		event_type TEXT NOT NULL,
		metadata   TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_deal ON timeline_events(deal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_created ON timeline_events(created_at)`,

	`CREATE TABLE IF NOT EXISTS risk_settings (
		id                         TEXT PRIMARY KEY DEFAULT 'default',
		inactivity_threshold_days  INTEGER NOT NULL DEFAULT 7,
		enable_competitive_signals INTEGER NOT NULL DEFAULT 1
	)`,

	// Seed default settings row
	`INSERT OR IGNORE INTO risk_settings (id) VALUES ('default')`,

	// Soft delete for deals
	`ALTER TABLE deals ADD COLUMN archived_at TEXT`,
}
