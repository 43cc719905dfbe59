package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelinecarr/dealsense/internal/db"
	"github.com/avelinecarr/dealsense/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo on SQLite. Settings live in a
// single seeded row; Get never returns ErrNotFound on a migrated database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(dbtx db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: dbtx}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.RiskSettings, error) {
	query := `SELECT inactivity_threshold_days, enable_competitive_signals
		FROM risk_settings WHERE id = 'default'`
	var s domain.RiskSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.InactivityThresholdDays, &s.EnableCompetitiveSignals)
	if err != nil {
		if err == sql.ErrNoRows {
			defaults := domain.DefaultRiskSettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("loading risk settings: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.RiskSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO risk_settings (id, inactivity_threshold_days, enable_competitive_signals)
		VALUES ('default', ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			inactivity_threshold_days = excluded.inactivity_threshold_days,
			enable_competitive_signals = excluded.enable_competitive_signals`
	if _, err := r.db.ExecContext(ctx, query,
		s.InactivityThresholdDays, s.EnableCompetitiveSignals); err != nil {
		return fmt.Errorf("saving risk settings: %w", err)
	}
	return nil
}
