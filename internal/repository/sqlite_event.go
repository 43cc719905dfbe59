package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/db"
	"github.com/avelinecarr/dealsense/internal/domain"
)

// SQLiteEventRepo implements EventRepo on SQLite.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(dbtx db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: dbtx}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.TimelineEvent) error {
	metadata, err := domain.EncodeMetadata(e.Metadata)
	if err != nil {
		return fmt.Errorf("encoding event metadata: %w", err)
	}
	query := `INSERT INTO timeline_events (id, deal_id, event_type, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.DealID,
		e.EventType,
		metadata,
		fmtTime(e.CreatedAt),
	); err != nil {
		return fmt.Errorf("inserting timeline event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) ListByDeal(ctx context.Context, dealID string) ([]domain.TimelineEvent, error) {
	query := `SELECT id, deal_id, event_type, metadata, created_at
		FROM timeline_events WHERE deal_id = ?
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("listing timeline events: %w", err)
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var e domain.TimelineEvent
		var metadata, createdStr string
		if err := rows.Scan(&e.ID, &e.DealID, &e.EventType, &metadata, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning timeline event: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing event created_at: %w", err)
		}
		if e.Metadata, err = domain.DecodeMetadata(metadata); err != nil {
			return nil, fmt.Errorf("decoding event metadata: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timeline events: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timeline_events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting timeline event: %w", err)
	}
	return nil
}
