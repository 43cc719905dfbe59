package repository

import (
	"context"
	"errors"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row. Callers test with
// errors.Is; implementations wrap it with the record kind.
var ErrNotFound = errors.New("not found")

type DealRepo interface {
	Create(ctx context.Context, d *domain.Deal) error
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	// GetByPrefix resolves a deal from a truncated display ID.
	GetByPrefix(ctx context.Context, prefix string) (*domain.Deal, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Deal, error)
	Update(ctx context.Context, d *domain.Deal) error
	// UpdateSignalCache refreshes only the cached enrichment columns. The
	// stored values are non-authoritative; the risk engine recomputes them
	// on every read.
	UpdateSignalCache(ctx context.Context, d *domain.Deal) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.TimelineEvent) error
	// ListByDeal returns the deal's timeline newest-first.
	ListByDeal(ctx context.Context, dealID string) ([]domain.TimelineEvent, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.RiskSettings, error)
	Upsert(ctx context.Context, s *domain.RiskSettings) error
}
