package service

import (
	"context"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/insight"
	"github.com/avelinecarr/dealsense/internal/predict"
	"github.com/avelinecarr/dealsense/internal/risk"
)

type DealService interface {
	Create(ctx context.Context, d *domain.Deal) error
	// Get resolves a deal by full ID or display-ID prefix.
	Get(ctx context.Context, idOrPrefix string) (*domain.Deal, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Deal, error)
	Update(ctx context.Context, d *domain.Deal) error
	// ChangeStage moves a deal through the pipeline, logging a stage_change
	// timeline event alongside the update.
	ChangeStage(ctx context.Context, id string, to domain.Stage) error
	// Close moves the deal to closed_won or closed_lost.
	Close(ctx context.Context, id string, won bool) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type EventService interface {
	// LogEvent appends a timeline event and refreshes the deal's cached
	// risk fields in the same transaction.
	LogEvent(ctx context.Context, dealID, eventType string, metadata domain.EventMetadata) (*domain.TimelineEvent, error)
	Timeline(ctx context.Context, dealID string) ([]domain.TimelineEvent, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.RiskSettings, error)
	Update(ctx context.Context, s *domain.RiskSettings) error
}

// EnrichedDeal is a scored deal together with the timeline the scoring ran
// over.
type EnrichedDeal struct {
	risk.ScoredDeal
	Timeline []domain.TimelineEvent
}

type SignalsService interface {
	// EnrichDeal recomputes a single deal's signals from its timeline. If
	// the stored cache disagrees with the fresh computation, the cache is
	// repaired before returning.
	EnrichDeal(ctx context.Context, idOrPrefix string) (*EnrichedDeal, error)
	// EnrichAll scores every live deal against one shared "now" so
	// cross-deal comparisons are consistent, in canonical order.
	EnrichAll(ctx context.Context) ([]risk.ScoredDeal, error)
}

// DealPrediction bundles the per-deal forward-looking estimates.
type DealPrediction struct {
	Deal           domain.Deal
	Estimate       predict.DaysToCloseEstimate
	WinProbability predict.WinProbability
	Similar        predict.SimilarDeals
}

type PredictionService interface {
	PredictDeal(ctx context.Context, idOrPrefix string) (*DealPrediction, error)
	Forecast(ctx context.Context) (*predict.Forecast, error)
	Patterns(ctx context.Context) (*predict.PatternReport, error)
	Anomalies(ctx context.Context) ([]predict.Anomaly, error)
}

// ActionQueue buckets scored deals by how soon they need attention. Each
// bucket preserves canonical order.
type ActionQueue struct {
	Urgent    []risk.ScoredDeal
	Important []risk.ScoredDeal
	Safe      []risk.ScoredDeal
}

type ActionQueueService interface {
	Build(ctx context.Context) (*ActionQueue, error)
}

type InsightService interface {
	DealContext(ctx context.Context) (*insight.DealContext, error)
	PipelineInsights(ctx context.Context) (*insight.PipelineInsights, error)
	ActivitySummary(ctx context.Context) (*insight.ActivitySummary, error)
	// ContextBlock renders the cohort context as assistant prompt text.
	ContextBlock(ctx context.Context) (string, error)
	PredictionsBlock(ctx context.Context) (string, error)
	DealDetailBlock(ctx context.Context, idOrPrefix string) (string, error)
	// FindMentions grounds a free-text query in specific deal records.
	FindMentions(ctx context.Context, query string) ([]domain.Deal, error)
}
