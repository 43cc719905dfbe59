package service

import (
	"context"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/insight"
	"github.com/avelinecarr/dealsense/internal/repository"
)

type insightService struct {
	deals       repository.DealRepo
	signals     SignalsService
	predictions PredictionService
	now         func() time.Time
}

func NewInsightService(
	deals repository.DealRepo,
	signals SignalsService,
	predictions PredictionService,
) InsightService {
	return &insightService{
		deals:       deals,
		signals:     signals,
		predictions: predictions,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *insightService) DealContext(ctx context.Context) (*insight.DealContext, error) {
	scored, err := s.signals.EnrichAll(ctx)
	if err != nil {
		return nil, err
	}
	dc := insight.BuildDealContext(scored, s.now())
	return &dc, nil
}

func (s *insightService) PipelineInsights(ctx context.Context) (*insight.PipelineInsights, error) {
	scored, err := s.signals.EnrichAll(ctx)
	if err != nil {
		return nil, err
	}
	pi := insight.BuildPipelineInsights(scored, s.now())
	return &pi, nil
}

func (s *insightService) ActivitySummary(ctx context.Context) (*insight.ActivitySummary, error) {
	scored, err := s.signals.EnrichAll(ctx)
	if err != nil {
		return nil, err
	}
	as := insight.BuildRecentActivitySummary(scored, s.now())
	return &as, nil
}

func (s *insightService) ContextBlock(ctx context.Context) (string, error) {
	scored, err := s.signals.EnrichAll(ctx)
	if err != nil {
		return "", err
	}
	now := s.now()
	dc := insight.BuildDealContext(scored, now)
	pi := insight.BuildPipelineInsights(scored, now)
	return insight.FormatContextForAI(dc, pi), nil
}

func (s *insightService) PredictionsBlock(ctx context.Context) (string, error) {
	fc, err := s.predictions.Forecast(ctx)
	if err != nil {
		return "", err
	}
	report, err := s.predictions.Patterns(ctx)
	if err != nil {
		return "", err
	}
	anomalies, err := s.predictions.Anomalies(ctx)
	if err != nil {
		return "", err
	}
	return insight.FormatPredictionsForAI(*fc, *report, anomalies), nil
}

func (s *insightService) DealDetailBlock(ctx context.Context, idOrPrefix string) (string, error) {
	enriched, err := s.signals.EnrichDeal(ctx, idOrPrefix)
	if err != nil {
		return "", err
	}
	prediction, err := s.predictions.PredictDeal(ctx, enriched.Deal.ID)
	if err != nil {
		return "", err
	}
	return insight.FormatDealDetailForAI(
		enriched.ScoredDeal,
		prediction.Estimate,
		prediction.WinProbability,
		prediction.Similar,
	), nil
}

func (s *insightService) FindMentions(ctx context.Context, query string) ([]domain.Deal, error) {
	deals, err := s.deals.List(ctx, false)
	if err != nil {
		return nil, err
	}
	cohort := make([]domain.Deal, len(deals))
	for i, d := range deals {
		cohort[i] = *d
	}
	return insight.FindMentionedDeals(query, cohort), nil
}
