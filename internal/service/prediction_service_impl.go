package service

import (
	"context"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/predict"
	"github.com/avelinecarr/dealsense/internal/repository"
)

type predictionService struct {
	deals      repository.DealRepo
	predictCfg predict.Config
	now        func() time.Time
}

func NewPredictionService(deals repository.DealRepo, predictCfg predict.Config) PredictionService {
	return &predictionService{
		deals:      deals,
		predictCfg: predictCfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// cohort loads every live deal as values. Closed deals stay in the cohort;
// they are the history the predictions learn from.
func (s *predictionService) cohort(ctx context.Context) ([]domain.Deal, error) {
	deals, err := s.deals.List(ctx, false)
	if err != nil {
		return nil, err
	}
	cohort := make([]domain.Deal, len(deals))
	for i, d := range deals {
		cohort[i] = *d
	}
	return cohort, nil
}

func (s *predictionService) PredictDeal(ctx context.Context, idOrPrefix string) (*DealPrediction, error) {
	deal, err := s.deals.GetByID(ctx, idOrPrefix)
	if err != nil {
		deal, err = s.deals.GetByPrefix(ctx, idOrPrefix)
		if err != nil {
			return nil, err
		}
	}
	cohort, err := s.cohort(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &DealPrediction{
		Deal:           *deal,
		Estimate:       predict.PredictDaysToClose(*deal, cohort, s.predictCfg, now),
		WinProbability: predict.CalculateWinProbability(*deal, cohort, s.predictCfg, now),
		Similar:        predict.FindSimilarDeals(*deal, cohort, s.predictCfg, now),
	}, nil
}

func (s *predictionService) Forecast(ctx context.Context) (*predict.Forecast, error) {
	cohort, err := s.cohort(ctx)
	if err != nil {
		return nil, err
	}
	f := predict.ForecastPipelineValue(cohort, s.predictCfg, s.now())
	return &f, nil
}

func (s *predictionService) Patterns(ctx context.Context) (*predict.PatternReport, error) {
	cohort, err := s.cohort(ctx)
	if err != nil {
		return nil, err
	}
	r := predict.IdentifyDealPatterns(cohort, s.predictCfg, s.now())
	return &r, nil
}

func (s *predictionService) Anomalies(ctx context.Context) ([]predict.Anomaly, error) {
	cohort, err := s.cohort(ctx)
	if err != nil {
		return nil, err
	}
	return predict.DetectAnomalies(cohort, s.predictCfg, s.now()), nil
}
