package service

import (
	"context"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/repository"
	"github.com/avelinecarr/dealsense/internal/risk"
)

type signalsService struct {
	deals    repository.DealRepo
	events   repository.EventRepo
	settings repository.SettingsRepo
	riskCfg  risk.Config
	obs      UseCaseObserver
	now      func() time.Time
}

func NewSignalsService(
	deals repository.DealRepo,
	events repository.EventRepo,
	settings repository.SettingsRepo,
	riskCfg risk.Config,
	obs UseCaseObserver,
) SignalsService {
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}
	return &signalsService{
		deals:    deals,
		events:   events,
		settings: settings,
		riskCfg:  riskCfg,
		obs:      obs,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *signalsService) EnrichDeal(ctx context.Context, idOrPrefix string) (*EnrichedDeal, error) {
	deal, err := s.deals.GetByID(ctx, idOrPrefix)
	if err != nil {
		deal, err = s.deals.GetByPrefix(ctx, idOrPrefix)
		if err != nil {
			return nil, err
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	timeline, err := s.events.ListByDeal(ctx, deal.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	signals, err := risk.CalculateDealSignals(*deal, timeline, settings, s.riskCfg, now)
	if err != nil {
		return nil, err
	}

	s.repairIfDrifted(ctx, deal, signals, now)

	return &EnrichedDeal{
		ScoredDeal: risk.ScoredDeal{Deal: *deal, Signals: signals},
		Timeline:   timeline,
	}, nil
}

func (s *signalsService) EnrichAll(ctx context.Context) ([]risk.ScoredDeal, error) {
	deals, err := s.deals.List(ctx, false)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	// One now for the whole batch so cross-deal comparisons never skew.
	now := s.now()

	scored := make([]risk.ScoredDeal, 0, len(deals))
	for _, deal := range deals {
		timeline, err := s.events.ListByDeal(ctx, deal.ID)
		if err != nil {
			return nil, err
		}
		signals, err := risk.CalculateDealSignals(*deal, timeline, settings, s.riskCfg, now)
		if err != nil {
			return nil, err
		}
		s.repairIfDrifted(ctx, deal, signals, now)
		scored = append(scored, risk.ScoredDeal{Deal: *deal, Signals: signals})
	}

	risk.CanonicalSort(scored)
	return scored, nil
}

// repairIfDrifted recomputes the deal's cached risk fields when the stored
// values disagree with a fresh computation. The fresh signals win; the
// stored cache is never trusted over the formula.
func (s *signalsService) repairIfDrifted(ctx context.Context, deal *domain.Deal, signals risk.Signals, now time.Time) {
	driftErr := risk.CheckIntegrity(*deal, signals)
	if driftErr == nil {
		return
	}

	start := time.Now()
	deal.Status = signals.Status
	deal.RiskScore = signals.RiskScore
	deal.RiskLevel = signals.RiskLevel
	deal.LastActivityAt = signals.LastActivityAt
	deal.UpdatedAt = now
	err := s.deals.UpdateSignalCache(ctx, deal)
	observe(ctx, s.obs, "signals.cache_repair", start, err, map[string]any{
		"deal_id": deal.ID,
		"drift":   driftErr.Error(),
	})
}
