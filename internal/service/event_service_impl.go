package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelinecarr/dealsense/internal/db"
	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/repository"
	"github.com/avelinecarr/dealsense/internal/risk"
)

type eventService struct {
	deals    repository.DealRepo
	events   repository.EventRepo
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	riskCfg  risk.Config
	now      func() time.Time
}

func NewEventService(
	deals repository.DealRepo,
	events repository.EventRepo,
	settings repository.SettingsRepo,
	uow db.UnitOfWork,
	riskCfg risk.Config,
) EventService {
	return &eventService{
		deals:    deals,
		events:   events,
		settings: settings,
		uow:      uow,
		riskCfg:  riskCfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *eventService) LogEvent(ctx context.Context, dealID, eventType string, metadata domain.EventMetadata) (*domain.TimelineEvent, error) {
	if !domain.ValidEventTypes[eventType] {
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}

	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		deal, err = s.deals.GetByPrefix(ctx, dealID)
		if err != nil {
			return nil, err
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	event := &domain.TimelineEvent{
		ID:        uuid.New().String(),
		DealID:    deal.ID,
		EventType: eventType,
		Metadata:  metadata,
		CreatedAt: now,
	}

	// Insert the event and refresh the deal's cached signals atomically.
	// The cache is a convenience for list queries; reads still recompute.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeals := repository.NewSQLiteDealRepo(tx)
		txEvents := repository.NewSQLiteEventRepo(tx)

		if err := txEvents.Create(ctx, event); err != nil {
			return err
		}

		timeline, err := txEvents.ListByDeal(ctx, deal.ID)
		if err != nil {
			return err
		}
		signals, err := risk.CalculateDealSignals(*deal, timeline, settings, s.riskCfg, now)
		if err != nil {
			return err
		}

		deal.Status = signals.Status
		deal.RiskScore = signals.RiskScore
		deal.RiskLevel = signals.RiskLevel
		deal.LastActivityAt = signals.LastActivityAt
		deal.UpdatedAt = now
		return txDeals.UpdateSignalCache(ctx, deal)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Timeline(ctx context.Context, dealID string) ([]domain.TimelineEvent, error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		deal, err = s.deals.GetByPrefix(ctx, dealID)
		if err != nil {
			return nil, err
		}
	}
	return s.events.ListByDeal(ctx, deal.ID)
}
