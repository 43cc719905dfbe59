package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelinecarr/dealsense/internal/db"
	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/repository"
)

type dealService struct {
	deals repository.DealRepo
	uow   db.UnitOfWork
	now   func() time.Time
}

func NewDealService(deals repository.DealRepo, uow db.UnitOfWork) DealService {
	return &dealService{deals: deals, uow: uow, now: func() time.Time { return time.Now().UTC() }}
}

func (s *dealService) Create(ctx context.Context, d *domain.Deal) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := s.now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	if d.LastActivityAt.IsZero() {
		d.LastActivityAt = d.CreatedAt
	}
	if d.Stage == "" {
		d.Stage = domain.StageDiscovery
	}
	if d.Status == "" {
		d.Status = domain.DealActive
	}
	if d.RiskLevel == "" {
		d.RiskLevel = domain.RiskLow
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return s.deals.Create(ctx, d)
}

func (s *dealService) Get(ctx context.Context, idOrPrefix string) (*domain.Deal, error) {
	if d, err := s.deals.GetByID(ctx, idOrPrefix); err == nil {
		return d, nil
	}
	return s.deals.GetByPrefix(ctx, idOrPrefix)
}

func (s *dealService) List(ctx context.Context, includeArchived bool) ([]*domain.Deal, error) {
	return s.deals.List(ctx, includeArchived)
}

func (s *dealService) Update(ctx context.Context, d *domain.Deal) error {
	if err := d.Validate(); err != nil {
		return err
	}
	d.UpdatedAt = s.now()
	return s.deals.Update(ctx, d)
}

func (s *dealService) ChangeStage(ctx context.Context, id string, to domain.Stage) error {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if deal.Stage == to {
		return nil
	}
	if deal.Stage.IsClosed() {
		return fmt.Errorf("deal %s is already closed", deal.DisplayID())
	}

	from := deal.Stage
	now := s.now()

	// The stage update and its timeline entry land atomically: a stage
	// change is activity, so it also refreshes last_activity_at.
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDeals := repository.NewSQLiteDealRepo(tx)
		txEvents := repository.NewSQLiteEventRepo(tx)

		deal.Stage = to
		deal.LastActivityAt = now
		deal.UpdatedAt = now
		if to.IsClosed() {
			deal.Status = domain.DealClosed
		}
		if err := txDeals.Update(ctx, deal); err != nil {
			return err
		}
		return txEvents.Create(ctx, &domain.TimelineEvent{
			ID:        uuid.New().String(),
			DealID:    deal.ID,
			EventType: "stage_change",
			Metadata:  domain.StageChange{From: from, To: to},
			CreatedAt: now,
		})
	})
}

func (s *dealService) Close(ctx context.Context, id string, won bool) error {
	to := domain.StageClosedLost
	if won {
		to = domain.StageClosedWon
	}
	return s.ChangeStage(ctx, id, to)
}

func (s *dealService) Archive(ctx context.Context, id string) error {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.deals.Archive(ctx, deal.ID)
}

func (s *dealService) Unarchive(ctx context.Context, id string) error {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.deals.Unarchive(ctx, deal.ID)
}

func (s *dealService) Delete(ctx context.Context, id string, force bool) error {
	deal, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !force && deal.ArchivedAt == nil {
		return fmt.Errorf("deal must be archived before deletion (use --force to override)")
	}
	return s.deals.Delete(ctx, deal.ID)
}
