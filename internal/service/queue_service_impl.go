package service

import (
	"context"

	"github.com/avelinecarr/dealsense/internal/domain"
)

type actionQueueService struct {
	signals SignalsService
}

func NewActionQueueService(signals SignalsService) ActionQueueService {
	return &actionQueueService{signals: signals}
}

// Build sorts the live pipeline into attention buckets. EnrichAll returns
// deals in canonical order, so each bucket inherits it.
func (s *actionQueueService) Build(ctx context.Context) (*ActionQueue, error) {
	scored, err := s.signals.EnrichAll(ctx)
	if err != nil {
		return nil, err
	}

	q := &ActionQueue{}
	for _, sd := range scored {
		if sd.Deal.Stage.IsClosed() {
			continue
		}
		switch {
		case sd.Signals.IsActionOverdue || sd.Signals.RiskLevel == domain.RiskHigh:
			q.Urgent = append(q.Urgent, sd)
		case sd.Signals.RiskLevel == domain.RiskMedium:
			q.Important = append(q.Important, sd)
		default:
			q.Safe = append(q.Safe, sd)
		}
	}
	return q, nil
}
