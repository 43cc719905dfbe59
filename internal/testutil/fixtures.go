package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// Deal options
type DealOption func(*domain.Deal)

func WithValue(v float64) DealOption {
	return func(d *domain.Deal) {
		d.Value = v
	}
}

func WithStage(s domain.Stage) DealOption {
	return func(d *domain.Deal) {
		d.Stage = s
	}
}

func WithCreatedAt(t time.Time) DealOption {
	return func(d *domain.Deal) {
		d.CreatedAt = t
		d.UpdatedAt = t
		d.LastActivityAt = t
	}
}

func WithLastActivityAt(t time.Time) DealOption {
	return func(d *domain.Deal) {
		d.LastActivityAt = t
	}
}

func WithArchivedAt(t time.Time) DealOption {
	return func(d *domain.Deal) {
		d.ArchivedAt = &t
	}
}

// NewTestDeal builds a fresh active discovery-stage deal. Timestamps
// default to now so tests that care about elapsed time must pin them with
// WithCreatedAt/WithLastActivityAt.
func NewTestDeal(name string, opts ...DealOption) *domain.Deal {
	now := time.Now().UTC()
	d := &domain.Deal{
		ID:             uuid.New().String(),
		Name:           name,
		Stage:          domain.StageDiscovery,
		Value:          25_000,
		Status:         domain.DealActive,
		RiskLevel:      domain.RiskLow,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Event options
type EventOption func(*domain.TimelineEvent)

func WithEventCreatedAt(t time.Time) EventOption {
	return func(e *domain.TimelineEvent) {
		e.CreatedAt = t
	}
}

func WithMetadata(m domain.EventMetadata) EventOption {
	return func(e *domain.TimelineEvent) {
		e.Metadata = m
	}
}

func NewTestEvent(dealID, eventType string, opts ...EventOption) *domain.TimelineEvent {
	e := &domain.TimelineEvent{
		ID:        uuid.New().String(),
		DealID:    dealID,
		EventType: eventType,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
