package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/repository"
	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/avelinecarr/dealsense/internal/testutil"
)

func newSignalsServiceForTest(t *testing.T) (*signalsService, repository.DealRepo, repository.EventRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	deals := repository.NewSQLiteDealRepo(database)
	events := repository.NewSQLiteEventRepo(database)
	settings := repository.NewSQLiteSettingsRepo(database)
	svc := NewSignalsService(deals, events, settings, risk.DefaultConfig(), nil).(*signalsService)
	svc.now = func() time.Time { return testNow }
	return svc, deals, events
}

func TestSignalsService_EnrichDealRepairsDriftedCache(t *testing.T) {
	svc, deals, _ := newSignalsServiceForTest(t)
	ctx := context.Background()

	// Fresh deal whose stored cache claims high risk: the formula is the
	// source of truth, so the read must repair the row.
	deal := testutil.NewTestDeal("Drifted", testutil.WithCreatedAt(testNow))
	deal.Status = domain.DealAtRisk
	deal.RiskScore = 0.9
	deal.RiskLevel = domain.RiskHigh
	require.NoError(t, deals.Create(ctx, deal))

	enriched, err := svc.EnrichDeal(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, enriched.Signals.RiskLevel)
	assert.Zero(t, enriched.Signals.RiskScore)

	stored, err := deals.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, stored.RiskLevel)
	assert.Zero(t, stored.RiskScore)
	assert.Equal(t, domain.DealActive, stored.Status)
}

func TestSignalsService_EnrichDealUsesTimeline(t *testing.T) {
	svc, deals, events := newSignalsServiceForTest(t)
	ctx := context.Background()

	deal := testutil.NewTestDeal("Active Again",
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -10)))
	require.NoError(t, deals.Create(ctx, deal))
	// The stored last_activity_at is 10 days stale, but the timeline has a
	// fresh call.
	require.NoError(t, events.Create(ctx, testutil.NewTestEvent(deal.ID, "call",
		testutil.WithEventCreatedAt(testNow.AddDate(0, 0, -1)))))

	enriched, err := svc.EnrichDeal(ctx, deal.ID)
	require.NoError(t, err)
	assert.True(t, enriched.Signals.LastActivityAt.Equal(testNow.AddDate(0, 0, -1)))
	require.Len(t, enriched.Timeline, 1)

	// No inactivity reason: 1 quiet day is under the 7-day threshold.
	for _, reason := range enriched.Signals.Reasons {
		assert.NotEqual(t, risk.ReasonInactivity, reason.Code)
	}
}

func TestSignalsService_EnrichAllCanonicalOrder(t *testing.T) {
	svc, deals, _ := newSignalsServiceForTest(t)
	ctx := context.Background()

	calm := testutil.NewTestDeal("Calm", testutil.WithCreatedAt(testNow.AddDate(0, 0, -2)))
	require.NoError(t, deals.Create(ctx, calm))
	// Very stale deal: overdue action, sorts first.
	stale := testutil.NewTestDeal("Stale", testutil.WithCreatedAt(testNow.AddDate(0, 0, -40)))
	require.NoError(t, deals.Create(ctx, stale))
	quiet := testutil.NewTestDeal("Quiet", testutil.WithCreatedAt(testNow.AddDate(0, 0, -20)))
	require.NoError(t, deals.Create(ctx, quiet))

	scored, err := svc.EnrichAll(ctx)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "Stale", scored[0].Deal.Name)
	assert.Equal(t, "Quiet", scored[1].Deal.Name)
	assert.Equal(t, "Calm", scored[2].Deal.Name)
	assert.True(t, scored[0].Signals.IsActionOverdue)
}

func TestSignalsService_EnrichAllSkipsArchived(t *testing.T) {
	svc, deals, _ := newSignalsServiceForTest(t)
	ctx := context.Background()

	live := testutil.NewTestDeal("Live")
	require.NoError(t, deals.Create(ctx, live))
	gone := testutil.NewTestDeal("Gone")
	require.NoError(t, deals.Create(ctx, gone))
	require.NoError(t, deals.Archive(ctx, gone.ID))

	scored, err := svc.EnrichAll(ctx)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, "Live", scored[0].Deal.Name)
}
