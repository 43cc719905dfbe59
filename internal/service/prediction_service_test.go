package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/predict"
	"github.com/avelinecarr/dealsense/internal/repository"
	"github.com/avelinecarr/dealsense/internal/testutil"
)

func newPredictionServiceForTest(t *testing.T) (*predictionService, repository.DealRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	deals := repository.NewSQLiteDealRepo(database)
	svc := NewPredictionService(deals, predict.DefaultConfig()).(*predictionService)
	svc.now = func() time.Time { return testNow }
	return svc, deals
}

func seedClosedWon(t *testing.T, deals repository.DealRepo, name string, value float64, cycleDays int) {
	t.Helper()
	created := testNow.AddDate(0, 0, -cycleDays-30)
	d := testutil.NewTestDeal(name,
		testutil.WithValue(value),
		testutil.WithStage(domain.StageClosedWon),
		testutil.WithCreatedAt(created),
		testutil.WithLastActivityAt(created.AddDate(0, 0, cycleDays)))
	require.NoError(t, deals.Create(context.Background(), d))
}

func TestPredictionService_PredictDealWithHistory(t *testing.T) {
	svc, deals := newPredictionServiceForTest(t)
	ctx := context.Background()

	for i, cycle := range []int{30, 40, 50} {
		seedClosedWon(t, deals, []string{"Won A", "Won B", "Won C"}[i], 25_000, cycle)
	}
	open := testutil.NewTestDeal("Open",
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -5)))
	require.NoError(t, deals.Create(ctx, open))

	p, err := svc.PredictDeal(ctx, open.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ConfidenceMedium, p.Estimate.Confidence)
	assert.Positive(t, p.Estimate.EstimatedDays)
	assert.GreaterOrEqual(t, p.WinProbability.Probability, 0.0)
	assert.LessOrEqual(t, p.WinProbability.Probability, 100.0)
	assert.Len(t, p.Similar.Similar, 3)
	assert.Equal(t, 1.0, p.Similar.WinRate)
}

func TestPredictionService_EmptyHistoryDegradesGracefully(t *testing.T) {
	svc, deals := newPredictionServiceForTest(t)
	ctx := context.Background()

	open := testutil.NewTestDeal("Lonely",
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -10)))
	require.NoError(t, deals.Create(ctx, open))

	p, err := svc.PredictDeal(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfidenceLow, p.Estimate.Confidence)
	assert.Empty(t, p.Similar.Similar)

	fc, err := svc.Forecast(ctx)
	require.NoError(t, err)
	assert.Len(t, fc.Monthly, 3)

	report, err := svc.Patterns(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, report.Insights)
	assert.Equal(t, "insufficient_data", report.Insights[0].Type)
}

func TestPredictionService_ForecastCountsActiveOnly(t *testing.T) {
	svc, deals := newPredictionServiceForTest(t)
	ctx := context.Background()

	seedClosedWon(t, deals, "Done", 50_000, 30)
	open := testutil.NewTestDeal("Open",
		testutil.WithValue(100_000),
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -5)))
	require.NoError(t, deals.Create(ctx, open))

	fc, err := svc.Forecast(ctx)
	require.NoError(t, err)
	assert.Positive(t, fc.Expected)
	// Expected value can never exceed the open pipeline's face value.
	assert.LessOrEqual(t, fc.Expected, 100_000.0)
	assert.GreaterOrEqual(t, fc.BestCase, fc.Expected)
	assert.LessOrEqual(t, fc.WorstCase, fc.Expected)
}

func TestPredictionService_Anomalies(t *testing.T) {
	svc, deals := newPredictionServiceForTest(t)
	ctx := context.Background()

	// Quiet for 40 days: high-severity silence anomaly even with no
	// closed history.
	silent := testutil.NewTestDeal("Silent",
		testutil.WithCreatedAt(testNow.AddDate(0, 0, -40)))
	require.NoError(t, deals.Create(ctx, silent))

	anomalies, err := svc.Anomalies(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, anomalies)

	var foundSilence bool
	for _, a := range anomalies {
		if a.Deal.Name == "Silent" && a.Severity == domain.SeverityHigh {
			foundSilence = true
		}
	}
	assert.True(t, foundSilence)
}
