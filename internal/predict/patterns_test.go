package predict

import (
	"testing"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyDealPatterns_NoClosedHistory(t *testing.T) {
	cohort := []domain.Deal{openDeal("a", 10_000, domain.StageDiscovery, 5, 1)}

	report := IdentifyDealPatterns(cohort, DefaultConfig(), now)

	require.Len(t, report.Insights, 1)
	assert.Equal(t, "insufficient_data", report.Insights[0].Type)
	assert.Equal(t, domain.ImpactNeutral, report.Insights[0].Impact)
	assert.NotEmpty(t, report.Recommendations)
}

func TestIdentifyDealPatterns_WinRateAndSlowLosses(t *testing.T) {
	cohort := []domain.Deal{
		closedDeal("w1", 50_000, domain.StageClosedWon, 30),
		closedDeal("l1", 20_000, domain.StageClosedLost, 90),
		closedDeal("l2", 20_000, domain.StageClosedLost, 100),
	}

	report := IdentifyDealPatterns(cohort, DefaultConfig(), now)

	byType := map[string]Insight{}
	for _, in := range report.Insights {
		byType[in.Type] = in
	}

	winRate, ok := byType["win_rate"]
	require.True(t, ok)
	require.NotNil(t, winRate.Metric)
	assert.InDelta(t, 33.3, *winRate.Metric, 0.5)
	assert.Equal(t, domain.ImpactNegative, winRate.Impact)

	_, ok = byType["slow_losses"]
	assert.True(t, ok, "lost deals running 3x longer than wins should be flagged")
	assert.Contains(t, report.Recommendations[0], "Disqualify")
}

func TestIdentifyDealPatterns_HighRiskLossesFlagged(t *testing.T) {
	l1 := closedDeal("l1", 20_000, domain.StageClosedLost, 40)
	l1.RiskLevel = domain.RiskHigh
	l2 := closedDeal("l2", 20_000, domain.StageClosedLost, 45)
	l2.RiskLevel = domain.RiskHigh
	cohort := []domain.Deal{
		closedDeal("w1", 50_000, domain.StageClosedWon, 30),
		l1, l2,
	}

	report := IdentifyDealPatterns(cohort, DefaultConfig(), now)

	found := false
	for _, in := range report.Insights {
		if in.Type == "risk_before_loss" {
			found = true
			assert.Equal(t, domain.ImpactNegative, in.Impact)
		}
	}
	assert.True(t, found)
}

func TestIdentifyDealPatterns_StaleActiveDeals(t *testing.T) {
	cohort := []domain.Deal{
		closedDeal("w1", 50_000, domain.StageClosedWon, 30),
		openDeal("quiet", 10_000, domain.StageProposal, 60, 20),
		openDeal("fresh", 10_000, domain.StageProposal, 10, 1),
	}

	report := IdentifyDealPatterns(cohort, DefaultConfig(), now)

	found := false
	for _, in := range report.Insights {
		if in.Type == "stale_active" {
			found = true
			require.NotNil(t, in.Metric)
			assert.Equal(t, 1.0, *in.Metric)
		}
	}
	assert.True(t, found)
}
