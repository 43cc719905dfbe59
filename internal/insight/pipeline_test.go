package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
)

func TestBuildPipelineInsightsHealthScore(t *testing.T) {
	t.Run("no deals uses baseline win rate", func(t *testing.T) {
		pi := BuildPipelineInsights(nil, now)
		// 50 + 0.5*30 with no penalties.
		assert.Equal(t, 65, pi.HealthScore)
		assert.Equal(t, domain.TrendStable, pi.Trend)
	})

	t.Run("at-risk and overdue fractions pull health down", func(t *testing.T) {
		deals := []risk.ScoredDeal{
			scored("Won", 10_000, domain.StageClosedWon, 60, risk.Signals{}),
			scored("Healthy", 10_000, domain.StageDiscovery, 20, risk.Signals{}),
			scored("Shaky", 10_000, domain.StageProposal, 20, risk.Signals{
				Status:            domain.DealAtRisk,
				RiskLevel:         domain.RiskHigh,
				IsActionOverdue:   true,
				ActionOverdueDays: intPtr(2),
			}),
		}
		pi := BuildPipelineInsights(deals, now)
		// winRate 1.0: 50 + 30 - 30*(1/2) - 20*(1/2) = 55.
		assert.Equal(t, 55, pi.HealthScore)
	})

	t.Run("clamped to 0-100", func(t *testing.T) {
		var deals []risk.ScoredDeal
		deals = append(deals, scored("Lost", 5_000, domain.StageClosedLost, 30, risk.Signals{}))
		for i := 0; i < 4; i++ {
			deals = append(deals, scored(fmt.Sprintf("Bad %d", i), 5_000, domain.StageProposal, 40, risk.Signals{
				Status:            domain.DealAtRisk,
				RiskLevel:         domain.RiskHigh,
				IsActionOverdue:   true,
				ActionOverdueDays: intPtr(10),
			}))
		}
		pi := BuildPipelineInsights(deals, now)
		// 50 + 0 - 30 - 20 = 0, already at the floor.
		assert.Equal(t, 0, pi.HealthScore)
	})
}

func TestBuildPipelineInsightsTrend(t *testing.T) {
	build := func(lastWeek, weekBefore int) []risk.ScoredDeal {
		var out []risk.ScoredDeal
		for i := 0; i < lastWeek; i++ {
			out = append(out, scored(fmt.Sprintf("new-%d", i), 1_000, domain.StageDiscovery, 2, risk.Signals{}))
		}
		for i := 0; i < weekBefore; i++ {
			out = append(out, scored(fmt.Sprintf("old-%d", i), 1_000, domain.StageDiscovery, 10, risk.Signals{}))
		}
		return out
	}

	assert.Equal(t, domain.TrendUp, BuildPipelineInsights(build(5, 1), now).Trend)
	assert.Equal(t, domain.TrendDown, BuildPipelineInsights(build(1, 5), now).Trend)
	assert.Equal(t, domain.TrendStable, BuildPipelineInsights(build(4, 3), now).Trend)
}

func TestBuildPipelineInsightsBottlenecks(t *testing.T) {
	var deals []risk.ScoredDeal
	deals = append(deals, scored("d1", 1_000, domain.StageDiscovery, 20, risk.Signals{}))
	for i := 0; i < 5; i++ {
		deals = append(deals, scored(fmt.Sprintf("q%d", i), 1_000, domain.StageQualification, 20, risk.Signals{}))
	}
	// Closed deals never count toward stage pileups.
	deals = append(deals, scored("won", 1_000, domain.StageClosedWon, 60, risk.Signals{}))

	pi := BuildPipelineInsights(deals, now)

	assert.Equal(t, []domain.Stage{domain.StageQualification}, pi.BottleneckStages)
}

func TestBuildPipelineInsightsBestStageAndActivity(t *testing.T) {
	deals := []risk.ScoredDeal{
		scored("small", 10_000, domain.StageDiscovery, 4, risk.Signals{}),
		scored("big", 300_000, domain.StageNegotiation, 8, risk.Signals{}),
	}

	pi := BuildPipelineInsights(deals, now)

	assert.Equal(t, domain.StageNegotiation, pi.BestPerformingStage)
	// LastActivityAt defaults to creation in the fixture: (4+8)/2 = 6.
	assert.Equal(t, 6, pi.AvgDaysSinceActivity)
}
