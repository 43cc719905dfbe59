package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
)

func TestBuildRecentActivitySummary(t *testing.T) {
	deals := []risk.ScoredDeal{
		scored("Fresh", 10_000, domain.StageDiscovery, 2, risk.Signals{}),
		scored("Quiet", 40_000, domain.StageProposal, 30, risk.Signals{
			LastActivityAt: now.AddDate(0, 0, -12),
		}),
		scored("Quieter", 60_000, domain.StageNegotiation, 30, risk.Signals{
			LastActivityAt: now.AddDate(0, 0, -20),
		}),
		// Closed deals are never flagged as silent.
		scored("Done", 90_000, domain.StageClosedWon, 90, risk.Signals{}),
	}

	sum := BuildRecentActivitySummary(deals, now)

	assert.Equal(t, 1, sum.NewDealsCount)
	require.Len(t, sum.SilentDeals, 2)
	assert.Equal(t, "Quieter", sum.SilentDeals[0].Name)
	assert.Equal(t, 20, sum.SilentDeals[0].DaysSilent)
	assert.Equal(t, "Quiet", sum.SilentDeals[1].Name)
	require.Len(t, sum.SummaryLines, 2)
	assert.Contains(t, sum.SummaryLines[0], "1 new deals")
	assert.Contains(t, sum.SummaryLines[1], "2 active deals have gone silent")
}

func TestBuildRecentActivitySummaryCapsAtTen(t *testing.T) {
	var deals []risk.ScoredDeal
	for i := 0; i < 14; i++ {
		deals = append(deals, scored(fmt.Sprintf("silent-%02d", i), 1_000, domain.StageDiscovery, 60, risk.Signals{
			LastActivityAt: now.AddDate(0, 0, -(10 + i)),
		}))
	}

	sum := BuildRecentActivitySummary(deals, now)

	require.Len(t, sum.SilentDeals, 10)
	// Most silent first.
	assert.Equal(t, 23, sum.SilentDeals[0].DaysSilent)
	assert.Equal(t, 14, sum.SilentDeals[9].DaysSilent)
}

func TestBuildRecentActivitySummaryEmpty(t *testing.T) {
	sum := BuildRecentActivitySummary(nil, now)

	assert.Zero(t, sum.NewDealsCount)
	assert.Empty(t, sum.SilentDeals)
	assert.Contains(t, sum.SummaryLines[1], "No active deals have gone silent")
}
