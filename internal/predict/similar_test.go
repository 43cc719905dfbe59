package predict

import (
	"fmt"
	"testing"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSimilarDeals_NoClosedDeals(t *testing.T) {
	deal := openDeal("only", 20_000, domain.StageProposal, 10, 2)

	out := FindSimilarDeals(deal, []domain.Deal{deal}, DefaultConfig(), now)

	assert.Empty(t, out.Similar)
	assert.Zero(t, out.WinRate)
	assert.Zero(t, out.AvgDaysToClose)
}

func TestFindSimilarDeals_CapsAtFive(t *testing.T) {
	deal := openDeal("target", 20_000, domain.StageProposal, 10, 2)
	cohort := []domain.Deal{deal}
	for i := 0; i < 12; i++ {
		cohort = append(cohort, closedDeal(fmt.Sprintf("c%02d", i), 20_000, domain.StageClosedWon, 30+i))
	}

	out := FindSimilarDeals(deal, cohort, DefaultConfig(), now)
	assert.Len(t, out.Similar, 5)
}

func TestFindSimilarDeals_PrefersSameValueBucket(t *testing.T) {
	deal := openDeal("target", 25_000, domain.StageProposal, 30, 2)
	sameBucket := closedDeal("match", 30_000, domain.StageClosedWon, 30)
	farBucket := closedDeal("whale", 900_000, domain.StageClosedWon, 30)

	out := FindSimilarDeals(deal, []domain.Deal{deal, farBucket, sameBucket}, DefaultConfig(), now)

	require.NotEmpty(t, out.Similar)
	assert.Equal(t, "match", out.Similar[0].Name)
}

func TestFindSimilarDeals_StatsComputedOverReturnedSet(t *testing.T) {
	deal := openDeal("target", 25_000, domain.StageProposal, 30, 2)
	cohort := []domain.Deal{
		deal,
		closedDeal("w1", 25_000, domain.StageClosedWon, 30),
		closedDeal("l1", 25_000, domain.StageClosedLost, 30),
	}

	out := FindSimilarDeals(deal, cohort, DefaultConfig(), now)

	require.Len(t, out.Similar, 2)
	assert.Equal(t, 0.5, out.WinRate, "win rate is over the returned set, not the cohort")
	assert.Equal(t, 30.0, out.AvgDaysToClose)
}

func TestFindSimilarDeals_ExcludesSelf(t *testing.T) {
	self := closedDeal("self", 25_000, domain.StageClosedWon, 30)
	out := FindSimilarDeals(self, []domain.Deal{self}, DefaultConfig(), now)
	assert.Empty(t, out.Similar)
}
