package predict

import (
	"testing"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateWinProbability_SingleDealCohort(t *testing.T) {
	deal := openDeal("solo", 20_000, domain.StageProposal, 10, 2)

	wp := CalculateWinProbability(deal, []domain.Deal{deal}, DefaultConfig(), now)

	assert.GreaterOrEqual(t, wp.Probability, 0.0)
	assert.LessOrEqual(t, wp.Probability, 100.0)
	assert.Contains(t, wp.Factors[0], "50% base rate")
}

func TestCalculateWinProbability_RiskMonotonicallyReduces(t *testing.T) {
	cohort := []domain.Deal{
		closedDeal("w1", 20_000, domain.StageClosedWon, 30),
		closedDeal("l1", 20_000, domain.StageClosedLost, 50),
	}

	lowRisk := openDeal("deal", 20_000, domain.StageProposal, 10, 2)
	medRisk := lowRisk
	medRisk.RiskLevel = domain.RiskMedium
	highRisk := lowRisk
	highRisk.RiskLevel = domain.RiskHigh

	pLow := CalculateWinProbability(lowRisk, cohort, DefaultConfig(), now).Probability
	pMed := CalculateWinProbability(medRisk, cohort, DefaultConfig(), now).Probability
	pHigh := CalculateWinProbability(highRisk, cohort, DefaultConfig(), now).Probability

	assert.Greater(t, pLow, pMed)
	assert.Greater(t, pMed, pHigh)
}

func TestCalculateWinProbability_ClampedAtExtremes(t *testing.T) {
	allWon := []domain.Deal{
		closedDeal("w1", 20_000, domain.StageClosedWon, 30),
		closedDeal("w2", 20_000, domain.StageClosedWon, 30),
	}
	hot := openDeal("hot", 20_000, domain.StageNegotiation, 5, 0)
	wp := CalculateWinProbability(hot, allWon, DefaultConfig(), now)
	assert.LessOrEqual(t, wp.Probability, 100.0)

	allLost := []domain.Deal{
		closedDeal("l1", 20_000, domain.StageClosedLost, 30),
		closedDeal("l2", 20_000, domain.StageClosedLost, 30),
	}
	cold := openDeal("cold", 20_000, domain.StageDiscovery, 200, 60)
	cold.RiskLevel = domain.RiskHigh
	cold.Status = domain.DealAtRisk
	wp = CalculateWinProbability(cold, allLost, DefaultConfig(), now)
	assert.GreaterOrEqual(t, wp.Probability, 0.0)
	assert.Equal(t, domain.TrendDown, wp.Trend)
}

func TestCalculateWinProbability_TrendUpOnFreshLowRisk(t *testing.T) {
	deal := openDeal("fresh", 20_000, domain.StageProposal, 10, 1)
	wp := CalculateWinProbability(deal, []domain.Deal{deal}, DefaultConfig(), now)
	assert.Equal(t, domain.TrendUp, wp.Trend)
}

func TestCalculateWinProbability_StallPenaltyPastP90(t *testing.T) {
	cohort := []domain.Deal{
		closedDeal("w1", 20_000, domain.StageClosedWon, 30),
		closedDeal("w2", 20_000, domain.StageClosedWon, 35),
		closedDeal("l1", 20_000, domain.StageClosedLost, 40),
	}
	young := openDeal("young", 20_000, domain.StageProposal, 10, 10)
	old := openDeal("old", 20_000, domain.StageProposal, 120, 10)

	pYoung := CalculateWinProbability(young, cohort, DefaultConfig(), now).Probability
	pOld := CalculateWinProbability(old, cohort, DefaultConfig(), now).Probability
	assert.Greater(t, pYoung, pOld, "age past p90 of history should cost probability")
}
