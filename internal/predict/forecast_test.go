package predict

import (
	"testing"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastPipelineValue_EmptyCohortStillHasThreeMonths(t *testing.T) {
	f := ForecastPipelineValue(nil, DefaultConfig(), now)

	assert.Zero(t, f.Expected)
	assert.Zero(t, f.BestCase)
	assert.Zero(t, f.WorstCase)
	require.Len(t, f.Monthly, 3)
	for _, m := range f.Monthly {
		assert.Zero(t, m.Value)
		assert.NotEmpty(t, m.Month)
	}
}

func TestForecastPipelineValue_Envelope(t *testing.T) {
	cohort := []domain.Deal{
		openDeal("a", 100_000, domain.StageProposal, 20, 2),
		openDeal("b", 50_000, domain.StageNegotiation, 30, 5),
		closedDeal("w1", 40_000, domain.StageClosedWon, 30),
		closedDeal("l1", 40_000, domain.StageClosedLost, 40),
	}

	f := ForecastPipelineValue(cohort, DefaultConfig(), now)

	assert.Greater(t, f.Expected, 0.0)
	assert.LessOrEqual(t, f.WorstCase, f.Expected)
	assert.LessOrEqual(t, f.Expected, f.BestCase)

	// Closed deals contribute nothing to pipeline value.
	activeTotal := 150_000.0
	assert.LessOrEqual(t, f.BestCase, activeTotal)
}

func TestForecastPipelineValue_MonthlySplitsEvenly(t *testing.T) {
	cohort := []domain.Deal{openDeal("a", 90_000, domain.StageProposal, 20, 2)}

	f := ForecastPipelineValue(cohort, DefaultConfig(), now)

	require.Len(t, f.Monthly, 3)
	assert.InDelta(t, f.Expected/3, f.Monthly[0].Value, 1e-9)
	assert.Equal(t, f.Monthly[0].Value, f.Monthly[1].Value)
	assert.Equal(t, f.Monthly[1].Value, f.Monthly[2].Value)
	assert.Equal(t, "Jul", f.Monthly[0].Month)
	assert.Equal(t, "Aug", f.Monthly[1].Month)
	assert.Equal(t, "Sep", f.Monthly[2].Month)
}
