package formatter

import (
	"testing"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/insight"
	"github.com/stretchr/testify/assert"
)

func TestFormatInsights_FullView(t *testing.T) {
	dc := insight.DealContext{
		ByStage: map[domain.Stage]insight.GroupStat{
			domain.StageProposal: {Count: 2, Value: 150_000},
		},
		Urgent: []insight.UrgentDeal{
			{Name: "Stale Deal", Value: 80_000, Reason: "Action overdue by 4 days", Stage: domain.StageProposal},
		},
	}
	pi := insight.PipelineInsights{
		HealthScore:          65,
		Trend:                domain.TrendUp,
		BottleneckStages:     []domain.Stage{domain.StageQualification},
		AvgDaysSinceActivity: 6,
		BestPerformingStage:  domain.StageProposal,
	}
	act := insight.ActivitySummary{
		SummaryLines: []string{"1 new deals in the last 7 days"},
		SilentDeals: []insight.SilentDeal{
			{Name: "Quiet One", Value: 20_000, DaysSilent: 9, Stage: domain.StageDiscovery},
		},
	}

	out := FormatInsights(dc, pi, act)

	assert.Contains(t, out, "Stale Deal")
	assert.Contains(t, out, "Action overdue by 4 days")
	assert.Contains(t, out, "qualification")
	assert.Contains(t, out, "$150K")
	assert.Contains(t, out, "Quiet One")
	assert.Contains(t, out, "silent 9 days in discovery")
}

func TestFormatInsights_EmptyPipeline(t *testing.T) {
	out := FormatInsights(insight.DealContext{}, insight.PipelineInsights{}, insight.ActivitySummary{})

	assert.Contains(t, out, "No open deals.")
}
