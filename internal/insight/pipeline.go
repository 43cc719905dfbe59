package insight

import (
	"math"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// PipelineInsights is the cohort-level health view.
type PipelineInsights struct {
	HealthScore          int
	Trend                domain.Trend
	BottleneckStages     []domain.Stage
	AvgDaysSinceActivity int
	BestPerformingStage  domain.Stage
}

// BuildPipelineInsights scores overall pipeline health and locates where
// deals pile up instead of flowing through.
func BuildPipelineInsights(deals []risk.ScoredDeal, now time.Time) PipelineInsights {
	var won, lost int
	var active, atRisk, overdue int
	var activityDays int
	stageCounts := make(map[domain.Stage]int)
	stageValues := make(map[domain.Stage]float64)
	var createdLastWeek, createdWeekBefore int

	for _, sd := range deals {
		age := signal.DaysSince(sd.Deal.CreatedAt, now)
		if age < 7 {
			createdLastWeek++
		} else if age < 14 {
			createdWeekBefore++
		}

		switch sd.Deal.Stage {
		case domain.StageClosedWon:
			won++
			continue
		case domain.StageClosedLost:
			lost++
			continue
		}

		active++
		stageCounts[sd.Deal.Stage]++
		stageValues[sd.Deal.Stage] += sd.Deal.Value
		activityDays += signal.DaysSince(sd.Signals.LastActivityAt, now)
		if sd.Signals.Status == domain.DealAtRisk {
			atRisk++
		}
		if sd.Signals.IsActionOverdue {
			overdue++
		}
	}

	// Health: 50 baseline + win-rate contribution - penalties scaled by
	// the at-risk and overdue fractions of the active pipeline.
	winRate := 0.5
	if won+lost > 0 {
		winRate = float64(won) / float64(won+lost)
	}
	var riskPenalty, overduePenalty float64
	if active > 0 {
		riskPenalty = 30 * float64(atRisk) / float64(active)
		overduePenalty = 20 * float64(overdue) / float64(active)
	}
	health := int(math.Round(math.Max(0, math.Min(100, 50+winRate*30-riskPenalty-overduePenalty))))

	trend := domain.TrendStable
	switch diff := createdLastWeek - createdWeekBefore; {
	case diff > 2:
		trend = domain.TrendUp
	case diff < -2:
		trend = domain.TrendDown
	}

	// A stage is a bottleneck when its active count exceeds the previous
	// stage's by more than 2: deals are piling up, not flowing through.
	var bottlenecks []domain.Stage
	for i := 1; i < len(domain.PipelineStages); i++ {
		prev := stageCounts[domain.PipelineStages[i-1]]
		cur := stageCounts[domain.PipelineStages[i]]
		if cur > prev+2 {
			bottlenecks = append(bottlenecks, domain.PipelineStages[i])
		}
	}

	var best domain.Stage
	var bestValue float64
	for _, s := range domain.PipelineStages {
		if v := stageValues[s]; v > bestValue {
			best, bestValue = s, v
		}
	}

	avgActivity := 0
	if active > 0 {
		avgActivity = activityDays / active
	}

	return PipelineInsights{
		HealthScore:          health,
		Trend:                trend,
		BottleneckStages:     bottlenecks,
		AvgDaysSinceActivity: avgActivity,
		BestPerformingStage:  best,
	}
}
