package insight

import (
	"fmt"
	"strings"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/predict"
	"github.com/avelinecarr/dealsense/internal/risk"
)

// Iteration orders for the breakdown maps. Map iteration is randomized, and
// the assistant prompt must be byte-stable for identical inputs.
var (
	formatStages = []domain.Stage{
		domain.StageDiscovery,
		domain.StageQualification,
		domain.StageProposal,
		domain.StageNegotiation,
		domain.StageClosedWon,
		domain.StageClosedLost,
	}
	formatLevels   = []domain.RiskLevel{domain.RiskHigh, domain.RiskMedium, domain.RiskLow}
	formatStatuses = []domain.DealStatus{domain.DealActive, domain.DealAtRisk, domain.DealClosed}
)

// FormatContextForAI renders the cohort context as labeled plain-text
// blocks for the assistant prompt.
func FormatContextForAI(ctx DealContext, pipeline PipelineInsights) string {
	var b strings.Builder

	b.WriteString("## Pipeline by Stage\n")
	wrote := false
	for _, s := range formatStages {
		stat, ok := ctx.ByStage[s]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %d deals, $%.0f total\n", s, stat.Count, stat.Value)
		wrote = true
	}
	if !wrote {
		b.WriteString("- No deals\n")
	}

	b.WriteString("\n## Risk Breakdown\n")
	wrote = false
	for _, l := range formatLevels {
		stat, ok := ctx.ByRisk[l]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s risk: %d deals, $%.0f total\n", l, stat.Count, stat.Value)
		wrote = true
	}
	if !wrote {
		b.WriteString("- N/A\n")
	}

	b.WriteString("\n## Status\n")
	for _, st := range formatStatuses {
		if n, ok := ctx.ByStatus[st]; ok {
			fmt.Fprintf(&b, "- %s: %d\n", st, n)
		}
	}

	if len(ctx.Urgent) > 0 {
		b.WriteString("\n## Urgent Deals\n")
		for _, u := range ctx.Urgent {
			fmt.Fprintf(&b, "- %s ($%.0f, %s): %s\n", u.Name, u.Value, u.Stage, u.Reason)
		}
	}

	b.WriteString("\n## Pipeline Health\n")
	fmt.Fprintf(&b, "- Health score: %d/100 (trend: %s)\n", pipeline.HealthScore, pipeline.Trend)
	fmt.Fprintf(&b, "- Average days since activity: %d\n", pipeline.AvgDaysSinceActivity)
	if len(pipeline.BottleneckStages) > 0 {
		fmt.Fprintf(&b, "- Bottleneck stages: %s\n", joinStages(pipeline.BottleneckStages))
	}
	if pipeline.BestPerformingStage != "" {
		fmt.Fprintf(&b, "- Best performing stage: %s\n", pipeline.BestPerformingStage)
	}

	b.WriteString("\n## Recent Activity\n")
	if ctx.RecentActivityPattern != "" {
		b.WriteString(ctx.RecentActivityPattern)
		b.WriteString("\n")
	} else {
		b.WriteString("N/A\n")
	}

	return b.String()
}

// FormatPredictionsForAI renders the forecast, pattern report, and anomaly
// list for the assistant prompt.
func FormatPredictionsForAI(fc predict.Forecast, report predict.PatternReport, anomalies []predict.Anomaly) string {
	var b strings.Builder

	b.WriteString("## Pipeline Forecast\n")
	fmt.Fprintf(&b, "- Expected: $%.0f (best case $%.0f, worst case $%.0f)\n",
		fc.Expected, fc.BestCase, fc.WorstCase)
	for _, m := range fc.Monthly {
		fmt.Fprintf(&b, "- %s: $%.0f\n", m.Month, m.Value)
	}

	b.WriteString("\n## Patterns\n")
	if len(report.Insights) == 0 {
		b.WriteString("- N/A\n")
	}
	for _, ins := range report.Insights {
		if ins.Metric != nil {
			fmt.Fprintf(&b, "- [%s] %s (%.1f)\n", ins.Impact, ins.Description, *ins.Metric)
		} else {
			fmt.Fprintf(&b, "- [%s] %s\n", ins.Impact, ins.Description)
		}
	}
	if len(report.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n")
		for _, r := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	b.WriteString("\n## Anomalies\n")
	if len(anomalies) == 0 {
		b.WriteString("- None detected\n")
	}
	for _, a := range anomalies {
		fmt.Fprintf(&b, "- [%s] %s ($%.0f, %s): %s\n",
			a.Severity, a.Deal.Name, a.Deal.Value, a.Deal.Stage, a.Reason)
	}

	return b.String()
}

// FormatDealDetailForAI renders one deal's full enriched picture for the
// assistant prompt.
func FormatDealDetailForAI(sd risk.ScoredDeal, est predict.DaysToCloseEstimate, wp predict.WinProbability, sim predict.SimilarDeals) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Deal: %s\n", sd.Deal.Name)
	fmt.Fprintf(&b, "- Stage: %s\n", sd.Deal.Stage)
	fmt.Fprintf(&b, "- Value: $%.0f\n", sd.Deal.Value)
	fmt.Fprintf(&b, "- Status: %s\n", sd.Signals.Status)
	fmt.Fprintf(&b, "- Risk: %s (score %.2f)\n", sd.Signals.RiskLevel, sd.Signals.RiskScore)
	for _, r := range sd.Signals.Reasons {
		fmt.Fprintf(&b, "- Risk reason: %s\n", r.Message)
	}
	if sd.Signals.RecommendedAction != nil {
		fmt.Fprintf(&b, "- Recommended action: %s (urgency %s)\n",
			sd.Signals.RecommendedAction.Label, sd.Signals.RecommendedAction.Urgency)
	}
	if sd.Signals.IsActionOverdue {
		days := domain.IntFromPtrWithDefault(0, sd.Signals.ActionOverdueDays)
		fmt.Fprintf(&b, "- Action overdue by %d days\n", days)
	}
	if sd.Signals.RiskAgeDays != nil {
		fmt.Fprintf(&b, "- At risk for %d days\n", *sd.Signals.RiskAgeDays)
	}

	b.WriteString("\n## Predictions\n")
	fmt.Fprintf(&b, "- Estimated days to close: %d (confidence %s)\n", est.EstimatedDays, est.Confidence)
	fmt.Fprintf(&b, "- Win probability: %.0f%% (trend %s)\n", wp.Probability, wp.Trend)
	for _, f := range append(append([]string{}, est.Factors...), wp.Factors...) {
		fmt.Fprintf(&b, "- Factor: %s\n", f)
	}

	b.WriteString("\n## Similar Closed Deals\n")
	if len(sim.Similar) == 0 {
		b.WriteString("- N/A\n")
	} else {
		for _, s := range sim.Similar {
			fmt.Fprintf(&b, "- %s ($%.0f, %s)\n", s.Name, s.Value, s.Stage)
		}
		fmt.Fprintf(&b, "- Win rate among similar: %.0f%%, avg %.0f days to close\n",
			sim.WinRate*100, sim.AvgDaysToClose)
	}

	return b.String()
}

func joinStages(stages []domain.Stage) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
