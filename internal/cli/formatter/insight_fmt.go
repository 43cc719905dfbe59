package formatter

import (
	"fmt"
	"strings"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/insight"
)

// FormatInsights renders the cohort-level dashboard: pipeline health,
// stage breakdown, urgent deals, and recent-activity highlights.
func FormatInsights(dc insight.DealContext, pi insight.PipelineInsights, act insight.ActivitySummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		Dim("Health"),
		RenderProgress(float64(pi.HealthScore)/100, 14),
		trendArrow(pi.Trend),
	))
	b.WriteString(fmt.Sprintf("%s  %s\n",
		Dim("Activity"),
		StyleFg.Render(fmt.Sprintf("avg %d days since last touch", pi.AvgDaysSinceActivity)),
	))
	if pi.BestPerformingStage != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Best stage"), StageBadge(pi.BestPerformingStage)))
	}
	if len(pi.BottleneckStages) > 0 {
		names := make([]string, 0, len(pi.BottleneckStages))
		for _, s := range pi.BottleneckStages {
			names = append(names, string(s))
		}
		b.WriteString(fmt.Sprintf("%s  %s\n",
			Dim("Bottleneck"),
			StyleYellow.Render(strings.Join(names, ", ")),
		))
	}

	b.WriteString("\n")
	b.WriteString(Header("Pipeline"))
	b.WriteString("\n")
	headers := []string{"STAGE", "DEALS", "VALUE"}
	var rows [][]string
	for _, stage := range domain.PipelineStages {
		stat, ok := dc.ByStage[stage]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			StageBadge(stage),
			StyleFg.Render(fmt.Sprintf("%d", stat.Count)),
			Bold(Money(stat.Value)),
		})
	}
	if len(rows) == 0 {
		b.WriteString(Dim("No open deals.") + "\n")
	} else {
		b.WriteString(RenderTable(headers, rows))
	}

	if len(dc.Urgent) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Needs attention"))
		b.WriteString("\n")
		for _, u := range dc.Urgent {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleRed.Render("!"),
				Bold(u.Name),
				Dim(Money(u.Value)),
			))
			b.WriteString("    " + Dim(u.Reason) + "\n")
		}
	}

	if len(act.SummaryLines) > 0 {
		b.WriteString("\n")
		for _, line := range act.SummaryLines {
			b.WriteString(Dim(line) + "\n")
		}
	}
	for _, sd := range act.SilentDeals {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StyleYellow.Render("~"),
			StyleFg.Render(sd.Name),
			Dim(fmt.Sprintf("silent %d days in %s", sd.DaysSilent, sd.Stage)),
		))
	}

	return RenderBox("Insights", b.String())
}
