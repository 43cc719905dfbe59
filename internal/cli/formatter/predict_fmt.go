package formatter

import (
	"fmt"
	"strings"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/predict"
)

// FormatDealPrediction renders the per-deal forward view: days to close,
// win probability, and the similar-deal evidence behind both.
func FormatDealPrediction(deal domain.Deal, est predict.DaysToCloseEstimate, wp predict.WinProbability, sim predict.SimilarDeals) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(deal.Name))
	b.WriteString("  " + StageBadge(deal.Stage))
	b.WriteString("  " + StyleFg.Render(Money(deal.Value)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		Dim("Close in"),
		Bold(fmt.Sprintf("~%d days", est.EstimatedDays)),
		confidenceBadge(est.Confidence),
	))
	for _, f := range est.Factors {
		b.WriteString("  " + Dim(f) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		Dim("Win prob"),
		RenderProgress(wp.Probability/100, 12),
		trendArrow(wp.Trend),
	))
	for _, f := range wp.Factors {
		b.WriteString("  " + Dim(f) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Header("Similar closed deals"))
	b.WriteString("\n")
	if len(sim.Similar) == 0 {
		b.WriteString(Dim("No closed history to compare against.") + "\n")
	} else {
		for _, d := range sim.Similar {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				StageBadge(d.Stage),
				StyleFg.Render(d.Name),
				Dim(Money(d.Value)),
			))
		}
		b.WriteString(fmt.Sprintf("  %s\n",
			Dim(fmt.Sprintf("win rate %.0f%%, avg cycle %.0f days", sim.WinRate*100, sim.AvgDaysToClose)),
		))
	}

	return RenderBox("Prediction", b.String())
}

// FormatForecast renders the pipeline value forecast with its monthly
// spread.
func FormatForecast(f predict.Forecast) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Expected "), Bold(Money(f.Expected))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Best case"), StyleGreen.Render(Money(f.BestCase))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Worst    "), StyleRed.Render(Money(f.WorstCase))))

	b.WriteString("\n")
	headers := []string{"MONTH", "EXPECTED", "BEST", "WORST"}
	rows := make([][]string, 0, len(f.Monthly))
	for _, m := range f.Monthly {
		rows = append(rows, []string{
			StyleFg.Render(m.Month),
			Bold(Money(m.Value)),
			StyleGreen.Render(Money(m.BestCase)),
			StyleRed.Render(Money(m.WorstCase)),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Forecast", b.String())
}

// FormatPatterns renders the cohort pattern report.
func FormatPatterns(report predict.PatternReport) string {
	var b strings.Builder

	if len(report.Insights) == 0 {
		b.WriteString(Dim("Not enough history to identify patterns.") + "\n")
	}
	for _, ins := range report.Insights {
		marker := StyleDim.Render("•")
		switch ins.Impact {
		case domain.ImpactPositive:
			marker = StyleGreen.Render("▲")
		case domain.ImpactNegative:
			marker = StyleRed.Render("▼")
		}
		line := fmt.Sprintf("%s %s", marker, StyleFg.Render(ins.Description))
		if ins.Metric != nil {
			line += " " + Dim(fmt.Sprintf("(%.1f)", *ins.Metric))
		}
		b.WriteString(line + "\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Recommendations"))
		b.WriteString("\n")
		for _, r := range report.Recommendations {
			b.WriteString("  " + StyleYellow.Render("▸") + " " + StyleFg.Render(r) + "\n")
		}
	}

	return RenderBox("Patterns", b.String())
}

// FormatAnomalies renders detected anomalies grouped by severity color.
func FormatAnomalies(anomalies []predict.Anomaly) string {
	var b strings.Builder

	if len(anomalies) == 0 {
		b.WriteString(Dim("No anomalies detected.") + "\n")
	}
	for _, a := range anomalies {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			severityBadge(a.Severity),
			Bold(a.Deal.Name),
			Dim(Money(a.Deal.Value)),
		))
		b.WriteString("  " + StyleFg.Render(a.Reason) + "\n")
	}

	return RenderBox("Anomalies", b.String())
}

func confidenceBadge(c domain.Confidence) string {
	switch c {
	case domain.ConfidenceHigh:
		return StyleGreen.Render("(high confidence)")
	case domain.ConfidenceMedium:
		return StyleYellow.Render("(medium confidence)")
	default:
		return StyleDim.Render("(low confidence)")
	}
}

func trendArrow(t domain.Trend) string {
	switch t {
	case domain.TrendUp:
		return StyleGreen.Render("↑")
	case domain.TrendDown:
		return StyleRed.Render("↓")
	default:
		return StyleDim.Render("→")
	}
}

func severityBadge(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return StyleRed.Render("● HIGH")
	case domain.SeverityMedium:
		return StyleYellow.Render("● MEDIUM")
	default:
		return StyleDim.Render("● LOW")
	}
}
