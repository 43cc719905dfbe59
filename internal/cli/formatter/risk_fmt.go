package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelinecarr/dealsense/internal/risk"
)

const riskScoreBarWidth = 16

// FormatRiskReport renders the full signals view for one deal: score,
// level, weighted reasons, recommended action, and the risk clock.
func FormatRiskReport(sd risk.ScoredDeal, now time.Time) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(sd.Deal.Name))
	b.WriteString("  " + StageBadge(sd.Deal.Stage))
	b.WriteString("  " + StyleFg.Render(Money(sd.Deal.Value)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		Dim("Risk"),
		RiskBadge(sd.Signals.RiskLevel),
		RenderScoreBar(sd.Signals.RiskScore, riskScoreBarWidth),
	))

	if len(sd.Signals.Reasons) == 0 {
		b.WriteString(Dim("No risk factors detected.") + "\n")
	} else {
		b.WriteString(Header("Why"))
		b.WriteString("\n")
		for _, r := range sd.Signals.Reasons {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleYellow.Render("▸"),
				StyleFg.Render(r.Message),
				Dim(fmt.Sprintf("(+%.2f)", r.Weight)),
			))
		}
	}

	if ra := sd.Signals.RecommendedAction; ra != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
			Dim("Next:"),
			Bold(ra.Label),
			Dim("urgency"),
			UrgencyBadge(ra.Urgency),
		))
	}

	if sd.Signals.RiskStartedAt != nil {
		b.WriteString("\n")
		age := 0
		if sd.Signals.RiskAgeDays != nil {
			age = *sd.Signals.RiskAgeDays
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			Dim("At risk since"),
			StyleFg.Render(HumanDate(*sd.Signals.RiskStartedAt, now)),
			Dim(fmt.Sprintf("(%s)", DaysAgo(age))),
		))

		if due := sd.Signals.ActionDueAt; due != nil {
			if sd.Signals.IsActionOverdue {
				overdue := 0
				if sd.Signals.ActionOverdueDays != nil {
					overdue = *sd.Signals.ActionOverdueDays
				}
				b.WriteString(StyleRed.Render(fmt.Sprintf("Action overdue by %d days", overdue)) + "\n")
			} else {
				b.WriteString(fmt.Sprintf("%s %s\n", Dim("Action due"), StyleFg.Render(HumanDate(*due, now))))
			}
		}
	}

	return RenderBox("Risk", b.String())
}
