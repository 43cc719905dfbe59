package formatter

import (
	"fmt"
	"strings"

	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/charmbracelet/lipgloss"
)

// FormatActionQueue renders the urgent/important/safe buckets. Bucket order
// within each section is the canonical ordering produced upstream and is
// preserved verbatim.
func FormatActionQueue(urgent, important, safe []risk.ScoredDeal) string {
	var b strings.Builder

	writeBucket(&b, "Urgent", StyleRed, urgent)
	b.WriteString("\n")
	writeBucket(&b, "Important", StyleYellow, important)
	b.WriteString("\n")
	writeBucket(&b, "Safe", StyleGreen, safe)

	b.WriteString("\n")
	summary := fmt.Sprintf("%s, %s, %s",
		StyleRed.Render(fmt.Sprintf("%d urgent", len(urgent))),
		StyleYellow.Render(fmt.Sprintf("%d important", len(important))),
		StyleGreen.Render(fmt.Sprintf("%d safe", len(safe))),
	)
	b.WriteString(summary + "\n")

	return RenderBox("Action Queue", b.String())
}

func writeBucket(b *strings.Builder, title string, style lipgloss.Style, deals []risk.ScoredDeal) {
	b.WriteString(style.Render(strings.ToUpper(title)) + Dim(fmt.Sprintf(" (%d)", len(deals))) + "\n")

	if len(deals) == 0 {
		b.WriteString("  " + Dim("none") + "\n")
		return
	}

	for _, sd := range deals {
		line := fmt.Sprintf("  %s %s  %s",
			Bold(sd.Deal.Name),
			Dim(Money(sd.Deal.Value)),
			RiskBadge(sd.Signals.RiskLevel),
		)
		b.WriteString(line + "\n")

		if primary := risk.GetPrimaryRiskReason(sd.Signals.Reasons); primary != nil {
			b.WriteString("    " + Dim(primary.Message) + "\n")
		}
		if sd.Signals.IsActionOverdue && sd.Signals.ActionOverdueDays != nil {
			b.WriteString("    " + StyleRed.Render(fmt.Sprintf("overdue by %d days", *sd.Signals.ActionOverdueDays)) + "\n")
		} else if ra := sd.Signals.RecommendedAction; ra != nil {
			b.WriteString("    " + Dim(ra.Label) + "\n")
		}
	}
}
