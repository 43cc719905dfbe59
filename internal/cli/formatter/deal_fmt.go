package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/avelinecarr/dealsense/internal/signal"
	"github.com/charmbracelet/lipgloss"
)

// FormatDealList renders a styled deal list inside a bordered box.
func FormatDealList(deals []*domain.Deal, now time.Time) string {
	headers := []string{"ID", "NAME", "STAGE", "VALUE", "STATUS", "LAST ACTIVITY"}
	rows := make([][]string, 0, len(deals))

	for _, d := range deals {
		activity := Dim("--")
		if !d.LastActivityAt.IsZero() {
			activity = ActivityStyled(signal.DaysSince(d.LastActivityAt, now))
		}

		rows = append(rows, []string{
			TruncID(d.ID),
			Bold(d.Name),
			StageBadge(d.Stage),
			StyleFg.Render(Money(d.Value)),
			StatusPill(d.Status),
			activity,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Deals", table)
}

// FormatDealInspect renders a deal detail card: metadata on the left,
// recent timeline on the right.
func FormatDealInspect(sd risk.ScoredDeal, timeline []domain.TimelineEvent, now time.Time) string {
	left := buildDealMetaPanel(sd, now)
	right := buildTimelinePanel(timeline, now)

	spacing := "    "
	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, spacing, right)

	return RenderBox("", combined)
}

// buildDealMetaPanel creates the left panel with deal metadata and fresh
// signals.
func buildDealMetaPanel(sd risk.ScoredDeal, now time.Time) string {
	d := sd.Deal
	var b strings.Builder

	b.WriteString(StyleBold.Render(d.Name) + "\n")
	b.WriteString(StageBadge(d.Stage) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS"), StatusPill(sd.Signals.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID    "), TruncID(d.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("VALUE "), StyleFg.Render(Money(d.Value))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RISK  "), RiskBadge(sd.Signals.RiskLevel)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("SCORE "), RenderScoreBar(sd.Signals.RiskScore, 12)))

	activityDays := signal.DaysSince(sd.Signals.LastActivityAt, now)
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ACTIVE"), ActivityStyled(activityDays)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("OPENED"), StyleFg.Render(HumanDate(d.CreatedAt, now))))

	if d.ArchivedAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ARCHVD"), HumanTimestamp(*d.ArchivedAt, now)))
	}

	if ra := sd.Signals.RecommendedAction; ra != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			StyleDim.Render("ACTION"),
			StyleFg.Render(ra.Label),
			Dim("("+string(ra.Urgency)+" urgency)"),
		))
	}

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

// buildTimelinePanel creates the right panel with the most recent events.
func buildTimelinePanel(timeline []domain.TimelineEvent, now time.Time) string {
	if len(timeline) == 0 {
		return StyleDim.Render("No activity yet")
	}

	const maxEvents = 10

	var b strings.Builder
	b.WriteString(StyleHeader.Render("TIMELINE") + "\n")
	b.WriteString(StyleDim.Render(strings.Repeat("─", 8)) + "\n")

	shown := timeline
	if len(shown) > maxEvents {
		shown = shown[:maxEvents]
	}

	for _, ev := range shown {
		b.WriteString(fmt.Sprintf("%s %s%s\n",
			StyleBlue.Render(ev.EventType),
			Dim(HumanTimestamp(ev.CreatedAt, now)),
			eventDetail(ev),
		))
	}
	if len(timeline) > maxEvents {
		b.WriteString(Dim(fmt.Sprintf("… and %d earlier", len(timeline)-maxEvents)) + "\n")
	}

	return b.String()
}

// eventDetail renders the interesting part of an event's metadata inline.
func eventDetail(ev domain.TimelineEvent) string {
	switch m := ev.Metadata.(type) {
	case domain.CompetitorMention:
		if m.Competitor != "" {
			return " " + StyleRed.Render(m.Competitor)
		}
	case domain.StageChange:
		return " " + Dim(fmt.Sprintf("%s → %s", m.From, m.To))
	case domain.Note:
		text := m.Text
		if len(text) > 40 {
			text = text[:39] + "…"
		}
		if text != "" {
			return " " + Dim("“"+text+"”")
		}
	}
	return ""
}
