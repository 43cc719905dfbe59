// Package insight aggregates a user's full deal set into summaries for the
// dashboard and for the AI assistant's prompt context: stage/risk/status
// breakdowns, urgent items, pipeline health, bottlenecks, silent deals, and
// the plain-text blocks the assistant consumes. Aggregation here is pure;
// deal-level scoring lives in the risk package.
package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// GroupStat is a count plus summed value for one breakdown bucket.
type GroupStat struct {
	Count int
	Value float64
}

// UrgentDeal is one entry of the urgent list surfaced to the user.
type UrgentDeal struct {
	Name   string
	Value  float64
	Reason string
	Stage  domain.Stage
}

// DealContext is the cohort-wide breakdown consumed by the AI assistant and
// the dashboard.
type DealContext struct {
	ByStage               map[domain.Stage]GroupStat
	ByRisk                map[domain.RiskLevel]GroupStat
	ByStatus              map[domain.DealStatus]int
	Urgent                []UrgentDeal
	RecentActivityPattern string
}

// BuildDealContext groups the cohort by stage, risk, and status, surfaces
// overdue-action and high-risk deals as the urgent list (deduplicated,
// overdue first), and summarizes recent activity in one paragraph.
func BuildDealContext(deals []risk.ScoredDeal, now time.Time) DealContext {
	ctx := DealContext{
		ByStage:  make(map[domain.Stage]GroupStat),
		ByRisk:   make(map[domain.RiskLevel]GroupStat),
		ByStatus: make(map[domain.DealStatus]int),
	}

	var createdThisWeek, atRisk, overdue, active int
	for _, sd := range deals {
		stage := ctx.ByStage[sd.Deal.Stage]
		stage.Count++
		stage.Value += sd.Deal.Value
		ctx.ByStage[sd.Deal.Stage] = stage

		level := ctx.ByRisk[sd.Signals.RiskLevel]
		level.Count++
		level.Value += sd.Deal.Value
		ctx.ByRisk[sd.Signals.RiskLevel] = level

		ctx.ByStatus[statusOf(sd)]++

		if signal.DaysSince(sd.Deal.CreatedAt, now) < 7 {
			createdThisWeek++
		}
		if !sd.Deal.Stage.IsClosed() {
			active++
			if sd.Signals.Status == domain.DealAtRisk {
				atRisk++
			}
			if sd.Signals.IsActionOverdue {
				overdue++
			}
		}
	}

	ctx.Urgent = buildUrgentList(deals)
	ctx.RecentActivityPattern = fmt.Sprintf(
		"%d deals created in the last 7 days. Currently %d active deals, %d at risk, %d with overdue actions.",
		createdThisWeek, active, atRisk, overdue)
	return ctx
}

func statusOf(sd risk.ScoredDeal) domain.DealStatus {
	if sd.Deal.Stage.IsClosed() {
		return domain.DealClosed
	}
	return sd.Signals.Status
}

// buildUrgentList merges overdue-action deals with high-risk deals,
// deduplicated by ID with overdue entries leading, in canonical order.
func buildUrgentList(deals []risk.ScoredDeal) []UrgentDeal {
	sorted := make([]risk.ScoredDeal, len(deals))
	copy(sorted, deals)
	risk.CanonicalSort(sorted)

	var urgent []UrgentDeal
	seen := make(map[string]bool)
	appendDeal := func(sd risk.ScoredDeal, reason string) {
		if seen[sd.Deal.ID] {
			return
		}
		seen[sd.Deal.ID] = true
		urgent = append(urgent, UrgentDeal{
			Name:   sd.Deal.Name,
			Value:  sd.Deal.Value,
			Reason: reason,
			Stage:  sd.Deal.Stage,
		})
	}

	for _, sd := range sorted {
		if sd.Deal.Stage.IsClosed() || !sd.Signals.IsActionOverdue {
			continue
		}
		days := domain.IntFromPtrWithDefault(0, sd.Signals.ActionOverdueDays)
		appendDeal(sd, fmt.Sprintf("Action overdue by %d days", days))
	}
	for _, sd := range sorted {
		if sd.Deal.Stage.IsClosed() || sd.Signals.RiskLevel != domain.RiskHigh {
			continue
		}
		reason := "High risk"
		if primary := risk.GetPrimaryRiskReason(sd.Signals.Reasons); primary != nil {
			reason = primary.Message
		}
		appendDeal(sd, reason)
	}
	return urgent
}

// joinNonEmpty is a small formatting helper shared by the summary builders.
func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
