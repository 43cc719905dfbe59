package risk

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/signal"
)

type ReasonCode string

const (
	ReasonInactivity ReasonCode = "INACTIVITY"
	ReasonStageStall ReasonCode = "STAGE_STALL"
	ReasonHighValue  ReasonCode = "HIGH_VALUE_EXPOSURE"
	ReasonCompetitor ReasonCode = "COMPETITOR_MENTIONED"
)

// Reason is one weighted contribution to a deal's risk score.
type Reason struct {
	Code    ReasonCode
	Message string
	Weight  float64
}

// RecommendedAction is the concrete next step surfaced to the owner.
type RecommendedAction struct {
	Label   string
	Urgency domain.Urgency
}

// Signals is the enriched, derived view of a deal. It is recomputed fresh
// from the snapshot and timeline on every read and never persisted as
// authoritative.
type Signals struct {
	LastActivityAt    time.Time
	RiskScore         float64
	RiskLevel         domain.RiskLevel
	Status            domain.DealStatus
	NextAction        domain.NextAction
	Reasons           []Reason
	RecommendedAction *RecommendedAction
	RiskStartedAt     *time.Time
	RiskAgeDays       *int
	ActionDueAt       *time.Time
	ActionOverdueDays *int
	IsActionOverdue   bool
}

// factorResult is one factor's contribution plus the instant its condition
// began, used to approximate when the deal entered risk.
type factorResult struct {
	weight    float64
	reason    *Reason
	startedAt *time.Time
}

// CalculateDealSignals scores a deal from its snapshot and activity
// timeline. Pure and deterministic given now; the caller must reuse one now
// across a batch so cross-deal comparisons stay consistent.
func CalculateDealSignals(deal domain.Deal, timeline []domain.TimelineEvent, settings *domain.RiskSettings, cfg Config, now time.Time) (Signals, error) {
	if err := deal.Validate(); err != nil {
		return Signals{}, validationErrorf("%v", err)
	}
	eff := domain.DefaultRiskSettings()
	eff.InactivityThresholdDays = cfg.InactivityThresholdDays
	if settings != nil {
		if err := settings.Validate(); err != nil {
			return Signals{}, validationErrorf("%v", err)
		}
		eff = *settings
	}

	lastActivity := signal.LastActivityAt(deal.CreatedAt, timeline)
	out := Signals{
		LastActivityAt: lastActivity,
		NextAction:     domain.ActionWait,
		Status:         domain.DealActive,
	}

	inactivity := scoreInactivity(lastActivity, eff.InactivityThresholdDays, cfg, now)
	stall := scoreStageStall(deal, cfg, now)

	base := inactivity.weight + stall.weight
	var reasons []Reason
	for _, f := range []factorResult{inactivity, stall} {
		if f.reason != nil {
			reasons = append(reasons, *f.reason)
		}
	}

	// Value weighting amplifies time-based signals multiplicatively: the
	// same quiet period on a bigger deal carries more risk.
	score := base
	if boost := valueBoost(deal.Value, cfg); base > 0 && boost > 1 {
		score = base * boost
		reasons = append(reasons, Reason{
			Code:    ReasonHighValue,
			Message: fmt.Sprintf("High-value deal ($%.0f) showing warning signs", deal.Value),
			Weight:  score - base,
		})
	}

	if eff.EnableCompetitiveSignals {
		if r := scoreCompetitor(timeline, cfg); r != nil {
			score += r.Weight
			reasons = append(reasons, *r)
		}
	}

	score = clamp01(score)
	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].Weight > reasons[j].Weight
	})

	out.RiskScore = score
	out.RiskLevel = FormatRiskLevel(score, cfg)
	out.Reasons = reasons

	if out.RiskLevel != domain.RiskLow && len(reasons) > 0 {
		out.Status = domain.DealAtRisk
		applyRiskTiming(&out, []factorResult{inactivity, stall}, cfg, now)
		applyRecommendedAction(&out, lastActivity, eff.InactivityThresholdDays, cfg, now)
	}

	return out, nil
}

// scoreInactivity contributes when the deal has been quiet past the owner's
// threshold, weighted by how far past it is.
func scoreInactivity(lastActivity time.Time, thresholdDays int, cfg Config, now time.Time) factorResult {
	days := signal.DaysSince(lastActivity, now)
	if days <= thresholdDays {
		return factorResult{}
	}
	overshoot := float64(days) / float64(thresholdDays)
	w := math.Min(cfg.InactivityWeightCap, cfg.InactivityUnitWeight*overshoot)
	crossed := lastActivity.AddDate(0, 0, thresholdDays)
	return factorResult{
		weight: w,
		reason: &Reason{
			Code:    ReasonInactivity,
			Message: fmt.Sprintf("No activity in %d days", days),
			Weight:  w,
		},
		startedAt: &crossed,
	}
}

// scoreStageStall contributes when time in the current stage exceeds the
// stage's expected dwell time. Time in stage is approximated by deal age:
// per-stage entry timestamps are not tracked on every path, so the original
// approximation is preserved deliberately.
func scoreStageStall(deal domain.Deal, cfg Config, now time.Time) factorResult {
	if deal.Stage.IsClosed() {
		return factorResult{}
	}
	dwell, ok := cfg.StageDwellDays[deal.Stage]
	if !ok || dwell <= 0 {
		return factorResult{}
	}
	age := signal.DealAgeDays(deal, now)
	if age <= dwell {
		return factorResult{}
	}
	w := math.Min(cfg.StallWeightCap, cfg.StallUnitWeight*float64(age)/float64(dwell))
	crossed := deal.CreatedAt.AddDate(0, 0, dwell)
	return factorResult{
		weight: w,
		reason: &Reason{
			Code:    ReasonStageStall,
			Message: fmt.Sprintf("Stalled in %s stage for %d days", deal.Stage, age),
			Weight:  w,
		},
		startedAt: &crossed,
	}
}

// scoreCompetitor adds a fixed increment when the timeline records a
// competitor mention.
func scoreCompetitor(timeline []domain.TimelineEvent, cfg Config) *Reason {
	for _, ev := range timeline {
		m, ok := ev.Metadata.(domain.CompetitorMention)
		if !ok && ev.EventType != "competitor_mention" {
			continue
		}
		msg := "Competitor mentioned in recent activity"
		if ok && m.Competitor != "" {
			msg = fmt.Sprintf("Competitor mentioned: %s", m.Competitor)
		}
		return &Reason{
			Code:    ReasonCompetitor,
			Message: msg,
			Weight:  cfg.CompetitorIncrement,
		}
	}
	return nil
}

// valueBoost returns the multiplicative amplifier for a deal's value
// relative to the configured baseline, in [1, 1+ValueBoostCap].
func valueBoost(value float64, cfg Config) float64 {
	if cfg.ValueBaseline <= 0 {
		return 1
	}
	return 1 + cfg.ValueBoostCap*math.Min(1, value/cfg.ValueBaseline)
}

// applyRiskTiming sets RiskStartedAt to the earliest contributing
// threshold-crossing instant and derives the risk age from it.
func applyRiskTiming(out *Signals, factors []factorResult, cfg Config, now time.Time) {
	var started *time.Time
	for _, f := range factors {
		if f.startedAt == nil || f.weight == 0 {
			continue
		}
		if started == nil || f.startedAt.Before(*started) {
			started = f.startedAt
		}
	}
	if started == nil {
		// Only non-timed signals contributed; anchor risk onset at now.
		t := now
		started = &t
	}
	out.RiskStartedAt = started
	age := signal.DaysSince(*started, now)
	out.RiskAgeDays = &age

	due := started.AddDate(0, 0, cfg.ActionDueDays)
	out.ActionDueAt = &due
	if now.After(due) {
		out.IsActionOverdue = true
		overdue := signal.DaysSince(due, now)
		out.ActionOverdueDays = &overdue
	}
}

// applyRecommendedAction fills the decision table keyed by primary reason
// and escalation threshold.
func applyRecommendedAction(out *Signals, lastActivity time.Time, thresholdDays int, cfg Config, now time.Time) {
	primary := GetPrimaryRiskReason(out.Reasons)
	if primary == nil {
		return
	}
	quietDays := signal.DaysSince(lastActivity, now)

	switch primary.Code {
	case ReasonInactivity:
		if float64(quietDays) >= cfg.EscalateAfterMultiple*float64(thresholdDays) {
			out.NextAction = domain.ActionEscalate
			out.RecommendedAction = &RecommendedAction{Label: "Escalate internally", Urgency: domain.UrgencyHigh}
		} else {
			out.NextAction = domain.ActionFollowUpEmail
			out.RecommendedAction = &RecommendedAction{Label: "Send follow-up email", Urgency: domain.UrgencyMedium}
		}
	case ReasonStageStall:
		urgency := domain.UrgencyMedium
		if out.RiskLevel == domain.RiskHigh {
			urgency = domain.UrgencyHigh
		}
		out.NextAction = domain.ActionScheduleMeeting
		out.RecommendedAction = &RecommendedAction{Label: "Schedule a meeting", Urgency: urgency}
	default:
		// Value or competitive signals leading: re-engage directly.
		out.NextAction = domain.ActionFollowUpEmail
		out.RecommendedAction = &RecommendedAction{Label: "Send follow-up email", Urgency: domain.UrgencyMedium}
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
