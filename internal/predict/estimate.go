// Package predict derives forward-looking estimates for a deal from the
// full cohort of the owner's deals: time-to-close, win probability,
// historical patterns, similar-deal lookup, pipeline forecasts, and anomaly
// detection. Every operation is a pure function of (deal, cohort, cfg, now)
// and degrades gracefully when history is thin: missing history yields a
// low-confidence result, never an error.
package predict

import (
	"fmt"
	"math"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// DaysToCloseEstimate is the projected remaining time for a deal.
type DaysToCloseEstimate struct {
	EstimatedDays int
	Confidence    domain.Confidence
	Factors       []string
}

// PredictDaysToClose estimates remaining days until the deal closes, based
// on the cohort's closed-won cycle history.
func PredictDaysToClose(deal domain.Deal, cohort []domain.Deal, cfg Config, now time.Time) DaysToCloseEstimate {
	var cycles, values []float64
	for _, d := range cohort {
		if d.Stage == domain.StageClosedWon {
			cycles = append(cycles, float64(signal.CycleLengthDays(d)))
			values = append(values, d.Value)
		}
	}

	age := signal.DealAgeDays(deal, now)

	if len(cycles) == 0 {
		est := cfg.FallbackCycleDays - age
		if est < 0 {
			est = 0
		}
		return DaysToCloseEstimate{
			EstimatedDays: est,
			Confidence:    domain.ConfidenceLow,
			Factors:       []string{fmt.Sprintf("No closed-won history; using %d-day baseline", cfg.FallbackCycleDays)},
		}
	}

	avgCycle := mean(cycles)
	factors := []string{fmt.Sprintf("Based on %d closed-won deals averaging %.0f days", len(cycles), avgCycle)}

	// Larger deals take proportionally longer than the historical mean.
	est := avgCycle
	if meanValue := mean(values); meanValue > 0 {
		adj := 1 + 0.25*clamp((deal.Value-meanValue)/meanValue, -0.5, 1)
		est *= adj
		switch {
		case adj > 1.02:
			factors = append(factors, "Above-average deal size extends the estimate")
		case adj < 0.98:
			factors = append(factors, "Below-average deal size shortens the estimate")
		}
	}

	// Pipeline progress already made reduces what is left.
	progress := domain.StageProgress(deal.Stage)
	est *= 1 - progress
	if progress > 0 {
		factors = append(factors, fmt.Sprintf("%.0f%% of pipeline stages completed", progress*100))
	}

	// Recency nudges: a stale deal drifts out, a fresh one pulls in.
	quiet := signal.DaysSinceActivity(deal, now)
	switch {
	case quiet > cfg.StaleDays:
		est *= 1.25
		factors = append(factors, fmt.Sprintf("No activity in %d days pushes the estimate out", quiet))
	case quiet <= cfg.FreshDays:
		est *= 0.9
		factors = append(factors, "Recent activity pulls the estimate in")
	}

	return DaysToCloseEstimate{
		EstimatedDays: int(math.Max(0, math.Round(est))),
		Confidence:    confidenceFor(len(cycles), cfg),
		Factors:       factors,
	}
}

func confidenceFor(samples int, cfg Config) domain.Confidence {
	switch {
	case samples >= cfg.ConfidenceHighAt:
		return domain.ConfidenceHigh
	case samples >= cfg.ConfidenceMediumAt:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
