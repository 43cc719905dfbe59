package predict

import (
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// WinProbability is a clamped 0-100 likelihood estimate with its direction
// of travel.
type WinProbability struct {
	Probability float64
	Trend       domain.Trend
	Factors     []string
}

// CalculateWinProbability estimates the deal's chance of closing won,
// anchored on the cohort's historical win rate and adjusted by stage
// progress, risk level, activity recency, and age relative to historical
// cycles.
func CalculateWinProbability(deal domain.Deal, cohort []domain.Deal, cfg Config, now time.Time) WinProbability {
	var won, closed int
	var closedCycles []float64
	for _, d := range cohort {
		if !d.Stage.IsClosed() {
			continue
		}
		closed++
		closedCycles = append(closedCycles, float64(signal.CycleLengthDays(d)))
		if d.Stage == domain.StageClosedWon {
			won++
		}
	}

	base := 0.5
	factors := []string{"No closed history; starting from a 50% base rate"}
	if closed > 0 {
		base = float64(won) / float64(closed)
		factors = []string{fmt.Sprintf("Historical win rate %.0f%% across %d closed deals", base*100, closed)}
	}
	p := base * 100

	if progress := domain.StageProgress(deal.Stage); progress > 0 {
		p += 20 * progress
		factors = append(factors, fmt.Sprintf("Deal advanced to %s stage", deal.Stage))
	}

	switch deal.RiskLevel {
	case domain.RiskHigh:
		p -= 25
		factors = append(factors, "High risk level weighs heavily against closing")
	case domain.RiskMedium:
		p -= 10
		factors = append(factors, "Elevated risk level reduces the estimate")
	case domain.RiskLow:
		p += 5
		factors = append(factors, "Healthy risk profile")
	}

	quiet := signal.DaysSinceActivity(deal, now)
	switch {
	case quiet > cfg.StaleDays:
		p -= 15
		factors = append(factors, fmt.Sprintf("No activity in %d days", quiet))
	case quiet <= cfg.FreshDays:
		p += 10
		factors = append(factors, "Fresh activity within the last few days")
	}

	if len(closedCycles) > 0 {
		p90 := percentile(closedCycles, 90)
		if age := float64(signal.DealAgeDays(deal, now)); p90 > 0 && age > p90 {
			p -= 10
			factors = append(factors, "Deal age exceeds 90th percentile of historical cycles; may indicate stall")
		}
	}

	p = clamp(p, 0, 100)

	trend := domain.TrendStable
	switch {
	case deal.Status == domain.DealAtRisk || deal.RiskLevel == domain.RiskHigh:
		trend = domain.TrendDown
	case quiet <= cfg.FreshDays && deal.RiskLevel == domain.RiskLow:
		trend = domain.TrendUp
	}

	return WinProbability{Probability: p, Trend: trend, Factors: factors}
}
