package predict

import (
	"fmt"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// Insight is one observed pattern across the cohort's history.
type Insight struct {
	Type        string
	Description string
	Metric      *float64
	Impact      domain.Impact
}

// PatternReport bundles the cohort's insights with actionable
// recommendations.
type PatternReport struct {
	Insights        []Insight
	Recommendations []string
}

func metricPtr(v float64) *float64 { return &v }

// IdentifyDealPatterns mines the cohort's closed history for win-rate,
// cycle-length, deal-size, and risk patterns, plus currently stale active
// deals.
func IdentifyDealPatterns(cohort []domain.Deal, cfg Config, now time.Time) PatternReport {
	var won, lost []domain.Deal
	var staleActive int
	for _, d := range cohort {
		switch {
		case d.Stage == domain.StageClosedWon:
			won = append(won, d)
		case d.Stage == domain.StageClosedLost:
			lost = append(lost, d)
		default:
			if signal.DaysSinceActivity(d, now) > cfg.StaleActiveDays {
				staleActive++
			}
		}
	}

	if len(won)+len(lost) == 0 {
		return PatternReport{
			Insights: []Insight{{
				Type:        "insufficient_data",
				Description: "Not enough closed deals yet to identify patterns",
				Impact:      domain.ImpactNeutral,
			}},
			Recommendations: []string{"Keep logging deal activity; patterns unlock once deals start closing"},
		}
	}

	var report PatternReport

	winRate := float64(len(won)) / float64(len(won)+len(lost))
	impact := domain.ImpactNegative
	if winRate >= 0.5 {
		impact = domain.ImpactPositive
	}
	report.Insights = append(report.Insights, Insight{
		Type:        "win_rate",
		Description: fmt.Sprintf("Overall win rate is %.0f%% (%d won, %d lost)", winRate*100, len(won), len(lost)),
		Metric:      metricPtr(winRate * 100),
		Impact:      impact,
	})

	wonCycle := avgCycle(won)
	lostCycle := avgCycle(lost)
	if len(won) > 0 && len(lost) > 0 {
		report.Insights = append(report.Insights, Insight{
			Type:        "cycle_length",
			Description: fmt.Sprintf("Won deals close in %.0f days on average; lost deals run %.0f days", wonCycle, lostCycle),
			Metric:      metricPtr(wonCycle),
			Impact:      domain.ImpactNeutral,
		})
		if lostCycle > wonCycle*1.5 {
			report.Insights = append(report.Insights, Insight{
				Type:        "slow_losses",
				Description: "Lost deals drag on much longer than won ones before dying",
				Impact:      domain.ImpactNegative,
			})
			report.Recommendations = append(report.Recommendations,
				"Disqualify stalled deals earlier instead of letting them age out")
		}
	}

	if len(won) > 0 && len(lost) > 0 {
		wonValue := avgValue(won)
		lostValue := avgValue(lost)
		impact := domain.ImpactNeutral
		desc := fmt.Sprintf("Average won deal is $%.0f vs $%.0f for lost", wonValue, lostValue)
		if wonValue > lostValue {
			impact = domain.ImpactPositive
		}
		report.Insights = append(report.Insights, Insight{
			Type:        "deal_size",
			Description: desc,
			Metric:      metricPtr(wonValue),
			Impact:      impact,
		})
	}

	if len(lost) > 0 {
		var highRiskLost int
		for _, d := range lost {
			if d.RiskLevel == domain.RiskHigh {
				highRiskLost++
			}
		}
		frac := float64(highRiskLost) / float64(len(lost))
		if frac > 0.5 {
			report.Insights = append(report.Insights, Insight{
				Type:        "risk_before_loss",
				Description: fmt.Sprintf("%.0f%% of lost deals were high-risk before they died", frac*100),
				Metric:      metricPtr(frac * 100),
				Impact:      domain.ImpactNegative,
			})
			report.Recommendations = append(report.Recommendations,
				"Intervene on high-risk deals early; most losses showed warning signs first")
		}
	}

	if staleActive > 0 {
		report.Insights = append(report.Insights, Insight{
			Type:        "stale_active",
			Description: fmt.Sprintf("%d active deals have been quiet for over %d days", staleActive, cfg.StaleActiveDays),
			Metric:      metricPtr(float64(staleActive)),
			Impact:      domain.ImpactNegative,
		})
		report.Recommendations = append(report.Recommendations,
			"Re-engage quiet deals before they go cold")
	}

	if len(report.Recommendations) == 0 {
		report.Recommendations = append(report.Recommendations,
			"Pipeline patterns look healthy; keep current cadence")
	}

	return report
}

func avgCycle(deals []domain.Deal) float64 {
	var cycles []float64
	for _, d := range deals {
		cycles = append(cycles, float64(signal.CycleLengthDays(d)))
	}
	return mean(cycles)
}

func avgValue(deals []domain.Deal) float64 {
	var values []float64
	for _, d := range deals {
		values = append(values, d.Value)
	}
	return mean(values)
}
