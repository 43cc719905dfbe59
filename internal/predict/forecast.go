package predict

import (
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// MonthForecast is one calendar month's slice of the pipeline forecast.
type MonthForecast struct {
	Month     string
	Value     float64
	BestCase  float64
	WorstCase float64
}

// Forecast is the expected/best/worst pipeline value over all active deals,
// with a simple 3-month even distribution.
type Forecast struct {
	Expected  float64
	BestCase  float64
	WorstCase float64
	Monthly   []MonthForecast
}

// ForecastPipelineValue sums probability-weighted values across active
// deals. Monthly always carries exactly three entries, even for an empty
// cohort.
func ForecastPipelineValue(cohort []domain.Deal, cfg Config, now time.Time) Forecast {
	var f Forecast
	for _, d := range cohort {
		if d.Stage.IsClosed() {
			continue
		}
		wp := CalculateWinProbability(d, cohort, cfg, now).Probability
		f.Expected += d.Value * wp / 100
		f.BestCase += d.Value * clamp((wp+cfg.BestCaseBoostPct)/100, 0, 1)
		f.WorstCase += d.Value * clamp((wp-cfg.WorstCaseCutPct)/100, 0, 1)
	}

	f.Monthly = make([]MonthForecast, 0, 3)
	for i := 1; i <= 3; i++ {
		month := now.AddDate(0, i, 0).Month().String()[:3]
		f.Monthly = append(f.Monthly, MonthForecast{
			Month:     month,
			Value:     f.Expected / 3,
			BestCase:  f.BestCase / 3,
			WorstCase: f.WorstCase / 3,
		})
	}
	return f
}
