package predict

import (
	"fmt"
	"math"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// AnomalyDeal is the minimal deal reference carried on an anomaly.
type AnomalyDeal struct {
	ID    string
	Name  string
	Stage domain.Stage
	Value float64
}

// Anomaly flags one way a deal deviates from cohort norms. A single deal
// may produce several entries.
type Anomaly struct {
	Deal     AnomalyDeal
	Reason   string
	Severity domain.Severity
}

// DetectAnomalies scans active deals for unusual age, prolonged silence,
// and outlier values relative to the cohort.
func DetectAnomalies(cohort []domain.Deal, cfg Config, now time.Time) []Anomaly {
	var closedCycles []float64
	var active []domain.Deal
	for _, d := range cohort {
		if d.Stage.IsClosed() {
			closedCycles = append(closedCycles, float64(signal.CycleLengthDays(d)))
		} else {
			active = append(active, d)
		}
	}

	p90 := float64(cfg.DefaultP90CycleDays)
	if len(closedCycles) > 0 {
		p90 = percentile(closedCycles, 90)
	}

	var activeValues []float64
	for _, d := range active {
		activeValues = append(activeValues, d.Value)
	}
	valueMean := mean(activeValues)
	valueSD := stddev(activeValues)

	var anomalies []Anomaly
	for _, d := range active {
		ref := AnomalyDeal{ID: d.ID, Name: d.Name, Stage: d.Stage, Value: d.Value}

		age := float64(signal.DealAgeDays(d, now))
		switch {
		case p90 > 0 && age > cfg.AgeCriticalMultiplier*p90:
			anomalies = append(anomalies, Anomaly{
				Deal:     ref,
				Reason:   fmt.Sprintf("Open for %.0f days, far beyond the typical %.0f-day cycle", age, p90),
				Severity: domain.SeverityHigh,
			})
		case p90 > 0 && age > cfg.AgeWarnMultiplier*p90:
			anomalies = append(anomalies, Anomaly{
				Deal:     ref,
				Reason:   fmt.Sprintf("Open for %.0f days, past the typical %.0f-day cycle", age, p90),
				Severity: domain.SeverityMedium,
			})
		}

		quiet := signal.DaysSinceActivity(d, now)
		switch {
		case quiet >= cfg.VeryStaleDays:
			anomalies = append(anomalies, Anomaly{
				Deal:     ref,
				Reason:   fmt.Sprintf("No activity in %d days", quiet),
				Severity: domain.SeverityHigh,
			})
		case quiet >= cfg.StaleDays:
			anomalies = append(anomalies, Anomaly{
				Deal:     ref,
				Reason:   fmt.Sprintf("No activity in %d days", quiet),
				Severity: domain.SeverityMedium,
			})
		}

		// Value outliers need at least two active deals for a stddev.
		if len(active) > 1 && valueSD > 0 && math.Abs(d.Value-valueMean) > 2*valueSD {
			anomalies = append(anomalies, Anomaly{
				Deal:     ref,
				Reason:   fmt.Sprintf("Value $%.0f is unusual for this pipeline (mean $%.0f)", d.Value, valueMean),
				Severity: domain.SeverityLow,
			})
		}
	}
	return anomalies
}
