package risk

import "github.com/avelinecarr/dealsense/internal/domain"

// Config carries every tunable constant of the scoring formula. Callers and
// tests pass it explicitly; there are no hidden package-level knobs.
type Config struct {
	// InactivityThresholdDays is the default quiet period before the
	// inactivity signal fires. Per-owner RiskSettings override it.
	InactivityThresholdDays int

	// EscalateAfterMultiple escalates the recommended action once the quiet
	// period exceeds this multiple of the threshold.
	EscalateAfterMultiple float64

	// LowMax and MediumMax are the score-band cutpoints used by
	// FormatRiskLevel. score < LowMax => low, < MediumMax => medium,
	// else high.
	LowMax    float64
	MediumMax float64

	// InactivityUnitWeight is the contribution per unit of threshold
	// overshoot, capped at InactivityWeightCap.
	InactivityUnitWeight float64
	InactivityWeightCap  float64

	// StallUnitWeight is the contribution per unit of expected stage dwell
	// time, capped at StallWeightCap.
	StallUnitWeight float64
	StallWeightCap  float64

	// ValueBaseline is the deal value at which the full ValueBoostCap
	// multiplier applies. A $500k deal going quiet is worse than a $5k one.
	ValueBaseline float64
	ValueBoostCap float64

	// CompetitorIncrement is the fixed score added when a competitor
	// mention appears in the timeline and competitive signals are enabled.
	CompetitorIncrement float64

	// ActionDueDays is how many days after risk onset the recommended
	// action falls due.
	ActionDueDays int

	// StageDwellDays is the expected maximum dwell time per pipeline stage.
	// Closed stages never stall.
	StageDwellDays map[domain.Stage]int
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		InactivityThresholdDays: 7,
		EscalateAfterMultiple:   2,
		LowMax:                  0.40,
		MediumMax:               0.70,
		InactivityUnitWeight:    0.25,
		InactivityWeightCap:     0.50,
		StallUnitWeight:         0.20,
		StallWeightCap:          0.40,
		ValueBaseline:           500_000,
		ValueBoostCap:           0.50,
		CompetitorIncrement:     0.15,
		ActionDueDays:           2,
		StageDwellDays: map[domain.Stage]int{
			domain.StageDiscovery:     14,
			domain.StageQualification: 21,
			domain.StageProposal:      30,
			domain.StageNegotiation:   45,
		},
	}
}
