package predict

// Config carries the prediction engine's constants. Like the risk config,
// it is passed explicitly so tests and callers can pin every knob.
type Config struct {
	// FallbackCycleDays is the assumed sales cycle when no closed-won
	// history exists.
	FallbackCycleDays int

	// FreshDays / StaleDays / VeryStaleDays bucket activity recency.
	FreshDays     int
	StaleDays     int
	VeryStaleDays int

	// StaleActiveDays flags active deals quiet this long in pattern
	// analysis.
	StaleActiveDays int

	// DefaultP90CycleDays stands in for the 90th-percentile closed cycle
	// when there is no history.
	DefaultP90CycleDays int

	// AgeWarnMultiplier / AgeCriticalMultiplier scale the p90 cycle into
	// anomaly thresholds.
	AgeWarnMultiplier     float64
	AgeCriticalMultiplier float64

	// BestCaseBoostPct / WorstCaseCutPct shift win probability for the
	// forecast envelope.
	BestCaseBoostPct float64
	WorstCaseCutPct  float64

	// ConfidenceMediumAt / ConfidenceHighAt are the sample counts at which
	// estimate confidence escalates.
	ConfidenceMediumAt int
	ConfidenceHighAt   int

	// ValueBucketBounds split deal values into similarity buckets:
	// under each bound, then everything above the last.
	ValueBucketBounds []float64

	// MaxSimilarDeals bounds FindSimilarDeals output.
	MaxSimilarDeals int
}

// DefaultConfig returns the production prediction constants.
func DefaultConfig() Config {
	return Config{
		FallbackCycleDays:     45,
		FreshDays:             5,
		StaleDays:             21,
		VeryStaleDays:         35,
		StaleActiveDays:       14,
		DefaultP90CycleDays:   60,
		AgeWarnMultiplier:     1.2,
		AgeCriticalMultiplier: 1.5,
		BestCaseBoostPct:      20,
		WorstCaseCutPct:       25,
		ConfidenceMediumAt:    3,
		ConfidenceHighAt:      10,
		ValueBucketBounds:     []float64{10_000, 50_000, 200_000},
		MaxSimilarDeals:       5,
	}
}
