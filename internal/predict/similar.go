package predict

import (
	"math"
	"sort"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// SimilarDeals is the closest historical matches for a deal, with the win
// rate and average cycle of that matched set (not the whole cohort).
type SimilarDeals struct {
	Similar        []domain.Deal
	WinRate        float64
	AvgDaysToClose float64
}

// valueBucket indexes a deal value into the configured similarity buckets.
func valueBucket(value float64, cfg Config) int {
	for i, bound := range cfg.ValueBucketBounds {
		if value < bound {
			return i
		}
	}
	return len(cfg.ValueBucketBounds)
}

// FindSimilarDeals ranks closed deals by distance to the target on two
// axes: value bucket (weighted 2x) and cycle length vs the deal's current
// age (capped contribution), returning the top matches.
func FindSimilarDeals(deal domain.Deal, cohort []domain.Deal, cfg Config, now time.Time) SimilarDeals {
	type candidate struct {
		deal domain.Deal
		dist float64
	}

	targetBucket := valueBucket(deal.Value, cfg)
	targetAge := float64(signal.DealAgeDays(deal, now))

	var pool []candidate
	for _, d := range cohort {
		if !d.Stage.IsClosed() || d.ID == deal.ID {
			continue
		}
		bucketDist := 2 * math.Abs(float64(valueBucket(d.Value, cfg)-targetBucket))
		cycleDist := math.Min(3, math.Abs(float64(signal.CycleLengthDays(d))-targetAge)/30)
		pool = append(pool, candidate{deal: d, dist: bucketDist + cycleDist})
	}

	if len(pool) == 0 {
		return SimilarDeals{Similar: []domain.Deal{}}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].dist != pool[j].dist {
			return pool[i].dist < pool[j].dist
		}
		if pool[i].deal.Name != pool[j].deal.Name {
			return pool[i].deal.Name < pool[j].deal.Name
		}
		return pool[i].deal.ID < pool[j].deal.ID
	})

	n := cfg.MaxSimilarDeals
	if n > len(pool) {
		n = len(pool)
	}

	out := SimilarDeals{Similar: make([]domain.Deal, 0, n)}
	var won int
	var cycles []float64
	for _, c := range pool[:n] {
		out.Similar = append(out.Similar, c.deal)
		cycles = append(cycles, float64(signal.CycleLengthDays(c.deal)))
		if c.deal.Stage == domain.StageClosedWon {
			won++
		}
	}
	out.WinRate = float64(won) / float64(n)
	out.AvgDaysToClose = mean(cycles)
	return out
}
