package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
	"github.com/avelinecarr/dealsense/internal/signal"
)

// maxSilentDeals caps the silent-deal list returned to consumers.
const maxSilentDeals = 10

// SilentDeal is an active deal that has gone quiet.
type SilentDeal struct {
	Name       string
	Value      float64
	DaysSilent int
	Stage      domain.Stage
}

// ActivitySummary covers the trailing week of pipeline motion.
type ActivitySummary struct {
	NewDealsCount int
	SilentDeals   []SilentDeal
	SummaryLines  []string
}

// BuildRecentActivitySummary counts deals created in the trailing 7 days
// and lists active deals silent for 7+ days, most-silent first, capped at
// ten.
func BuildRecentActivitySummary(deals []risk.ScoredDeal, now time.Time) ActivitySummary {
	var out ActivitySummary
	for _, sd := range deals {
		if signal.DaysSince(sd.Deal.CreatedAt, now) < 7 {
			out.NewDealsCount++
		}
		if sd.Deal.Stage.IsClosed() {
			continue
		}
		quiet := signal.DaysSince(sd.Signals.LastActivityAt, now)
		if quiet >= 7 {
			out.SilentDeals = append(out.SilentDeals, SilentDeal{
				Name:       sd.Deal.Name,
				Value:      sd.Deal.Value,
				DaysSilent: quiet,
				Stage:      sd.Deal.Stage,
			})
		}
	}

	sort.SliceStable(out.SilentDeals, func(i, j int) bool {
		if out.SilentDeals[i].DaysSilent != out.SilentDeals[j].DaysSilent {
			return out.SilentDeals[i].DaysSilent > out.SilentDeals[j].DaysSilent
		}
		return out.SilentDeals[i].Name < out.SilentDeals[j].Name
	})
	if len(out.SilentDeals) > maxSilentDeals {
		out.SilentDeals = out.SilentDeals[:maxSilentDeals]
	}

	out.SummaryLines = append(out.SummaryLines,
		fmt.Sprintf("%d new deals in the last 7 days", out.NewDealsCount))
	if n := len(out.SilentDeals); n > 0 {
		out.SummaryLines = append(out.SummaryLines,
			fmt.Sprintf("%d active deals have gone silent for a week or more", n))
	} else {
		out.SummaryLines = append(out.SummaryLines, "No active deals have gone silent")
	}
	return out
}
