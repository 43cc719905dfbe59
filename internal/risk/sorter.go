package risk

import (
	"sort"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// ScoredDeal pairs a deal with its freshly computed signals, the unit every
// action-queue and dashboard consumer sorts on.
type ScoredDeal struct {
	Deal    domain.Deal
	Signals Signals
}

// CanonicalSort orders scored deals by the deterministic canonical rules:
// 1. Overdue actions first
// 2. Days overdue: descending
// 3. Risk score: descending
// 4. Deal name: lexical ascending
// 5. Deal ID: lexical ascending
// Every consumer building urgency buckets must reproduce exactly this order.
func CanonicalSort(deals []ScoredDeal) {
	sort.SliceStable(deals, func(i, j int) bool {
		a, b := deals[i], deals[j]

		if a.Signals.IsActionOverdue != b.Signals.IsActionOverdue {
			return a.Signals.IsActionOverdue
		}

		overdueA := domain.IntFromPtrWithDefault(0, a.Signals.ActionOverdueDays)
		overdueB := domain.IntFromPtrWithDefault(0, b.Signals.ActionOverdueDays)
		if overdueA != overdueB {
			return overdueA > overdueB
		}

		if a.Signals.RiskScore != b.Signals.RiskScore {
			return a.Signals.RiskScore > b.Signals.RiskScore
		}

		if a.Deal.Name != b.Deal.Name {
			return a.Deal.Name < b.Deal.Name
		}
		return a.Deal.ID < b.Deal.ID
	})
}
