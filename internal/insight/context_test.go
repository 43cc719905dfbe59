package insight

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/risk"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// scored builds a ScoredDeal with explicit signals, bypassing the scoring
// engine so aggregation behavior is tested in isolation.
func scored(name string, value float64, stage domain.Stage, ageDays int, sig risk.Signals) risk.ScoredDeal {
	created := now.AddDate(0, 0, -ageDays)
	if sig.LastActivityAt.IsZero() {
		sig.LastActivityAt = created
	}
	if sig.Status == "" {
		sig.Status = domain.DealActive
	}
	if sig.RiskLevel == "" {
		sig.RiskLevel = domain.RiskLow
	}
	return risk.ScoredDeal{
		Deal: domain.Deal{
			ID:        uuid.NewString(),
			Name:      name,
			Stage:     stage,
			Value:     value,
			CreatedAt: created,
			UpdatedAt: created,
		},
		Signals: sig,
	}
}

func intPtr(v int) *int { return &v }

func TestBuildDealContextGroups(t *testing.T) {
	deals := []risk.ScoredDeal{
		scored("Acme", 10_000, domain.StageDiscovery, 2, risk.Signals{}),
		scored("Globex", 50_000, domain.StageDiscovery, 30, risk.Signals{
			Status:    domain.DealAtRisk,
			RiskLevel: domain.RiskHigh,
			RiskScore: 0.8,
		}),
		scored("Initech", 200_000, domain.StageProposal, 10, risk.Signals{
			RiskLevel: domain.RiskMedium,
			Status:    domain.DealAtRisk,
			RiskScore: 0.5,
		}),
		scored("Hooli", 75_000, domain.StageClosedWon, 90, risk.Signals{}),
	}

	ctx := BuildDealContext(deals, now)

	assert.Equal(t, GroupStat{Count: 2, Value: 60_000}, ctx.ByStage[domain.StageDiscovery])
	assert.Equal(t, GroupStat{Count: 1, Value: 200_000}, ctx.ByStage[domain.StageProposal])
	assert.Equal(t, 1, ctx.ByRisk[domain.RiskHigh].Count)
	assert.Equal(t, 1, ctx.ByStatus[domain.DealActive])
	assert.Equal(t, 2, ctx.ByStatus[domain.DealAtRisk])
	assert.Equal(t, 1, ctx.ByStatus[domain.DealClosed])
	assert.Contains(t, ctx.RecentActivityPattern, "1 deals created in the last 7 days")
	assert.Contains(t, ctx.RecentActivityPattern, "3 active deals")
	assert.Contains(t, ctx.RecentActivityPattern, "2 at risk")
}

func TestBuildDealContextUrgentOrdering(t *testing.T) {
	overdue := scored("Overdue Co", 20_000, domain.StageProposal, 40, risk.Signals{
		Status:            domain.DealAtRisk,
		RiskLevel:         domain.RiskHigh,
		RiskScore:         0.9,
		IsActionOverdue:   true,
		ActionOverdueDays: intPtr(6),
		Reasons: []risk.Reason{
			{Code: risk.ReasonInactivity, Message: "No activity for 20 days", Weight: 0.5},
		},
	})
	highOnly := scored("Risky Ltd", 90_000, domain.StageNegotiation, 50, risk.Signals{
		Status:    domain.DealAtRisk,
		RiskLevel: domain.RiskHigh,
		RiskScore: 0.95,
		Reasons: []risk.Reason{
			{Code: risk.ReasonStageStall, Message: "Stuck in negotiation", Weight: 0.4},
		},
	})
	calm := scored("Calm Inc", 5_000, domain.StageDiscovery, 1, risk.Signals{})

	ctx := BuildDealContext([]risk.ScoredDeal{calm, highOnly, overdue}, now)

	require.Len(t, ctx.Urgent, 2)
	assert.Equal(t, "Overdue Co", ctx.Urgent[0].Name)
	assert.Equal(t, "Action overdue by 6 days", ctx.Urgent[0].Reason)
	assert.Equal(t, "Risky Ltd", ctx.Urgent[1].Name)
	assert.Equal(t, "Stuck in negotiation", ctx.Urgent[1].Reason)
}

func TestBuildDealContextDeduplicatesUrgent(t *testing.T) {
	both := scored("Double Trouble", 20_000, domain.StageProposal, 40, risk.Signals{
		Status:            domain.DealAtRisk,
		RiskLevel:         domain.RiskHigh,
		RiskScore:         0.9,
		IsActionOverdue:   true,
		ActionOverdueDays: intPtr(3),
	})

	ctx := BuildDealContext([]risk.ScoredDeal{both}, now)

	require.Len(t, ctx.Urgent, 1)
	assert.Contains(t, ctx.Urgent[0].Reason, "overdue")
}

func TestBuildDealContextEmpty(t *testing.T) {
	ctx := BuildDealContext(nil, now)

	assert.Empty(t, ctx.ByStage)
	assert.Empty(t, ctx.Urgent)
	assert.Contains(t, ctx.RecentActivityPattern, "0 deals created")
}
