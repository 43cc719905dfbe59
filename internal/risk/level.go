package risk

import (
	"strings"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// FormatRiskLevel maps a score in [0,1] to its categorical band. This is the
// single source of truth for band classification; no other code may
// re-derive the cutpoints.
func FormatRiskLevel(score float64, cfg Config) domain.RiskLevel {
	switch {
	case score < cfg.LowMax:
		return domain.RiskLow
	case score < cfg.MediumMax:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// LevelPriority returns a sort priority for a risk level (lower = more
// urgent).
func LevelPriority(l domain.RiskLevel) int {
	switch l {
	case domain.RiskHigh:
		return 0
	case domain.RiskMedium:
		return 1
	default:
		return 2
	}
}

// GetPrimaryRiskReason returns the highest-weighted reason, or nil when the
// deal carries no risk signals.
func GetPrimaryRiskReason(reasons []Reason) *Reason {
	if len(reasons) == 0 {
		return nil
	}
	return &reasons[0]
}

// ShouldAlert reports whether a signals transition warrants a "deal at risk"
// notification: the deal just became at_risk with a high (or, for legacy
// records, "critical") level.
func ShouldAlert(prevStatus domain.DealStatus, s Signals) bool {
	if s.Status != domain.DealAtRisk || prevStatus == domain.DealAtRisk {
		return false
	}
	return s.RiskLevel == domain.RiskHigh || strings.EqualFold(string(s.RiskLevel), "critical")
}
