package risk

import (
	"fmt"
	"math"

	"github.com/avelinecarr/dealsense/internal/domain"
)

// scoreTolerance absorbs float round-tripping through storage.
const scoreTolerance = 1e-9

// CheckIntegrity compares a deal's cached risk fields against freshly
// computed signals. A mismatch means the cache drifted from the
// source-of-truth formula; callers must recompute, not trust the cache.
func CheckIntegrity(stored domain.Deal, fresh Signals) error {
	if math.Abs(stored.RiskScore-fresh.RiskScore) > scoreTolerance {
		return &IntegrityError{
			DealID:  stored.ID,
			Message: fmt.Sprintf("cached risk score %.6f != recomputed %.6f", stored.RiskScore, fresh.RiskScore),
		}
	}
	if stored.RiskLevel != "" && stored.RiskLevel != fresh.RiskLevel {
		return &IntegrityError{
			DealID:  stored.ID,
			Message: fmt.Sprintf("cached risk level %q != recomputed %q", stored.RiskLevel, fresh.RiskLevel),
		}
	}
	// Closed deals keep their terminal status; only active/at_risk drift counts.
	if stored.Status != domain.DealClosed && stored.Status != fresh.Status {
		return &IntegrityError{
			DealID:  stored.ID,
			Message: fmt.Sprintf("cached status %q != recomputed %q", stored.Status, fresh.Status),
		}
	}
	return nil
}
