package domain

import (
	"fmt"
	"math"
	"time"
)

// Deal is a sales opportunity record. The risk fields (RiskScore, RiskLevel,
// Status, LastActivityAt) are a cached enrichment; the risk engine is the
// source of truth and callers must recompute rather than trust stale values.
type Deal struct {
	ID             string
	Name           string
	Stage          Stage
	Value          float64
	Status         DealStatus
	RiskScore      float64
	RiskLevel      RiskLevel
	LastActivityAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ArchivedAt     *time.Time
}

// Validate checks the fields the scoring and prediction engines depend on.
func (d *Deal) Validate() error {
	if d.Value < 0 {
		return fmt.Errorf("deal %q: value must be >= 0, got %v", d.Name, d.Value)
	}
	if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
		return fmt.Errorf("deal %q: value must be finite, got %v", d.Name, d.Value)
	}
	if d.CreatedAt.IsZero() {
		return fmt.Errorf("deal %q: created_at is required", d.Name)
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating UUIDs.
func (d *Deal) DisplayID() string {
	if len(d.ID) >= 8 {
		return d.ID[:8]
	}
	return d.ID
}
