package domain

import "fmt"

// RiskSettings holds per-owner overrides for the risk engine.
type RiskSettings struct {
	InactivityThresholdDays  int
	EnableCompetitiveSignals bool
}

// DefaultRiskSettings returns the settings applied when none are stored.
func DefaultRiskSettings() RiskSettings {
	return RiskSettings{
		InactivityThresholdDays:  7,
		EnableCompetitiveSignals: true,
	}
}

// Validate checks the settings are usable by the risk engine.
func (s *RiskSettings) Validate() error {
	if s.InactivityThresholdDays <= 0 {
		return fmt.Errorf("inactivity threshold must be > 0 days, got %d", s.InactivityThresholdDays)
	}
	return nil
}
