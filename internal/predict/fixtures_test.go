package predict

import (
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// openDeal builds an active deal created ageDays ago with its last activity
// quietDays ago.
func openDeal(name string, value float64, stage domain.Stage, ageDays, quietDays int) domain.Deal {
	return domain.Deal{
		ID:             name + "-id",
		Name:           name,
		Stage:          stage,
		Value:          value,
		Status:         domain.DealActive,
		RiskLevel:      domain.RiskLow,
		CreatedAt:      now.AddDate(0, 0, -ageDays),
		LastActivityAt: now.AddDate(0, 0, -quietDays),
	}
}

// closedDeal builds a closed deal whose cycle ran cycleDays.
func closedDeal(name string, value float64, stage domain.Stage, cycleDays int) domain.Deal {
	created := now.AddDate(0, 0, -cycleDays-30)
	return domain.Deal{
		ID:             name + "-id",
		Name:           name,
		Stage:          stage,
		Value:          value,
		Status:         domain.DealClosed,
		CreatedAt:      created,
		LastActivityAt: created.AddDate(0, 0, cycleDays),
	}
}
