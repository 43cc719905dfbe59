// Package signal provides the elapsed-time primitives shared by the risk
// and prediction engines. All day quantities are floored at zero so that
// clock skew or future timestamps never propagate as negative durations.
package signal

import (
	"math"
	"time"

	"github.com/avelinecarr/dealsense/internal/domain"
)

const hoursPerDay = 24

// DaysBetween returns whole elapsed days from earlier to later, never
// negative.
func DaysBetween(earlier, later time.Time) int {
	days := int(math.Floor(later.Sub(earlier).Hours() / hoursPerDay))
	if days < 0 {
		return 0
	}
	return days
}

// DaysSince returns whole days elapsed between t and now, never negative.
func DaysSince(t, now time.Time) int {
	return DaysBetween(t, now)
}

// DealAgeDays returns the deal's age in whole days at the given instant.
func DealAgeDays(d domain.Deal, now time.Time) int {
	return DaysSince(d.CreatedAt, now)
}

// DaysSinceActivity returns whole days since the deal's last activity.
func DaysSinceActivity(d domain.Deal, now time.Time) int {
	return DaysSince(d.LastActivityAt, now)
}

// CycleLengthDays returns the closed-deal cycle length: whole days between
// creation and the closing activity.
func CycleLengthDays(d domain.Deal) int {
	return DaysBetween(d.CreatedAt, d.LastActivityAt)
}

// LastActivityAt resolves a deal's most recent activity timestamp from its
// timeline. The scan does not assume any ordering of the slice. An empty
// timeline falls back to the deal's creation time.
func LastActivityAt(createdAt time.Time, timeline []domain.TimelineEvent) time.Time {
	last := createdAt
	for _, ev := range timeline {
		if ev.CreatedAt.After(last) {
			last = ev.CreatedAt
		}
	}
	return last
}
