// Package schedule holds the pure program-resolution engine: rolling cycle
// position arithmetic, day-plan override merging and progress state
// derivation. Nothing here touches storage or the clock; callers inject
// loaded rows and an explicit "now".
package schedule

import (
	"errors"
	"time"
)

// ErrOutOfRange signals coordinates outside the template bounds. It marks a
// caller bug: ResolvePosition is the only sanctioned producer of
// coordinates and it clamps, so a resolver fed out-of-range input must fail
// fast instead of re-clamping.
var ErrOutOfRange = errors.New("week or day index outside template bounds")

// Position is a 1-based (week, day) coordinate within a template.
type Position struct {
	Week int `json:"week"`
	Day  int `json:"day"`
}

// Before reports whether p precedes q in lexicographic (week, day) order.
func (p Position) Before(q Position) bool {
	if p.Week != q.Week {
		return p.Week < q.Week
	}
	return p.Day < q.Day
}

// InRange reports whether p is a valid coordinate for the given template
// dimensions.
func InRange(p Position, cycleDays, weeksCount int) bool {
	return p.Week >= 1 && p.Week <= weeksCount && p.Day >= 1 && p.Day <= cycleDays
}

// ResolvePosition maps a moment in time onto the rolling cycle anchored at
// startAt. Day 1 of week 1 is always the start date regardless of weekday;
// a "now" before startAt is treated as day 1, and once the elapsed days
// exceed the template's span the player is pinned to the final day of the
// final week so a completed program never yields an out-of-range view.
//
// cycleDays and weeksCount must be positive: that is validated when the
// template is written, never here.
func ResolvePosition(startAt time.Time, cycleDays, weeksCount int, now time.Time) Position {
	elapsedDays := int(now.Sub(startAt).Hours()/24) + 1
	if elapsedDays < 1 {
		elapsedDays = 1
	}

	week := (elapsedDays-1)/cycleDays + 1
	if week > weeksCount {
		// Past the end of the program: pin to the last day of the last week.
		return Position{Week: weeksCount, Day: cycleDays}
	}

	day := (elapsedDays-1)%cycleDays + 1
	return Position{Week: week, Day: day}
}
