package leave

import (
	"math"
	"time"
)

// transitions is the full status machine. Approved leave may still be
// cancelled; rejected and cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCancelled},
	StatusRejected:  {},
	StatusCancelled: {},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CountDays returns the inclusive day count of [start, end], skipping
// weekends and holidays according to policy.
func CountDays(start, end time.Time, policy Policy) float64 {
	if end.Before(start) {
		return 0
	}
	holidays := make(map[time.Time]bool, len(policy.Holidays))
	for _, h := range policy.Holidays {
		holidays[dateOnly(h)] = true
	}

	var days float64
	for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
		if policy.ExcludeWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		if policy.ExcludeHolidays && holidays[d] {
			continue
		}
		days++
	}
	return days
}

// DaysMatch reports whether a caller-supplied day count agrees with the
// policy-computed one.
func DaysMatch(supplied, computed float64) bool {
	return math.Abs(supplied-computed) <= 0.01
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
