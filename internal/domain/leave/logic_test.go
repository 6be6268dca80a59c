package leave

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusCancelled},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusCancelled, StatusPending},
		{StatusPending, StatusPending},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}

func TestCountDaysSkipsWeekends(t *testing.T) {
	// Friday through Monday: two working days with weekends excluded.
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	days := CountDays(start, end, Policy{ExcludeWeekends: true})
	if days != 2 {
		t.Fatalf("expected 2 days, got %v", days)
	}

	days = CountDays(start, end, Policy{})
	if days != 4 {
		t.Fatalf("expected 4 days without weekend exclusion, got %v", days)
	}
}

func TestCountDaysSkipsHolidays(t *testing.T) {
	start := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	policy := Policy{
		ExcludeHolidays: true,
		Holidays:        []time.Time{time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)},
	}

	if days := CountDays(start, end, policy); days != 2 {
		t.Fatalf("expected 2 days, got %v", days)
	}
}

func TestCountDaysInvertedRange(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)

	if days := CountDays(start, end, Policy{}); days != 0 {
		t.Fatalf("expected 0 days for inverted range, got %v", days)
	}
}

func TestDaysMatch(t *testing.T) {
	if !DaysMatch(2.0, 2.005) {
		t.Fatal("expected values within tolerance to match")
	}
	if DaysMatch(2.0, 2.5) {
		t.Fatal("expected values outside tolerance to mismatch")
	}
}
