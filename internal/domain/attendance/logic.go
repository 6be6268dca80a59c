package attendance

import (
	"math"
	"time"
)

// Derive recomputes the derived fields of a day record: break time, worked
// hours, late/early flags with minute offsets, overtime, and status. Call it
// after any mutation of check-in, check-out or breaks.
func Derive(a *Attendance, rules DayRules) {
	a.TotalBreakHours = round2(totalBreakMinutes(a.Breaks) / 60)

	a.IsLate = false
	a.LateByMinutes = 0
	a.LeftEarly = false
	a.EarlyByMinutes = 0
	a.TotalWorkHours = 0
	a.OvertimeHours = 0

	if a.CheckIn == nil {
		if a.Status == "" || a.Status == StatusPresent || a.Status == StatusHalfDay || a.Status == StatusLate {
			a.Status = StatusAbsent
		}
		return
	}

	dayStart := a.Date.Add(time.Duration(rules.StartMinute) * time.Minute)
	lateBy := a.CheckIn.Time.Sub(dayStart).Minutes()
	if lateBy > float64(rules.GraceMinutes) {
		a.IsLate = true
		a.LateByMinutes = int(math.Round(lateBy))
	}

	if a.CheckOut != nil {
		dayEnd := a.Date.Add(time.Duration(rules.EndMinute) * time.Minute)
		earlyBy := dayEnd.Sub(a.CheckOut.Time).Minutes()
		if earlyBy > 0 {
			a.LeftEarly = true
			a.EarlyByMinutes = int(math.Round(earlyBy))
		}

		worked := a.CheckOut.Time.Sub(a.CheckIn.Time).Minutes() - totalBreakMinutes(a.Breaks)
		if worked < 0 {
			worked = 0
		}
		a.TotalWorkHours = round2(worked / 60)
		if a.TotalWorkHours > rules.OvertimeAfterHours {
			a.OvertimeHours = round2(a.TotalWorkHours - rules.OvertimeAfterHours)
		}
	}

	switch {
	case a.Status == StatusOnLeave || a.Status == StatusHoliday || a.Status == StatusWeekend:
		// explicit day classifications win over derived presence
	case a.CheckOut == nil:
		if a.IsLate {
			a.Status = StatusLate
		} else {
			a.Status = StatusPresent
		}
	case a.TotalWorkHours >= rules.FullDayHours:
		if a.IsLate {
			a.Status = StatusLate
		} else {
			a.Status = StatusPresent
		}
	case a.TotalWorkHours >= rules.HalfDayHours:
		a.Status = StatusHalfDay
	default:
		a.Status = StatusAbsent
	}
}

func totalBreakMinutes(breaks []Break) float64 {
	var total float64
	for _, b := range breaks {
		if b.End != nil {
			total += b.End.Sub(b.Start).Minutes()
		}
	}
	return total
}

// CloseBreaks fills DurationMinutes on every finished break interval.
func CloseBreaks(breaks []Break) []Break {
	for i := range breaks {
		if breaks[i].End != nil {
			breaks[i].DurationMinutes = round2(breaks[i].End.Sub(breaks[i].Start).Minutes())
		}
	}
	return breaks
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
