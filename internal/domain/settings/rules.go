package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hrstore/internal/domain/attendance"
	"hrstore/internal/domain/leave"
	"hrstore/internal/store"
)

// Provider turns stored settings documents into the policy values the
// attendance and leave packages consume. Missing or unreadable documents
// fall back to package defaults so policy lookups never block writes.
type Provider struct {
	Settings *Store
}

func NewProvider(s *Store) *Provider {
	return &Provider{Settings: s}
}

func (p *Provider) DayRules(ctx context.Context) attendance.DayRules {
	rules := attendance.DefaultDayRules()

	if setting, err := p.Settings.Get(ctx, CategoryWorkingHours); err == nil {
		if wh, err := setting.WorkingHours(); err == nil {
			if start, err := parseClock(wh.StartTime); err == nil {
				rules.StartMinute = start
			}
			if end, err := parseClock(wh.EndTime); err == nil {
				rules.EndMinute = end
			}
			rules.GraceMinutes = wh.GraceMinutes
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Warn("working hours lookup failed", "err", err)
	}

	if setting, err := p.Settings.Get(ctx, CategoryAttendanceRules); err == nil {
		if ar, err := setting.AttendanceRules(); err == nil {
			rules.HalfDayHours = ar.HalfDayHours
			rules.FullDayHours = ar.FullDayHours
			rules.OvertimeAfterHours = ar.OvertimeAfterHours
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Warn("attendance rules lookup failed", "err", err)
	}

	return rules
}

func (p *Provider) LeavePolicy(ctx context.Context) leave.Policy {
	policy := leave.Policy{ExcludeWeekends: true, ExcludeHolidays: true}

	if setting, err := p.Settings.Get(ctx, CategoryLeavePolicy); err == nil {
		if lp, err := setting.LeavePolicy(); err == nil {
			policy.ExcludeWeekends = lp.ExcludeWeekends
			policy.ExcludeHolidays = lp.ExcludeHolidays
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Warn("leave policy lookup failed", "err", err)
	}

	if setting, err := p.Settings.Get(ctx, CategoryHolidayCalendar); err == nil {
		if cal, err := setting.HolidayCalendar(); err == nil {
			for _, h := range cal.Holidays {
				policy.Holidays = append(policy.Holidays, h.Date)
			}
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Warn("holiday calendar lookup failed", "err", err)
	}

	return policy
}

// DefaultLeaveBalances exposes the configured starting balances for new
// employees, or nil when none are configured.
func (p *Provider) DefaultLeaveBalances(ctx context.Context) map[string]float64 {
	setting, err := p.Settings.Get(ctx, CategoryLeavePolicy)
	if err != nil {
		return nil
	}
	lp, err := setting.LeavePolicy()
	if err != nil {
		return nil
	}
	return lp.DefaultBalances
}

// parseClock converts "HH:MM" into minutes from midnight.
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("clock value %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
