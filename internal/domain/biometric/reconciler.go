package biometric

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hrstore/internal/domain/attendance"
	"hrstore/internal/domain/employee"
	"hrstore/internal/store"
)

// Reconciler folds unprocessed device events into attendance day records.
// It runs on a ticker; a manual RunOnce drains the same queue, and both
// paths stay idempotent because MarkProcessed only flips an event once.
type Reconciler struct {
	Logs       *Store
	Employees  *employee.Store
	Attendance *attendance.Store
	Rules      func(context.Context) attendance.DayRules
	Interval   time.Duration
	BatchSize  int
}

func NewReconciler(logs *Store, employees *employee.Store, att *attendance.Store, interval time.Duration, batchSize int) *Reconciler {
	return &Reconciler{
		Logs:       logs,
		Employees:  employees,
		Attendance: att,
		Rules:      func(context.Context) attendance.DayRules { return attendance.DefaultDayRules() },
		Interval:   interval,
		BatchSize:  batchSize,
	}
}

func (r *Reconciler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.RunOnce(ctx); err != nil {
					slog.Warn("biometric reconcile run failed", "err", err)
				}
			}
		}
	}()
}

// RunOnce processes up to BatchSize pending events and reports how many
// were applied.
func (r *Reconciler) RunOnce(ctx context.Context) (int, error) {
	logs, err := r.Logs.ListUnprocessed(ctx, r.BatchSize)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, l := range logs {
		if err := r.processOne(ctx, l); err != nil {
			slog.Warn("biometric event skipped", "logId", l.ID, "biometricId", l.BiometricID, "err", err)
			continue
		}
		applied++
	}
	return applied, nil
}

func (r *Reconciler) processOne(ctx context.Context, l Log) error {
	emp, err := r.Employees.GetByBiometricID(ctx, l.BiometricID)
	if errors.Is(err, store.ErrNotFound) {
		// Unregistered device ID: park the event as processed-with-error so
		// it does not clog the queue forever.
		_, markErr := r.Logs.MarkProcessed(ctx, l.ID, "", "", "no employee registered for biometric id")
		return markErr
	}
	if err != nil {
		return err
	}

	day, err := r.Attendance.Open(ctx, emp.ID, l.Timestamp, "Office")
	if err != nil {
		return err
	}

	patch, ok := applyEvent(day, l)
	if ok {
		if _, err := r.Attendance.Update(ctx, day.ID, patch, r.Rules(ctx)); err != nil {
			return err
		}
	}

	done, err := r.Logs.MarkProcessed(ctx, l.ID, emp.ID, day.ID, "")
	if err != nil {
		return err
	}
	if !done {
		// Another worker got here first; the event is already applied.
		return nil
	}

	if err := r.Employees.TouchBiometricSync(ctx, emp.ID, l.Timestamp); err != nil {
		slog.Warn("biometric sync touch failed", "employeeId", emp.ID, "err", err)
	}
	return nil
}

// applyEvent maps one punch onto the day record. Re-applying an event the
// record already reflects yields ok=false, which keeps replays harmless.
func applyEvent(day attendance.Attendance, l Log) (attendance.Patch, bool) {
	check := &attendance.Check{
		Time:     l.Timestamp,
		Location: l.Device.Location,
		Source:   attendance.SourceBiometric,
	}

	switch l.LogType {
	case TypeCheckIn:
		if day.CheckIn != nil {
			return attendance.Patch{}, false
		}
		return attendance.Patch{CheckIn: check}, true

	case TypeCheckOut:
		if day.CheckOut != nil && !l.Timestamp.After(day.CheckOut.Time) {
			return attendance.Patch{}, false
		}
		return attendance.Patch{CheckOut: check}, true

	case TypeBreakIn:
		if openBreak(day.Breaks) >= 0 {
			return attendance.Patch{}, false
		}
		breaks := append(append([]attendance.Break{}, day.Breaks...),
			attendance.Break{Start: l.Timestamp})
		return attendance.Patch{Breaks: &breaks}, true

	case TypeBreakOut:
		idx := openBreak(day.Breaks)
		if idx < 0 || l.Timestamp.Before(day.Breaks[idx].Start) {
			return attendance.Patch{}, false
		}
		breaks := append([]attendance.Break{}, day.Breaks...)
		end := l.Timestamp
		breaks[idx].End = &end
		return attendance.Patch{Breaks: &breaks}, true
	}
	return attendance.Patch{}, false
}

func openBreak(breaks []attendance.Break) int {
	for i := len(breaks) - 1; i >= 0; i-- {
		if breaks[i].End == nil {
			return i
		}
	}
	return -1
}
