package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/store"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const attendanceColumns = `
    id, employee_id::text, date, check_in, check_out, breaks,
    total_work_hours, total_break_hours, work_type, status,
    is_late, late_by_minutes, left_early, early_by_minutes,
    overtime_hours, overtime_approved, COALESCE(approved_by_id::text, ''),
    created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (Attendance, error) {
	var a Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Breaks,
		&a.TotalWorkHours, &a.TotalBreakHours, &a.WorkType, &a.Status,
		&a.IsLate, &a.LateByMinutes, &a.LeftEarly, &a.EarlyByMinutes,
		&a.OvertimeHours, &a.OvertimeApproved, &a.ApprovedByID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return Attendance{}, store.MapError(err)
	}
	return a, nil
}

func (a Attendance) validate() error {
	v := store.NewValidator()
	v.Required("employee", a.EmployeeID)
	if a.Date.IsZero() {
		v.Add("date", "is required")
	}
	v.Enum("status", a.Status, Statuses)
	v.Enum("workType", a.WorkType, WorkTypes)
	if a.CheckIn != nil {
		v.Enum("checkIn.source", a.CheckIn.Source, Sources)
	}
	if a.CheckOut != nil {
		v.Enum("checkOut.source", a.CheckOut.Source, Sources)
		if a.CheckIn != nil && a.CheckOut.Time.Before(a.CheckIn.Time) {
			v.Add("checkOut.time", "must not be before checkIn.time")
		}
	}
	for i, b := range a.Breaks {
		if b.End != nil && b.End.Before(b.Start) {
			v.Add(fmt.Sprintf("breaks[%d].end", i), "must not be before start")
		}
	}
	v.NonNegative("overtimeHours", a.OvertimeHours)
	return v.Err()
}

// Create inserts the day record. The (employee_id, date) unique index makes
// concurrent first-event-of-the-day races safe: one insert wins, the other
// returns ErrDuplicateKey.
func (s *Store) Create(ctx context.Context, a Attendance) (Attendance, error) {
	a.Date = DateOnly(a.Date)
	if a.Status == "" {
		a.Status = StatusAbsent
	}
	a.Breaks = CloseBreaks(a.Breaks)
	if a.Breaks == nil {
		a.Breaks = []Break{}
	}
	if err := a.validate(); err != nil {
		return Attendance{}, err
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (
      employee_id, date, check_in, check_out, breaks, total_work_hours,
      total_break_hours, work_type, status, is_late, late_by_minutes,
      left_early, early_by_minutes, overtime_hours, overtime_approved, approved_by_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING id, created_at, updated_at
  `,
		a.EmployeeID, a.Date, a.CheckIn, a.CheckOut, a.Breaks, a.TotalWorkHours,
		a.TotalBreakHours, a.WorkType, a.Status, a.IsLate, a.LateByMinutes,
		a.LeftEarly, a.EarlyByMinutes, a.OvertimeHours, a.OvertimeApproved,
		nullIfEmpty(a.ApprovedByID),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Attendance{}, store.MapError(err)
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Attendance, error) {
	return scanAttendance(s.DB.QueryRow(ctx, "SELECT"+attendanceColumns+" FROM attendance WHERE id = $1", id))
}

func (s *Store) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error) {
	return scanAttendance(s.DB.QueryRow(ctx,
		"SELECT"+attendanceColumns+" FROM attendance WHERE employee_id = $1 AND date = $2",
		employeeID, DateOnly(date)))
}

func (s *Store) ListForDate(ctx context.Context, date time.Time, status string) ([]Attendance, error) {
	query := "SELECT" + attendanceColumns + " FROM attendance WHERE date = $1"
	args := []any{DateOnly(date)}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY employee_id"
	return s.list(ctx, query, args...)
}

// ListForEmployee returns the employee's records in non-increasing date
// order, backed by the (employee_id, date DESC) index.
func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Attendance, error) {
	return s.list(ctx,
		"SELECT"+attendanceColumns+" FROM attendance WHERE employee_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3",
		employeeID, limit, offset)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Attendance, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, store.MapError(rows.Err())
}

func (s *Store) Update(ctx context.Context, id string, patch Patch, rules DayRules) (Attendance, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Attendance{}, err
	}

	next := current
	if patch.CheckIn != nil {
		next.CheckIn = patch.CheckIn
	}
	if patch.CheckOut != nil {
		next.CheckOut = patch.CheckOut
	}
	if patch.Breaks != nil {
		next.Breaks = CloseBreaks(*patch.Breaks)
	}
	if patch.WorkType != nil {
		next.WorkType = *patch.WorkType
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.OvertimeApproved != nil {
		next.OvertimeApproved = *patch.OvertimeApproved
	}
	if patch.ApprovedByID != nil {
		next.ApprovedByID = *patch.ApprovedByID
	}
	Derive(&next, rules)
	if err := next.validate(); err != nil {
		return Attendance{}, err
	}

	return s.save(ctx, next, patch.ExpectedUpdatedAt)
}

func (s *Store) save(ctx context.Context, a Attendance, expected *time.Time) (Attendance, error) {
	query := `
    UPDATE attendance
    SET check_in = $1, check_out = $2, breaks = $3, total_work_hours = $4,
        total_break_hours = $5, work_type = $6, status = $7, is_late = $8,
        late_by_minutes = $9, left_early = $10, early_by_minutes = $11,
        overtime_hours = $12, overtime_approved = $13, approved_by_id = $14,
        updated_at = now()
    WHERE id = $15`
	args := []any{
		a.CheckIn, a.CheckOut, a.Breaks, a.TotalWorkHours, a.TotalBreakHours,
		a.WorkType, a.Status, a.IsLate, a.LateByMinutes, a.LeftEarly,
		a.EarlyByMinutes, a.OvertimeHours, a.OvertimeApproved,
		nullIfEmpty(a.ApprovedByID), a.ID,
	}
	if expected != nil {
		query += " AND updated_at = $16"
		args = append(args, *expected)
	}

	cmd, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return Attendance{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		if expected != nil {
			return Attendance{}, store.ErrConcurrencyConflict
		}
		return Attendance{}, store.ErrNotFound
	}
	return s.GetByID(ctx, a.ID)
}

// Open returns the day record for (employee, date), creating an empty one on
// first use. A concurrent creator winning the insert race is absorbed by
// re-reading after ErrDuplicateKey.
func (s *Store) Open(ctx context.Context, employeeID string, date time.Time, workType string) (Attendance, error) {
	existing, err := s.GetByEmployeeAndDate(ctx, employeeID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Attendance{}, err
	}

	created, err := s.Create(ctx, Attendance{
		EmployeeID: employeeID,
		Date:       DateOnly(date),
		WorkType:   workType,
		Status:     StatusAbsent,
	})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, store.ErrDuplicateKey) {
		return s.GetByEmployeeAndDate(ctx, employeeID, date)
	}
	return Attendance{}, err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
