package leave

import (
	"context"
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

const leaveColumns = `
    id, employee_id::text, leave_type, start_date, end_date, number_of_days,
    reason, status, applied_on, COALESCE(approver_id::text, ''), decided_at,
    COALESCE(decision_comment, ''), documents, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeave(row rowScanner) (Leave, error) {
	var l Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.NumberOfDays,
		&l.Reason, &l.Status, &l.AppliedOn, &l.ApproverID, &l.DecidedAt,
		&l.DecisionComment, &l.Documents, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return Leave{}, store.MapError(err)
	}
	return l, nil
}

func (l Leave) validate(policy Policy) error {
	v := store.NewValidator()
	v.Required("employee", l.EmployeeID)
	v.Enum("leaveType", l.LeaveType, Types)
	v.Required("leaveType", l.LeaveType)
	v.Required("reason", l.Reason)
	if l.StartDate.IsZero() {
		v.Add("startDate", "is required")
	}
	if l.EndDate.IsZero() {
		v.Add("endDate", "is required")
	}
	v.DateOrder("startDate", l.StartDate, "endDate", l.EndDate)
	if err := v.Err(); err != nil {
		return err
	}

	computed := CountDays(l.StartDate, l.EndDate, policy)
	if computed <= 0 {
		return store.Invalid("numberOfDays", "range contains no working days")
	}
	if !DaysMatch(l.NumberOfDays, computed) {
		return store.Invalid("numberOfDays",
			fmt.Sprintf("must equal the %.1f working days in the range per policy", computed))
	}
	return nil
}

// Create files a new request. numberOfDays is recomputed against the policy
// and rejected when the caller-supplied value disagrees.
func (s *Store) Create(ctx context.Context, l Leave, policy Policy) (Leave, error) {
	l.Status = StatusPending
	if l.NumberOfDays == 0 {
		l.NumberOfDays = CountDays(l.StartDate, l.EndDate, policy)
	}
	if l.Documents == nil {
		l.Documents = []Document{}
	}
	if err := l.validate(policy); err != nil {
		return Leave{}, err
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO leaves (employee_id, leave_type, start_date, end_date, number_of_days, reason, status, documents)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id, applied_on, created_at, updated_at
  `, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.NumberOfDays, l.Reason, l.Status, l.Documents,
	).Scan(&l.ID, &l.AppliedOn, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return Leave{}, store.MapError(err)
	}
	return l, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Leave, error) {
	return scanLeave(s.DB.QueryRow(ctx, "SELECT"+leaveColumns+" FROM leaves WHERE id = $1", id))
}

// Transition moves a request through the status machine, stamping approver
// metadata. Undefined transitions are rejected.
func (s *Store) Transition(ctx context.Context, id, nextStatus, approverID, comment string) (Leave, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if !CanTransition(current.Status, nextStatus) {
		return Leave{}, store.Invalid("status",
			fmt.Sprintf("no transition from %s to %s", current.Status, nextStatus))
	}

	// The status guard in the WHERE clause keeps two concurrent approvers
	// from both winning.
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leaves
    SET status = $1, approver_id = $2, decided_at = now(), decision_comment = $3, updated_at = now()
    WHERE id = $4 AND status = $5
  `, nextStatus, nullIfEmpty(approverID), nullIfEmpty(comment), id, current.Status)
	if err != nil {
		return Leave{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return Leave{}, store.ErrConcurrencyConflict
	}
	return s.GetByID(ctx, id)
}

// ListForEmployee returns requests newest-first by start date.
func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Leave, error) {
	return s.list(ctx,
		"SELECT"+leaveColumns+" FROM leaves WHERE employee_id = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3",
		employeeID, limit, offset)
}

// ListByStatus returns requests with the given status, most recently applied
// first.
func (s *Store) ListByStatus(ctx context.Context, status string, limit, offset int) ([]Leave, error) {
	return s.list(ctx,
		"SELECT"+leaveColumns+" FROM leaves WHERE status = $1 ORDER BY applied_on DESC LIMIT $2 OFFSET $3",
		status, limit, offset)
}

// Overlapping finds requests of an employee whose inclusive range intersects
// [start, end], for double-booking checks.
func (s *Store) Overlapping(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error) {
	return s.list(ctx, `
    SELECT`+leaveColumns+`
    FROM leaves
    WHERE employee_id = $1 AND status IN ($2, $3) AND start_date <= $4 AND end_date >= $5
    ORDER BY start_date
  `, employeeID, StatusPending, StatusApproved, end, start)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, store.MapError(rows.Err())
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
