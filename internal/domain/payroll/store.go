package payroll

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/store"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const salaryColumns = `
    id, employee_id::text, month, year, earnings, deductions, attendance_summary,
    gross_salary, total_deductions, net_salary, payment_status, paid_at,
    COALESCE(payment_ref, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalary(row rowScanner) (Salary, error) {
	var s Salary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Year, &s.Earnings, &s.Deductions, &s.Summary,
		&s.GrossSalary, &s.TotalDeductions, &s.NetSalary, &s.PaymentStatus, &s.PaidAt,
		&s.PaymentRef, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return Salary{}, store.MapError(err)
	}
	return s, nil
}

// CreateSalary inserts one record per (employee, month, year); the unique
// index rejects a concurrent duplicate with ErrDuplicateKey.
func (s *Store) CreateSalary(ctx context.Context, sal Salary) (Salary, error) {
	sal.PaymentStatus = PaymentPending
	if err := Reconcile(sal); err != nil {
		return Salary{}, err
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO salaries (employee_id, month, year, earnings, deductions, attendance_summary,
      gross_salary, total_deductions, net_salary, payment_status, payment_ref)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id, created_at, updated_at
  `, sal.EmployeeID, sal.Month, sal.Year, sal.Earnings, sal.Deductions, sal.Summary,
		sal.GrossSalary, sal.TotalDeductions, sal.NetSalary, sal.PaymentStatus, nullIfEmpty(sal.PaymentRef),
	).Scan(&sal.ID, &sal.CreatedAt, &sal.UpdatedAt)
	if err != nil {
		return Salary{}, store.MapError(err)
	}
	return sal, nil
}

func (s *Store) GetSalaryByID(ctx context.Context, id string) (Salary, error) {
	return scanSalary(s.DB.QueryRow(ctx, "SELECT"+salaryColumns+" FROM salaries WHERE id = $1", id))
}

func (s *Store) GetSalaryForPeriod(ctx context.Context, employeeID string, month, year int) (Salary, error) {
	return scanSalary(s.DB.QueryRow(ctx,
		"SELECT"+salaryColumns+" FROM salaries WHERE employee_id = $1 AND month = $2 AND year = $3",
		employeeID, month, year))
}

// ListSalaries returns records for a period newest-first, or all periods
// when month/year are zero.
func (s *Store) ListSalaries(ctx context.Context, month, year int, limit, offset int) ([]Salary, error) {
	query := "SELECT" + salaryColumns + " FROM salaries WHERE 1=1"
	var args []any
	if year != 0 {
		args = append(args, year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	if month != 0 {
		args = append(args, month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY year DESC, month DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return s.listSalaries(ctx, query, args...)
}

func (s *Store) ListSalariesByPaymentStatus(ctx context.Context, status string, limit, offset int) ([]Salary, error) {
	return s.listSalaries(ctx,
		"SELECT"+salaryColumns+" FROM salaries WHERE payment_status = $1 ORDER BY year DESC, month DESC LIMIT $2 OFFSET $3",
		status, limit, offset)
}

func (s *Store) listSalaries(ctx context.Context, query string, args ...any) ([]Salary, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Salary
	for rows.Next() {
		sal, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sal)
	}
	return out, store.MapError(rows.Err())
}

func (s *Store) UpdateSalary(ctx context.Context, id string, patch SalaryPatch) (Salary, error) {
	current, err := s.GetSalaryByID(ctx, id)
	if err != nil {
		return Salary{}, err
	}

	next := current
	if patch.Earnings != nil {
		next.Earnings = *patch.Earnings
	}
	if patch.Deductions != nil {
		next.Deductions = *patch.Deductions
	}
	if patch.Summary != nil {
		next.Summary = *patch.Summary
	}
	if patch.GrossSalary != nil {
		next.GrossSalary = *patch.GrossSalary
	}
	if patch.TotalDeductions != nil {
		next.TotalDeductions = *patch.TotalDeductions
	}
	if patch.NetSalary != nil {
		next.NetSalary = *patch.NetSalary
	}
	if patch.PaymentRef != nil {
		next.PaymentRef = *patch.PaymentRef
	}
	if err := Reconcile(next); err != nil {
		return Salary{}, err
	}

	query := `
    UPDATE salaries
    SET earnings = $1, deductions = $2, attendance_summary = $3, gross_salary = $4,
        total_deductions = $5, net_salary = $6, payment_ref = $7, updated_at = now()
    WHERE id = $8`
	args := []any{
		next.Earnings, next.Deductions, next.Summary, next.GrossSalary,
		next.TotalDeductions, next.NetSalary, nullIfEmpty(next.PaymentRef), id,
	}
	if patch.ExpectedUpdatedAt != nil {
		query += " AND updated_at = $9"
		args = append(args, *patch.ExpectedUpdatedAt)
	}

	cmd, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return Salary{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		if patch.ExpectedUpdatedAt != nil {
			return Salary{}, store.ErrConcurrencyConflict
		}
		return Salary{}, store.ErrNotFound
	}
	return s.GetSalaryByID(ctx, id)
}

// TransitionPayment advances the payment lifecycle. The previous status in
// the WHERE clause makes the move race-safe.
func (s *Store) TransitionPayment(ctx context.Context, id, nextStatus string) (Salary, error) {
	current, err := s.GetSalaryByID(ctx, id)
	if err != nil {
		return Salary{}, err
	}
	if !CanTransitionPayment(current.PaymentStatus, nextStatus) {
		return Salary{}, store.Invalid("paymentStatus",
			fmt.Sprintf("no transition from %s to %s", current.PaymentStatus, nextStatus))
	}

	query := "UPDATE salaries SET payment_status = $1, updated_at = now()"
	if nextStatus == PaymentPaid {
		query += ", paid_at = now()"
	}
	query += " WHERE id = $2 AND payment_status = $3"

	cmd, err := s.DB.Exec(ctx, query, nextStatus, id, current.PaymentStatus)
	if err != nil {
		return Salary{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return Salary{}, store.ErrConcurrencyConflict
	}
	return s.GetSalaryByID(ctx, id)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
