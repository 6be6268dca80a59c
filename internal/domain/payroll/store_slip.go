package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hrstore/internal/store"
)

const slipColumns = `
    id, salary_id::text, employee_id::text, slip_number, month, year,
    COALESCE(file_url, ''), email_status, email_sent_at, COALESCE(email_error, ''),
    downloads, download_count, created_at, updated_at`

func scanSlip(row rowScanner) (SalarySlip, error) {
	var slip SalarySlip
	err := row.Scan(
		&slip.ID, &slip.SalaryID, &slip.EmployeeID, &slip.SlipNumber, &slip.Month, &slip.Year,
		&slip.FileURL, &slip.EmailStatus, &slip.EmailSentAt, &slip.EmailError,
		&slip.Downloads, &slip.DownloadCount, &slip.CreatedAt, &slip.UpdatedAt,
	)
	if err != nil {
		return SalarySlip{}, store.MapError(err)
	}
	return slip, nil
}

// CreateSlip generates the 1:1 slip artifact for a salary record: inserts
// the row with a sequential slip number, renders the PDF, and backfills the
// file URL. The unique index on salary_id keeps the relationship one-to-one
// under concurrency. A retry after a failed render finds the existing row
// without a file URL and re-renders instead of reporting a duplicate, so a
// render outage never wedges a salary without a slip.
func (s *Store) CreateSlip(ctx context.Context, salaryID string, renderer *SlipRenderer) (SalarySlip, error) {
	sal, err := s.GetSalaryByID(ctx, salaryID)
	if err != nil {
		return SalarySlip{}, err
	}

	var firstName, lastName, email string
	if err := s.DB.QueryRow(ctx,
		"SELECT first_name, last_name, email FROM employees WHERE id = $1", sal.EmployeeID,
	).Scan(&firstName, &lastName, &email); err != nil {
		return SalarySlip{}, fmt.Errorf("employee: %w", store.MapError(err))
	}

	slip := SalarySlip{
		SalaryID:    salaryID,
		EmployeeID:  sal.EmployeeID,
		Month:       sal.Month,
		Year:        sal.Year,
		EmailStatus: EmailNotSent,
		Downloads:   []Download{},
	}

	err = s.DB.QueryRow(ctx, `
    INSERT INTO salary_slips (salary_id, employee_id, slip_number, month, year, email_status, downloads)
    VALUES ($1, $2,
      'SLIP-' || $3 || lpad($4::text, 2, '0') || '-' || lpad(nextval('slip_number_seq')::text, 6, '0'),
      $4, $3, $5, $6)
    RETURNING id, slip_number, created_at, updated_at
  `, salaryID, sal.EmployeeID, sal.Year, sal.Month, slip.EmailStatus, slip.Downloads,
	).Scan(&slip.ID, &slip.SlipNumber, &slip.CreatedAt, &slip.UpdatedAt)
	if err != nil {
		mapped := store.MapError(err)
		if !errors.Is(mapped, store.ErrDuplicateKey) {
			return SalarySlip{}, mapped
		}
		existing, getErr := s.GetSlipBySalaryID(ctx, salaryID)
		if getErr != nil {
			return SalarySlip{}, mapped
		}
		if existing.FileURL != "" {
			return SalarySlip{}, mapped
		}
		slip = existing
	}

	if renderer != nil {
		fileURL, err := renderer.Render(slip, sal, firstName, lastName, email)
		if err != nil {
			return SalarySlip{}, err
		}
		if _, err := s.DB.Exec(ctx,
			"UPDATE salary_slips SET file_url = $1, updated_at = now() WHERE id = $2",
			fileURL, slip.ID); err != nil {
			return SalarySlip{}, store.MapError(err)
		}
		slip.FileURL = fileURL
	}
	return slip, nil
}

func (s *Store) GetSlipByID(ctx context.Context, id string) (SalarySlip, error) {
	return scanSlip(s.DB.QueryRow(ctx, "SELECT"+slipColumns+" FROM salary_slips WHERE id = $1", id))
}

func (s *Store) GetSlipByNumber(ctx context.Context, slipNumber string) (SalarySlip, error) {
	return scanSlip(s.DB.QueryRow(ctx, "SELECT"+slipColumns+" FROM salary_slips WHERE slip_number = $1", slipNumber))
}

func (s *Store) GetSlipBySalaryID(ctx context.Context, salaryID string) (SalarySlip, error) {
	return scanSlip(s.DB.QueryRow(ctx, "SELECT"+slipColumns+" FROM salary_slips WHERE salary_id = $1", salaryID))
}

// ListSlipsForEmployee returns slips newest period first.
func (s *Store) ListSlipsForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]SalarySlip, error) {
	return s.listSlips(ctx,
		"SELECT"+slipColumns+" FROM salary_slips WHERE employee_id = $1 ORDER BY year DESC, month DESC LIMIT $2 OFFSET $3",
		employeeID, limit, offset)
}

func (s *Store) ListSlipsByEmailStatus(ctx context.Context, emailStatus string, limit, offset int) ([]SalarySlip, error) {
	return s.listSlips(ctx,
		"SELECT"+slipColumns+" FROM salary_slips WHERE email_status = $1 ORDER BY created_at LIMIT $2 OFFSET $3",
		emailStatus, limit, offset)
}

func (s *Store) listSlips(ctx context.Context, query string, args ...any) ([]SalarySlip, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []SalarySlip
	for rows.Next() {
		slip, err := scanSlip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, slip)
	}
	return out, store.MapError(rows.Err())
}

// TransitionEmail records delivery-state progress reported by the mailer
// collaborator.
func (s *Store) TransitionEmail(ctx context.Context, id, nextStatus, emailError string) (SalarySlip, error) {
	current, err := s.GetSlipByID(ctx, id)
	if err != nil {
		return SalarySlip{}, err
	}
	if !CanTransitionEmail(current.EmailStatus, nextStatus) {
		return SalarySlip{}, store.Invalid("emailStatus",
			fmt.Sprintf("no transition from %s to %s", current.EmailStatus, nextStatus))
	}

	query := "UPDATE salary_slips SET email_status = $1, email_error = $2, updated_at = now()"
	if nextStatus == EmailSent {
		query += ", email_sent_at = now()"
	}
	query += " WHERE id = $3 AND email_status = $4"

	cmd, err := s.DB.Exec(ctx, query, nextStatus, nullIfEmpty(emailError), id, current.EmailStatus)
	if err != nil {
		return SalarySlip{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return SalarySlip{}, store.ErrConcurrencyConflict
	}
	return s.GetSlipByID(ctx, id)
}

// RecordDownload appends to the download log and bumps the counter in one
// statement, so concurrent downloads never lose increments.
func (s *Store) RecordDownload(ctx context.Context, id, downloadedBy string) (SalarySlip, error) {
	entry := Download{At: time.Now().UTC(), By: downloadedBy}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE salary_slips
    SET downloads = downloads || $1::jsonb, download_count = download_count + 1, updated_at = now()
    WHERE id = $2
  `, entry, id)
	if err != nil {
		return SalarySlip{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return SalarySlip{}, store.ErrNotFound
	}
	return s.GetSlipByID(ctx, id)
}
