package payroll

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/platform/db"
	"hrstore/internal/store"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, filepath.Join("..", "..", "..", "migrations")); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return pool
}

func seedSalary(t *testing.T, s *Store) Salary {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	var deptID string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (department_id, name) VALUES ($1, 'Finance') RETURNING id
  `, fmt.Sprintf("DEP-%d", nano)).Scan(&deptID); err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}

	var empID string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_id, first_name, last_name, email, department_id,
      designation, employee_type, joining_date, work_location)
    VALUES ($1, 'Priya', 'Nair', $2, $3, 'Analyst', 'Full-Time', '2024-01-15', 'Office')
    RETURNING id
  `, fmt.Sprintf("EMP-%d", nano), fmt.Sprintf("priya-%d@example.com", nano), deptID).Scan(&empID); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}

	sal, err := s.CreateSalary(ctx, Salary{
		EmployeeID:      empID,
		Month:           3,
		Year:            2026,
		Earnings:        Earnings{Basic: 50000, HRA: 5000},
		Deductions:      Deductions{Tax: 4800},
		Summary:         AttendanceSummary{WorkingDays: 22, PresentDays: 21, LeaveDays: 1},
		GrossSalary:     55000,
		TotalDeductions: 4800,
		NetSalary:       50200,
	})
	if err != nil {
		t.Fatalf("failed to seed salary: %v", err)
	}
	return sal
}

func TestCreateSlipRerendersAfterFailedRender(t *testing.T) {
	pool := newTestPool(t)
	s := NewStore(pool)
	ctx := context.Background()

	sal := seedSalary(t, s)

	// A regular file where the renderer expects a directory makes the first
	// render fail after the row insert.
	occupied := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(occupied, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}
	if _, err := s.CreateSlip(ctx, sal.ID, NewSlipRenderer(filepath.Join(occupied, "slips"))); err == nil {
		t.Fatal("expected render failure")
	}

	orphan, err := s.GetSlipBySalaryID(ctx, sal.ID)
	if err != nil {
		t.Fatalf("expected slip row to survive the failed render: %v", err)
	}
	if orphan.FileURL != "" {
		t.Fatalf("expected no file url after failed render, got %q", orphan.FileURL)
	}

	slip, err := s.CreateSlip(ctx, sal.ID, NewSlipRenderer(t.TempDir()))
	if err != nil {
		t.Fatalf("expected retry to re-render, got %v", err)
	}
	if slip.ID != orphan.ID {
		t.Fatalf("expected retry to reuse the existing row %s, got %s", orphan.ID, slip.ID)
	}
	if slip.FileURL == "" {
		t.Fatal("expected retry to backfill the file url")
	}
	if _, err := os.Stat(slip.FileURL); err != nil {
		t.Fatalf("expected rendered file on disk: %v", err)
	}

	if _, err := s.CreateSlip(ctx, sal.ID, NewSlipRenderer(t.TempDir())); !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey once the slip is complete, got %v", err)
	}
}
