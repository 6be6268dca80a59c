package leave

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/platform/db"
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

func seedEmployee(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	var deptID string
	if err := pool.QueryRow(ctx, `
    INSERT INTO departments (department_id, name) VALUES ($1, 'Engineering') RETURNING id
  `, fmt.Sprintf("DEP-%d", nano)).Scan(&deptID); err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}

	var empID string
	if err := pool.QueryRow(ctx, `
    INSERT INTO employees (employee_id, first_name, last_name, email, department_id,
      designation, employee_type, joining_date, work_location)
    VALUES ($1, 'Priya', 'Nair', $2, $3, 'Engineer', 'Full-Time', '2024-01-15', 'Office')
    RETURNING id
  `, fmt.Sprintf("EMP-%d", nano), fmt.Sprintf("priya-%d@example.com", nano), deptID).Scan(&empID); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return empID
}

func TestOverlappingFindsIntersectingRequests(t *testing.T) {
	pool := newTestPool(t)
	s := NewStore(pool)
	ctx := context.Background()
	policy := Policy{ExcludeWeekends: true}

	employeeID := seedEmployee(t, pool)
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	early, err := s.Create(ctx, Leave{
		EmployeeID: employeeID, LeaveType: "Casual", Reason: "family visit",
		StartDate: day(2), EndDate: day(4),
	}, policy)
	if err != nil {
		t.Fatalf("failed to create first request: %v", err)
	}
	later, err := s.Create(ctx, Leave{
		EmployeeID: employeeID, LeaveType: "Sick", Reason: "flu",
		StartDate: day(9), EndDate: day(10),
	}, policy)
	if err != nil {
		t.Fatalf("failed to create second request: %v", err)
	}

	// A rejected request no longer blocks the range.
	rejected, err := s.Create(ctx, Leave{
		EmployeeID: employeeID, LeaveType: "Earned", Reason: "travel",
		StartDate: day(16), EndDate: day(17),
	}, policy)
	if err != nil {
		t.Fatalf("failed to create third request: %v", err)
	}
	if _, err := s.Transition(ctx, rejected.ID, StatusRejected, "", "coverage gap"); err != nil {
		t.Fatalf("failed to reject third request: %v", err)
	}

	narrow, err := s.Overlapping(ctx, employeeID, day(4), day(6))
	if err != nil {
		t.Fatalf("overlap query failed: %v", err)
	}
	if len(narrow) != 1 || narrow[0].ID != early.ID {
		t.Fatalf("expected only the first request in 4..6, got %+v", narrow)
	}

	wide, err := s.Overlapping(ctx, employeeID, day(1), day(31))
	if err != nil {
		t.Fatalf("overlap query failed: %v", err)
	}
	if len(wide) != 2 {
		t.Fatalf("expected pending requests only across the month, got %+v", wide)
	}
	if wide[0].ID != early.ID || wide[1].ID != later.ID {
		t.Fatalf("expected start-date order %s, %s, got %+v", early.ID, later.ID, wide)
	}
}
