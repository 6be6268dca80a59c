package attendance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
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

func TestCreateRejectsSecondRecordForSameDay(t *testing.T) {
	pool := newTestPool(t)
	s := NewStore(pool)
	ctx := context.Background()

	employeeID := seedEmployee(t, pool)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first, err := s.Create(ctx, Attendance{
		EmployeeID: employeeID,
		Date:       day,
		WorkType:   "Office",
		Status:     StatusAbsent,
	})
	if err != nil {
		t.Fatalf("failed to create first day record: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected created record to carry an id")
	}

	_, err = s.Create(ctx, Attendance{
		EmployeeID: employeeID,
		Date:       day.Add(5 * time.Hour),
		WorkType:   "Remote",
		Status:     StatusPresent,
	})
	if !errors.Is(err, store.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for second record on the same day, got %v", err)
	}
}

func TestOpenAbsorbsConcurrentFirstPunch(t *testing.T) {
	pool := newTestPool(t)
	s := NewStore(pool)
	ctx := context.Background()

	employeeID := seedEmployee(t, pool)
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			rec, err := s.Open(ctx, employeeID, day, "Office")
			ids[i] = rec.ID
			errs[i] = err
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: unexpected error: %v", i, errs[i])
		}
		if ids[i] == "" || ids[i] != ids[0] {
			t.Fatalf("worker %d: expected every caller to land on one row, got ids %v", i, ids)
		}
	}
}
