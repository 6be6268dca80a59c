package biometric

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
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

func seedRegisteredEmployee(t *testing.T, pool *pgxpool.Pool) (string, string) {
	t.Helper()
	ctx := context.Background()
	nano := time.Now().UnixNano()

	var deptID string
	if err := pool.QueryRow(ctx, `
    INSERT INTO departments (department_id, name) VALUES ($1, 'Engineering') RETURNING id
  `, fmt.Sprintf("DEP-%d", nano)).Scan(&deptID); err != nil {
		t.Fatalf("failed to seed department: %v", err)
	}

	biometricID := fmt.Sprintf("BIO-%d", nano)
	var empID string
	if err := pool.QueryRow(ctx, `
    INSERT INTO employees (employee_id, first_name, last_name, email, department_id,
      designation, employee_type, joining_date, work_location, biometric_id, biometric_registered)
    VALUES ($1, 'Priya', 'Nair', $2, $3, 'Engineer', 'Full-Time', '2024-01-15', 'Office', $4, true)
    RETURNING id
  `, fmt.Sprintf("EMP-%d", nano), fmt.Sprintf("priya-%d@example.com", nano), deptID, biometricID).Scan(&empID); err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return empID, biometricID
}

func TestMarkProcessedFlipsExactlyOnce(t *testing.T) {
	pool := newTestPool(t)
	s := NewStore(pool)
	ctx := context.Background()

	employeeID, biometricID := seedRegisteredEmployee(t, pool)
	created, err := s.Create(ctx, Log{
		BiometricID: biometricID,
		LogType:     TypeCheckIn,
		Timestamp:   time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to ingest log: %v", err)
	}

	done, err := s.MarkProcessed(ctx, created.ID, employeeID, "", "")
	if err != nil {
		t.Fatalf("first mark failed: %v", err)
	}
	if !done {
		t.Fatal("expected first mark to win")
	}

	done, err = s.MarkProcessed(ctx, created.ID, employeeID, "", "")
	if err != nil {
		t.Fatalf("replayed mark failed: %v", err)
	}
	if done {
		t.Fatal("expected replayed mark to be a no-op")
	}

	reloaded, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to reload log: %v", err)
	}
	if !reloaded.Processed || reloaded.ProcessedAt == nil {
		t.Fatalf("expected log to stay processed, got %+v", reloaded)
	}
	if reloaded.EmployeeID != employeeID {
		t.Fatalf("expected matched employee %s, got %s", employeeID, reloaded.EmployeeID)
	}
}

func TestMarkProcessedSingleWinnerUnderRacingWorkers(t *testing.T) {
	pool := newTestPool(t)
	s := NewStore(pool)
	ctx := context.Background()

	employeeID, biometricID := seedRegisteredEmployee(t, pool)
	created, err := s.Create(ctx, Log{
		BiometricID: biometricID,
		LogType:     TypeCheckOut,
		Timestamp:   time.Date(2026, 3, 2, 18, 2, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to ingest log: %v", err)
	}

	const workers = 8
	wins := make([]bool, workers)
	errs := make([]error, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			wins[i], errs[i] = s.MarkProcessed(ctx, created.ID, employeeID, "", "")
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: unexpected error: %v", i, errs[i])
		}
		if wins[i] {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winning mark, got %d", winners)
	}
}
