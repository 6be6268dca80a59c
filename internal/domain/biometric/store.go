package biometric

import (
	"context"
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

const logColumns = `
    id, biometric_id, COALESCE(employee_id::text, ''), log_type, timestamp,
    device, processed, processed_at, COALESCE(process_error, ''),
    COALESCE(attendance_id::text, ''), raw_payload, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (Log, error) {
	var l Log
	err := row.Scan(
		&l.ID, &l.BiometricID, &l.EmployeeID, &l.LogType, &l.Timestamp,
		&l.Device, &l.Processed, &l.ProcessedAt, &l.ProcessError,
		&l.AttendanceID, &l.RawPayload, &l.CreatedAt,
	)
	if err != nil {
		return Log{}, store.MapError(err)
	}
	return l, nil
}

func (l Log) validate() error {
	v := store.NewValidator()
	v.Required("biometricId", l.BiometricID)
	v.Enum("logType", l.LogType, LogTypes)
	if l.Timestamp.IsZero() {
		v.Add("timestamp", "is required")
	}
	return v.Err()
}

// Create appends a raw device event. Events always enter unprocessed; the
// reconciler owns the transition to processed.
func (s *Store) Create(ctx context.Context, l Log) (Log, error) {
	l.Processed = false
	l.ProcessedAt = nil
	l.AttendanceID = ""
	if err := l.validate(); err != nil {
		return Log{}, err
	}
	if l.RawPayload == nil {
		l.RawPayload = map[string]any{}
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO biometric_logs (biometric_id, employee_id, log_type, timestamp, device, raw_payload)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, l.BiometricID, nullIfEmpty(l.EmployeeID), l.LogType, l.Timestamp, l.Device, l.RawPayload,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return Log{}, store.MapError(err)
	}
	return l, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Log, error) {
	return scanLog(s.DB.QueryRow(ctx, "SELECT"+logColumns+" FROM biometric_logs WHERE id = $1", id))
}

func (s *Store) ListByBiometricID(ctx context.Context, biometricID string, limit, offset int) ([]Log, error) {
	return s.list(ctx,
		"SELECT"+logColumns+" FROM biometric_logs WHERE biometric_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3",
		biometricID, limit, offset)
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]Log, error) {
	return s.list(ctx,
		"SELECT"+logColumns+" FROM biometric_logs WHERE employee_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3",
		employeeID, limit, offset)
}

// ListUnprocessed returns pending events oldest-first so day records are
// built in punch order.
func (s *Store) ListUnprocessed(ctx context.Context, limit int) ([]Log, error) {
	return s.list(ctx,
		"SELECT"+logColumns+" FROM biometric_logs WHERE processed = false ORDER BY timestamp LIMIT $1",
		limit)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Log, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, store.MapError(rows.Err())
}

// MarkProcessed flips the event to processed exactly once. The processed =
// false guard makes a replayed or racing call a no-op, reported via the
// bool so the caller can skip already-applied events.
func (s *Store) MarkProcessed(ctx context.Context, id, employeeID, attendanceID, processError string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE biometric_logs
    SET processed = true, processed_at = $1, employee_id = $2,
        attendance_id = $3, process_error = $4
    WHERE id = $5 AND processed = false
  `, time.Now().UTC(), nullIfEmpty(employeeID), nullIfEmpty(attendanceID), nullIfEmpty(processError), id)
	if err != nil {
		return false, store.MapError(err)
	}
	return cmd.RowsAffected() == 1, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
