package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/store"
)

// Entry is one append-only trail record. Entries are never updated or
// deleted.
type Entry struct {
	ID               string          `json:"id"`
	Action           string          `json:"action"`
	PerformedBy      string          `json:"performedBy"`
	TargetEmployeeID string          `json:"targetEmployee,omitempty"`
	Collection       string          `json:"collection"`
	DocumentID       string          `json:"documentId,omitempty"`
	Changes          json.RawMessage `json:"changes,omitempty"`
	IP               string          `json:"ip,omitempty"`
	UserAgent        string          `json:"userAgent,omitempty"`
	RequestID        string          `json:"requestId,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

type Filter struct {
	PerformedBy      string
	TargetEmployeeID string
	Collection       string
	Since            time.Time
	Until            time.Time
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// Record appends one entry. Action and performedBy are the only hard
// requirements; everything else is context.
func (s *Service) Record(ctx context.Context, e Entry) (Entry, error) {
	v := store.NewValidator()
	v.Required("action", e.Action)
	v.Required("performedBy", e.PerformedBy)
	if err := v.Err(); err != nil {
		return Entry{}, err
	}
	if e.Changes == nil {
		e.Changes = json.RawMessage("{}")
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO audit_logs (action, performed_by, target_employee_id, collection,
      document_id, changes, ip, user_agent, request_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id, timestamp
  `, e.Action, e.PerformedBy, nullIfEmpty(e.TargetEmployeeID), e.Collection,
		nullIfEmpty(e.DocumentID), e.Changes, nullIfEmpty(e.IP),
		nullIfEmpty(e.UserAgent), nullIfEmpty(e.RequestID),
	).Scan(&e.ID, &e.Timestamp)
	if err != nil {
		return Entry{}, store.MapError(err)
	}
	return e, nil
}

// TryRecord is the best-effort form used on write paths: a failed trail
// write is logged and never fails the operation it describes.
func (s *Service) TryRecord(ctx context.Context, e Entry) {
	if _, err := s.Record(ctx, e); err != nil {
		slog.Warn("audit record failed", "action", e.Action, "collection", e.Collection, "err", err)
	}
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error) {
	query := `
    SELECT id, action, performed_by::text, COALESCE(target_employee_id::text, ''),
      collection, COALESCE(document_id, ''), changes, COALESCE(ip, ''),
      COALESCE(user_agent, ''), COALESCE(request_id, ''), timestamp
    FROM audit_logs WHERE 1=1`
	var args []any
	if filter.PerformedBy != "" {
		args = append(args, filter.PerformedBy)
		query += fmt.Sprintf(" AND performed_by::text = $%d", len(args))
	}
	if filter.TargetEmployeeID != "" {
		args = append(args, filter.TargetEmployeeID)
		query += fmt.Sprintf(" AND target_employee_id::text = $%d", len(args))
	}
	if filter.Collection != "" {
		args = append(args, filter.Collection)
		query += fmt.Sprintf(" AND collection = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if !filter.Until.IsZero() {
		args = append(args, filter.Until)
		query += fmt.Sprintf(" AND timestamp < $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.PerformedBy, &e.TargetEmployeeID,
			&e.Collection, &e.DocumentID, &e.Changes, &e.IP,
			&e.UserAgent, &e.RequestID, &e.Timestamp); err != nil {
			return nil, store.MapError(err)
		}
		out = append(out, e)
	}
	return out, store.MapError(rows.Err())
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
