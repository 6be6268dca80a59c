package settings

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/store"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const settingColumns = `
    id, category, data, COALESCE(updated_by::text, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSetting(row rowScanner) (Setting, error) {
	var s Setting
	err := row.Scan(&s.ID, &s.Category, &s.Data, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Setting{}, store.MapError(err)
	}
	return s, nil
}

// Upsert writes the single document for a category, creating it on first
// use. The unique index on category makes concurrent first writers converge
// on one row.
func (s *Store) Upsert(ctx context.Context, category string, data json.RawMessage, updatedBy string) (Setting, error) {
	if category == "" {
		return Setting{}, store.Invalid("category", "is required")
	}
	if err := decodePayload(category, data); err != nil {
		return Setting{}, err
	}

	return scanSetting(s.DB.QueryRow(ctx, `
    INSERT INTO settings (category, data, updated_by)
    VALUES ($1, $2, $3)
    ON CONFLICT (category) DO UPDATE
    SET data = EXCLUDED.data, updated_by = EXCLUDED.updated_by, updated_at = now()
    RETURNING`+settingColumns+`
  `, category, data, nullIfEmpty(updatedBy)))
}

func (s *Store) Get(ctx context.Context, category string) (Setting, error) {
	return scanSetting(s.DB.QueryRow(ctx,
		"SELECT"+settingColumns+" FROM settings WHERE category = $1", category))
}

func (s *Store) List(ctx context.Context) ([]Setting, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+settingColumns+" FROM settings ORDER BY category")
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, setting)
	}
	return out, store.MapError(rows.Err())
}

func (s *Store) Delete(ctx context.Context, category string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM settings WHERE category = $1", category)
	if err != nil {
		return store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
