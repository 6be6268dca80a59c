package department

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/store"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const departmentColumns = `
    id, department_id, name, COALESCE(custom_name, ''), COALESCE(description, ''),
    COALESCE(head_of_department_id::text, ''), employee_count, is_active, created_at, updated_at`

func (s *Store) Create(ctx context.Context, dept Department) (Department, error) {
	dept.Normalize()
	if err := dept.Validate(); err != nil {
		return Department{}, err
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (department_id, name, custom_name, description, head_of_department_id, is_active)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, employee_count, created_at, updated_at
  `, dept.DepartmentID, dept.Name, nullIfEmpty(dept.CustomName), nullIfEmpty(dept.Description),
		nullIfEmpty(dept.HeadOfDepartmentID), dept.IsActive,
	).Scan(&dept.ID, &dept.EmployeeCount, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		return Department{}, store.MapError(err)
	}
	return dept, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Department, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *Store) GetByDepartmentID(ctx context.Context, departmentID string) (Department, error) {
	return s.getWhere(ctx, "department_id = $1", departmentID)
}

func (s *Store) getWhere(ctx context.Context, clause string, arg any) (Department, error) {
	var dept Department
	err := s.DB.QueryRow(ctx, "SELECT "+departmentColumns+" FROM departments WHERE "+clause, arg).Scan(
		&dept.ID, &dept.DepartmentID, &dept.Name, &dept.CustomName, &dept.Description,
		&dept.HeadOfDepartmentID, &dept.EmployeeCount, &dept.IsActive, &dept.CreatedAt, &dept.UpdatedAt,
	)
	if err != nil {
		return Department{}, store.MapError(err)
	}
	return dept, nil
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]Department, error) {
	query := "SELECT " + departmentColumns + " FROM departments"
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY department_id"

	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(
			&dept.ID, &dept.DepartmentID, &dept.Name, &dept.CustomName, &dept.Description,
			&dept.HeadOfDepartmentID, &dept.EmployeeCount, &dept.IsActive, &dept.CreatedAt, &dept.UpdatedAt,
		); err != nil {
			return nil, store.MapError(err)
		}
		out = append(out, dept)
	}
	return out, store.MapError(rows.Err())
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) (Department, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Department{}, err
	}

	next := current
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.CustomName != nil {
		next.CustomName = *patch.CustomName
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.HeadOfDepartmentID != nil {
		next.HeadOfDepartmentID = *patch.HeadOfDepartmentID
	}
	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return Department{}, err
	}

	query := `
    UPDATE departments
    SET name = $1, custom_name = $2, description = $3, head_of_department_id = $4,
        is_active = $5, updated_at = now()
    WHERE id = $6`
	args := []any{
		next.Name, nullIfEmpty(next.CustomName), nullIfEmpty(next.Description),
		nullIfEmpty(next.HeadOfDepartmentID), next.IsActive, id,
	}
	if patch.ExpectedUpdatedAt != nil {
		query += " AND updated_at = $7"
		args = append(args, *patch.ExpectedUpdatedAt)
	}

	cmd, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return Department{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		if patch.ExpectedUpdatedAt != nil {
			return Department{}, store.ErrConcurrencyConflict
		}
		return Department{}, store.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete hard-deletes a department. Employee rows referencing it keep the
// row alive: the FK is RESTRICT and the violation surfaces as ErrReference.
func (s *Store) Delete(ctx context.Context, id string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Recount refreshes the derived employee_count from the employees table.
func (s *Store) Recount(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET employee_count = (
      SELECT COUNT(1) FROM employees WHERE department_id = $1 AND status <> 'Terminated'
    ), updated_at = now()
    WHERE id = $1
  `, id)
	return store.MapError(err)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
