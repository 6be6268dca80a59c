package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrstore/internal/store"
)

type Store struct {
	DB       *pgxpool.Pool
	Defaults Defaults
}

func NewStore(db *pgxpool.Pool, defaults Defaults) *Store {
	return &Store{DB: db, Defaults: defaults}
}

const employeeColumns = `
    id, employee_id, first_name, last_name, email, COALESCE(phone, ''),
    date_of_birth, COALESCE(gender, ''), address, emergency_contact,
    department_id::text, designation, employee_type, joining_date, confirmation_date,
    COALESCE(probation_months, 0), COALESCE(reporting_manager_id::text, ''), work_location,
    salary_info, COALESCE(biometric_id, ''), biometric_registered, biometric_last_sync,
    status, termination, documents, leave_balance, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Personal.FirstName, &e.Personal.LastName, &e.Personal.Email, &e.Personal.Phone,
		&e.Personal.DateOfBirth, &e.Personal.Gender, &e.Personal.Address, &e.Personal.EmergencyContact,
		&e.Employment.DepartmentID, &e.Employment.Designation, &e.Employment.EmployeeType,
		&e.Employment.JoiningDate, &e.Employment.ConfirmationDate,
		&e.Employment.ProbationMonths, &e.Employment.ReportingManagerID, &e.Employment.WorkLocation,
		&e.Salary, &e.Biometric.BiometricID, &e.Biometric.Registered, &e.Biometric.LastSync,
		&e.Status, &e.Termination, &e.Documents, &e.LeaveBalance, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return Employee{}, store.MapError(err)
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	emp.Normalize()
	if err := emp.Validate(); err != nil {
		return Employee{}, err
	}
	if emp.LeaveBalance == nil {
		var configured map[string]float64
		if s.Defaults.LeaveBalance != nil {
			configured = s.Defaults.LeaveBalance(ctx)
		}
		emp.LeaveBalance = cloneBalances(configured)
	}
	if emp.Documents == nil {
		emp.Documents = []Document{}
	}
	if err := s.checkDepartment(ctx, emp.Employment.DepartmentID); err != nil {
		return Employee{}, err
	}
	if err := s.checkManager(ctx, emp.ID, emp.Employment.ReportingManagerID); err != nil {
		return Employee{}, err
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      employee_id, first_name, last_name, email, phone, date_of_birth, gender,
      address, emergency_contact, department_id, designation, employee_type,
      joining_date, confirmation_date, probation_months, reporting_manager_id,
      work_location, salary_info, biometric_id, biometric_registered,
      biometric_last_sync, status, termination, documents, leave_balance)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
    RETURNING id, created_at, updated_at
  `,
		emp.EmployeeID, emp.Personal.FirstName, emp.Personal.LastName, emp.Personal.Email,
		nullIfEmpty(emp.Personal.Phone), emp.Personal.DateOfBirth, nullIfEmpty(emp.Personal.Gender),
		emp.Personal.Address, emp.Personal.EmergencyContact, emp.Employment.DepartmentID,
		emp.Employment.Designation, emp.Employment.EmployeeType, emp.Employment.JoiningDate,
		emp.Employment.ConfirmationDate, nullIfZero(emp.Employment.ProbationMonths),
		nullIfEmpty(emp.Employment.ReportingManagerID), emp.Employment.WorkLocation,
		emp.Salary, nullIfEmpty(emp.Biometric.BiometricID), emp.Biometric.Registered,
		emp.Biometric.LastSync, emp.Status, emp.Termination, emp.Documents, emp.LeaveBalance,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return Employee{}, store.MapError(err)
	}

	s.recountDepartment(ctx, emp.Employment.DepartmentID)
	return emp, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE id = $1", id))
}

func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE employee_id = $1", employeeID))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE email = $1", email))
}

func (s *Store) GetByBiometricID(ctx context.Context, biometricID string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+" FROM employees WHERE biometric_id = $1", biometricID))
}

type ListFilter struct {
	DepartmentID string
	Status       string
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	query := "SELECT" + employeeColumns + " FROM employees WHERE 1=1"
	var args []any
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		query += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY employee_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, store.MapError(err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, store.MapError(rows.Err())
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) (Employee, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	next := current
	if patch.Personal != nil {
		next.Personal = *patch.Personal
	}
	if patch.Employment != nil {
		next.Employment = *patch.Employment
	}
	if patch.Salary != nil {
		next.Salary = *patch.Salary
	}
	if patch.Biometric != nil {
		next.Biometric = *patch.Biometric
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Termination != nil {
		next.Termination = patch.Termination
	}
	if patch.Documents != nil {
		next.Documents = *patch.Documents
	}
	if patch.LeaveBalance != nil {
		next.LeaveBalance = *patch.LeaveBalance
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return Employee{}, err
	}
	if next.Employment.DepartmentID != current.Employment.DepartmentID {
		if err := s.checkDepartment(ctx, next.Employment.DepartmentID); err != nil {
			return Employee{}, err
		}
	}
	if next.Employment.ReportingManagerID != current.Employment.ReportingManagerID {
		if err := s.checkManager(ctx, id, next.Employment.ReportingManagerID); err != nil {
			return Employee{}, err
		}
	}

	query := `
    UPDATE employees
    SET first_name = $1, last_name = $2, email = $3, phone = $4, date_of_birth = $5,
        gender = $6, address = $7, emergency_contact = $8, department_id = $9,
        designation = $10, employee_type = $11, joining_date = $12, confirmation_date = $13,
        probation_months = $14, reporting_manager_id = $15, work_location = $16,
        salary_info = $17, biometric_id = $18, biometric_registered = $19,
        biometric_last_sync = $20, status = $21, termination = $22, documents = $23,
        leave_balance = $24, updated_at = now()
    WHERE id = $25`
	args := []any{
		next.Personal.FirstName, next.Personal.LastName, next.Personal.Email,
		nullIfEmpty(next.Personal.Phone), next.Personal.DateOfBirth, nullIfEmpty(next.Personal.Gender),
		next.Personal.Address, next.Personal.EmergencyContact, next.Employment.DepartmentID,
		next.Employment.Designation, next.Employment.EmployeeType, next.Employment.JoiningDate,
		next.Employment.ConfirmationDate, nullIfZero(next.Employment.ProbationMonths),
		nullIfEmpty(next.Employment.ReportingManagerID), next.Employment.WorkLocation,
		next.Salary, nullIfEmpty(next.Biometric.BiometricID), next.Biometric.Registered,
		next.Biometric.LastSync, next.Status, next.Termination, next.Documents,
		next.LeaveBalance, id,
	}
	if patch.ExpectedUpdatedAt != nil {
		query += " AND updated_at = $26"
		args = append(args, *patch.ExpectedUpdatedAt)
	}

	cmd, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return Employee{}, store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		if patch.ExpectedUpdatedAt != nil {
			return Employee{}, store.ErrConcurrencyConflict
		}
		return Employee{}, store.ErrNotFound
	}

	s.recountDepartment(ctx, next.Employment.DepartmentID)
	if next.Employment.DepartmentID != current.Employment.DepartmentID {
		s.recountDepartment(ctx, current.Employment.DepartmentID)
	}
	return s.GetByID(ctx, id)
}

// Delete hard-deletes an employee. Attendance, leave, salary, slip and
// biometric rows referencing it are RESTRICT FKs, so removal of anyone with
// history surfaces ErrReference; the supported path is Status = Terminated.
func (s *Store) Delete(ctx context.Context, id string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	s.recountDepartment(ctx, current.Employment.DepartmentID)
	return nil
}

// TouchBiometricSync records a successful device sync for the employee.
func (s *Store) TouchBiometricSync(ctx context.Context, id string, at time.Time) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees SET biometric_last_sync = $1, updated_at = now() WHERE id = $2
  `, at, id)
	if err != nil {
		return store.MapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) checkDepartment(ctx context.Context, departmentID string) error {
	var isActive bool
	err := s.DB.QueryRow(ctx, "SELECT is_active FROM departments WHERE id = $1", departmentID).Scan(&isActive)
	if err != nil {
		if errors.Is(store.MapError(err), store.ErrNotFound) {
			return fmt.Errorf("employmentDetails.department: %w", store.ErrReference)
		}
		return store.MapError(err)
	}
	if !isActive {
		return fmt.Errorf("employmentDetails.department is inactive: %w", store.ErrReference)
	}
	return nil
}

func (s *Store) checkManager(ctx context.Context, employeeID, managerID string) error {
	if managerID == "" {
		return nil
	}
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM employees WHERE id = $1", managerID).Scan(&status)
	if err != nil {
		if errors.Is(store.MapError(err), store.ErrNotFound) {
			return fmt.Errorf("employmentDetails.reportingManager: %w", store.ErrReference)
		}
		return store.MapError(err)
	}
	if status == StatusTerminated {
		return fmt.Errorf("employmentDetails.reportingManager is terminated: %w", store.ErrReference)
	}
	if employeeID == "" {
		return nil
	}
	cyclic, err := DetectManagerCycle(employeeID, managerID, func(id string) (string, error) {
		var next *string
		if err := s.DB.QueryRow(ctx, "SELECT reporting_manager_id::text FROM employees WHERE id = $1", id).Scan(&next); err != nil {
			return "", store.MapError(err)
		}
		if next == nil {
			return "", nil
		}
		return *next, nil
	})
	if err != nil {
		return err
	}
	if cyclic {
		return store.Invalid("employmentDetails.reportingManager", "creates a reporting cycle")
	}
	return nil
}

// recountDepartment refreshes the derived employee_count; failures are not
// fatal to the primary write since the count can always be recomputed.
func (s *Store) recountDepartment(ctx context.Context, departmentID string) {
	_, _ = s.DB.Exec(ctx, `
    UPDATE departments
    SET employee_count = (
      SELECT COUNT(1) FROM employees WHERE department_id = $1 AND status <> 'Terminated'
    ), updated_at = now()
    WHERE id = $1
  `, departmentID)
}

func cloneBalances(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullIfZero(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
