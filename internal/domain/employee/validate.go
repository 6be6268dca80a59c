package employee

import (
	"strings"

	"hrstore/internal/store"
)

// Normalize enforces the case rules: employeeId upper, email lower,
// biometric ids trimmed.
func (e *Employee) Normalize() {
	e.EmployeeID = strings.ToUpper(strings.TrimSpace(e.EmployeeID))
	e.Personal.Email = strings.ToLower(strings.TrimSpace(e.Personal.Email))
	e.Personal.FirstName = strings.TrimSpace(e.Personal.FirstName)
	e.Personal.LastName = strings.TrimSpace(e.Personal.LastName)
	e.Biometric.BiometricID = strings.TrimSpace(e.Biometric.BiometricID)
	if e.Status == "" {
		e.Status = StatusActive
	}
}

func (e Employee) Validate() error {
	v := store.NewValidator()
	v.Required("employeeId", e.EmployeeID)
	v.Required("personalInfo.firstName", e.Personal.FirstName)
	v.Required("personalInfo.lastName", e.Personal.LastName)
	v.Required("personalInfo.email", e.Personal.Email)
	if e.Personal.Email != "" && !strings.Contains(e.Personal.Email, "@") {
		v.Add("personalInfo.email", "must be a valid email address")
	}
	v.Required("employmentDetails.department", e.Employment.DepartmentID)
	v.Required("employmentDetails.designation", e.Employment.Designation)
	v.Enum("employmentDetails.employeeType", e.Employment.EmployeeType, EmployeeTypes)
	v.Required("employmentDetails.employeeType", e.Employment.EmployeeType)
	if e.Employment.JoiningDate.IsZero() {
		v.Add("employmentDetails.joiningDate", "is required")
	}
	v.Enum("employmentDetails.workLocation", e.Employment.WorkLocation, WorkLocations)
	v.Required("employmentDetails.workLocation", e.Employment.WorkLocation)
	if e.Employment.ProbationMonths < 0 {
		v.Add("employmentDetails.probationPeriod", "must not be negative")
	}
	if e.Employment.ReportingManagerID != "" && e.Employment.ReportingManagerID == e.ID {
		v.Add("employmentDetails.reportingManager", "must not reference the employee itself")
	}
	v.NonNegative("salaryInfo.basicSalary", e.Salary.BasicSalary)
	v.NonNegative("salaryInfo.allowances.hra", e.Salary.Allowances.HRA)
	v.NonNegative("salaryInfo.allowances.transport", e.Salary.Allowances.Transport)
	v.NonNegative("salaryInfo.allowances.medical", e.Salary.Allowances.Medical)
	v.NonNegative("salaryInfo.allowances.special", e.Salary.Allowances.Special)
	v.NonNegative("salaryInfo.deductions.providentFund", e.Salary.Deductions.ProvidentFund)
	v.NonNegative("salaryInfo.deductions.tax", e.Salary.Deductions.Tax)
	v.NonNegative("salaryInfo.deductions.insurance", e.Salary.Deductions.Insurance)
	v.Enum("status", e.Status, Statuses)
	if e.Status == StatusTerminated && e.Termination == nil {
		v.Add("terminationDetails", "is required when status is Terminated")
	}
	for key, balance := range e.LeaveBalance {
		if balance < 0 {
			v.Add("leaveBalance."+key, "must not be negative")
		}
	}
	return v.Err()
}

// DetectManagerCycle walks the reporting chain from managerID upward and
// reports whether employeeID is reachable, which would close a cycle.
// managerOf resolves an employee id to its manager id ("" terminates).
func DetectManagerCycle(employeeID, managerID string, managerOf func(string) (string, error)) (bool, error) {
	const maxDepth = 100
	current := managerID
	for depth := 0; current != "" && depth < maxDepth; depth++ {
		if current == employeeID {
			return true, nil
		}
		next, err := managerOf(current)
		if err != nil {
			return false, err
		}
		current = next
	}
	return false, nil
}
