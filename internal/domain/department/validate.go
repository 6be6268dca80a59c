package department

import (
	"strings"

	"hrstore/internal/store"
)

// Normalize upper-cases the business identifier and trims free-text fields.
func (d *Department) Normalize() {
	d.DepartmentID = strings.ToUpper(strings.TrimSpace(d.DepartmentID))
	d.Name = strings.TrimSpace(d.Name)
	d.CustomName = strings.TrimSpace(d.CustomName)
	d.Description = strings.TrimSpace(d.Description)
}

func (d Department) Validate() error {
	v := store.NewValidator()
	v.Required("departmentId", d.DepartmentID)
	v.Required("name", d.Name)
	v.Enum("name", d.Name, Names)
	if d.Name == NameOther && d.CustomName == "" {
		v.Add("customName", "is required when name is Other")
	}
	if d.Name != NameOther && d.CustomName != "" {
		v.Add("customName", "only allowed when name is Other")
	}
	if d.EmployeeCount < 0 {
		v.Add("employeeCount", "must not be negative")
	}
	return v.Err()
}
