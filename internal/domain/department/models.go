package department

import "time"

const NameOther = "Other"

// Names is the fixed set of organizational unit names. Anything outside the
// list must be filed under Other with a CustomName.
var Names = []string{
	"Engineering",
	"Human Resources",
	"Finance",
	"Marketing",
	"Sales",
	"Operations",
	"IT",
	"Administration",
	NameOther,
}

type Department struct {
	ID                 string    `json:"id"`
	DepartmentID       string    `json:"departmentId"`
	Name               string    `json:"name"`
	CustomName         string    `json:"customName,omitempty"`
	Description        string    `json:"description,omitempty"`
	HeadOfDepartmentID string    `json:"headOfDepartment,omitempty"`
	EmployeeCount      int       `json:"employeeCount"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Patch keys mirror the entity representation so a partial update can be
// written with the same field names a read returns.
type Patch struct {
	Name               *string `json:"name"`
	CustomName         *string `json:"customName"`
	Description        *string `json:"description"`
	HeadOfDepartmentID *string `json:"headOfDepartment"`
	IsActive           *bool   `json:"isActive"`
	// ExpectedUpdatedAt enables lost-update detection: when set, the update
	// only applies if the row has not changed since that timestamp.
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}
