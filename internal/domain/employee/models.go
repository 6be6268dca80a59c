package employee

import (
	"context"
	"time"
)

var (
	EmployeeTypes = []string{"Full-Time", "Part-Time", "Contract", "Intern"}
	WorkLocations = []string{"Office", "Remote", "Hybrid"}
	Statuses      = []string{StatusActive, StatusOnLeave, StatusSuspended, StatusTerminated}
)

const (
	StatusActive     = "Active"
	StatusOnLeave    = "On Leave"
	StatusSuspended  = "Suspended"
	StatusTerminated = "Terminated"
)

type Employee struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employeeId"`
	Personal     PersonalInfo       `json:"personalInfo"`
	Employment   EmploymentDetails  `json:"employmentDetails"`
	Salary       SalaryInfo         `json:"salaryInfo"`
	Biometric    BiometricInfo      `json:"biometricInfo"`
	Status       string             `json:"status"`
	Termination  *Termination       `json:"terminationDetails,omitempty"`
	Documents    []Document         `json:"documents"`
	LeaveBalance map[string]float64 `json:"leaveBalance"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type PersonalInfo struct {
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	DateOfBirth      *time.Time       `json:"dateOfBirth,omitempty"`
	Gender           string           `json:"gender,omitempty"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type EmploymentDetails struct {
	DepartmentID       string     `json:"department"`
	Designation        string     `json:"designation"`
	EmployeeType       string     `json:"employeeType"`
	JoiningDate        time.Time  `json:"joiningDate"`
	ConfirmationDate   *time.Time `json:"confirmationDate,omitempty"`
	ProbationMonths    int        `json:"probationPeriod,omitempty"`
	ReportingManagerID string     `json:"reportingManager,omitempty"`
	WorkLocation       string     `json:"workLocation"`
}

type SalaryInfo struct {
	BasicSalary float64     `json:"basicSalary"`
	Allowances  Allowances  `json:"allowances"`
	Deductions  Deductions  `json:"deductions"`
	Bank        BankDetails `json:"bankDetails"`
}

type Allowances struct {
	HRA       float64 `json:"hra"`
	Transport float64 `json:"transport"`
	Medical   float64 `json:"medical"`
	Special   float64 `json:"special"`
}

type Deductions struct {
	ProvidentFund float64 `json:"providentFund"`
	Tax           float64 `json:"tax"`
	Insurance     float64 `json:"insurance"`
}

type BankDetails struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	BranchCode    string `json:"branchCode,omitempty"`
}

type BiometricInfo struct {
	BiometricID string     `json:"biometricId,omitempty"`
	Registered  bool       `json:"isRegistered"`
	LastSync    *time.Time `json:"lastSync,omitempty"`
}

type Termination struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

type Document struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Patch keys mirror the entity representation so a partial update can be
// written with the same field names a read returns.
type Patch struct {
	Personal          *PersonalInfo       `json:"personalInfo"`
	Employment        *EmploymentDetails  `json:"employmentDetails"`
	Salary            *SalaryInfo         `json:"salaryInfo"`
	Biometric         *BiometricInfo      `json:"biometricInfo"`
	Status            *string             `json:"status"`
	Termination       *Termination        `json:"terminationDetails"`
	Documents         *[]Document         `json:"documents"`
	LeaveBalance      *map[string]float64 `json:"leaveBalance"`
	ExpectedUpdatedAt *time.Time          `json:"expectedUpdatedAt"`
}

// Defaults supplies configured starting values for new employees. The leave
// balance is resolved per create so a leave_policy change takes effect
// without a restart.
type Defaults struct {
	LeaveBalance func(ctx context.Context) map[string]float64
}
