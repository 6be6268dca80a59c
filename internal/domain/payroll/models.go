package payroll

import "time"

const (
	PaymentPending    = "Pending"
	PaymentProcessing = "Processing"
	PaymentPaid       = "Paid"
	PaymentOnHold     = "On Hold"

	EmailNotSent = "Not Sent"
	EmailSent    = "Sent"
	EmailFailed  = "Failed"
	EmailBounced = "Bounced"
)

var (
	PaymentStatuses = []string{PaymentPending, PaymentProcessing, PaymentPaid, PaymentOnHold}
	EmailStatuses   = []string{EmailNotSent, EmailSent, EmailFailed, EmailBounced}
)

type Earnings struct {
	Basic     float64 `json:"basic"`
	HRA       float64 `json:"hra"`
	Transport float64 `json:"transport"`
	Medical   float64 `json:"medical"`
	Special   float64 `json:"special"`
	Overtime  float64 `json:"overtime"`
	Bonus     float64 `json:"bonus"`
}

func (e Earnings) Total() float64 {
	return e.Basic + e.HRA + e.Transport + e.Medical + e.Special + e.Overtime + e.Bonus
}

type Deductions struct {
	ProvidentFund float64 `json:"providentFund"`
	Tax           float64 `json:"tax"`
	Insurance     float64 `json:"insurance"`
	Loan          float64 `json:"loan"`
	UnpaidLeave   float64 `json:"unpaidLeave"`
}

func (d Deductions) Total() float64 {
	return d.ProvidentFund + d.Tax + d.Insurance + d.Loan + d.UnpaidLeave
}

// AttendanceSummary is a point-in-time snapshot taken by the payroll
// collaborator when the record is written; it is not recomputed here.
type AttendanceSummary struct {
	WorkingDays int `json:"workingDays"`
	PresentDays int `json:"presentDays"`
	AbsentDays  int `json:"absentDays"`
	LeaveDays   int `json:"leaveDays"`
	HalfDays    int `json:"halfDays"`
}

type Salary struct {
	ID              string            `json:"id"`
	EmployeeID      string            `json:"employee"`
	Month           int               `json:"month"`
	Year            int               `json:"year"`
	Earnings        Earnings          `json:"earnings"`
	Deductions      Deductions        `json:"deductions"`
	Summary         AttendanceSummary `json:"attendanceSummary"`
	GrossSalary     float64           `json:"grossSalary"`
	TotalDeductions float64           `json:"totalDeductions"`
	NetSalary       float64           `json:"netSalary"`
	PaymentStatus   string            `json:"paymentStatus"`
	PaidAt          *time.Time        `json:"paidAt,omitempty"`
	PaymentRef      string            `json:"paymentRef,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// SalaryPatch keys mirror the entity representation so a partial update can
// be written with the same field names a read returns.
type SalaryPatch struct {
	Earnings          *Earnings          `json:"earnings"`
	Deductions        *Deductions        `json:"deductions"`
	Summary           *AttendanceSummary `json:"attendanceSummary"`
	GrossSalary       *float64           `json:"grossSalary"`
	TotalDeductions   *float64           `json:"totalDeductions"`
	NetSalary         *float64           `json:"netSalary"`
	PaymentRef        *string            `json:"paymentRef"`
	ExpectedUpdatedAt *time.Time         `json:"expectedUpdatedAt"`
}

type Download struct {
	At time.Time `json:"at"`
	By string    `json:"by"`
}

type SalarySlip struct {
	ID            string     `json:"id"`
	SalaryID      string     `json:"salary"`
	EmployeeID    string     `json:"employee"`
	SlipNumber    string     `json:"slipNumber"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	FileURL       string     `json:"fileUrl"`
	EmailStatus   string     `json:"emailStatus"`
	EmailSentAt   *time.Time `json:"emailSentAt,omitempty"`
	EmailError    string     `json:"emailError,omitempty"`
	Downloads     []Download `json:"downloads"`
	DownloadCount int        `json:"downloadCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
