package leave

import "time"

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

var (
	Types    = []string{"Casual", "Sick", "Earned", "Maternity", "Paternity", "Unpaid"}
	Statuses = []string{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
)

type Leave struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee"`
	LeaveType       string     `json:"leaveType"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         time.Time  `json:"endDate"`
	NumberOfDays    float64    `json:"numberOfDays"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	AppliedOn       time.Time  `json:"appliedOn"`
	ApproverID      string     `json:"approvedBy,omitempty"`
	DecidedAt       *time.Time `json:"decidedAt,omitempty"`
	DecisionComment string     `json:"decisionComment,omitempty"`
	Documents       []Document `json:"documents"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Policy carries the leave_policy and holiday_calendar settings needed to
// recompute numberOfDays at write time.
type Policy struct {
	ExcludeWeekends bool
	ExcludeHolidays bool
	Holidays        []time.Time
}
