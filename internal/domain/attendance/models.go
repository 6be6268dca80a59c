package attendance

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half Day"
	StatusLate    = "Late"
	StatusOnLeave = "On Leave"
	StatusHoliday = "Holiday"
	StatusWeekend = "Weekend"

	SourceBiometric = "Biometric"
	SourceManual    = "Manual"
	SourceMobile    = "Mobile"
	SourceWeb       = "Web"
)

var (
	Statuses  = []string{StatusPresent, StatusAbsent, StatusHalfDay, StatusLate, StatusOnLeave, StatusHoliday, StatusWeekend}
	Sources   = []string{SourceBiometric, SourceManual, SourceMobile, SourceWeb}
	WorkTypes = []string{"Office", "Remote", "Field"}
)

type Attendance struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee"`
	Date             time.Time  `json:"date"`
	CheckIn          *Check     `json:"checkIn,omitempty"`
	CheckOut         *Check     `json:"checkOut,omitempty"`
	Breaks           []Break    `json:"breaks"`
	TotalWorkHours   float64    `json:"totalWorkHours"`
	TotalBreakHours  float64    `json:"totalBreakTime"`
	WorkType         string     `json:"workType"`
	Status           string     `json:"status"`
	IsLate           bool       `json:"isLate"`
	LateByMinutes    int        `json:"lateByMinutes"`
	LeftEarly        bool       `json:"leftEarly"`
	EarlyByMinutes   int        `json:"earlyByMinutes"`
	OvertimeHours    float64    `json:"overtimeHours"`
	OvertimeApproved bool       `json:"overtimeApproved"`
	ApprovedByID     string     `json:"approvedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Check is one side of the day's in/out pair.
type Check struct {
	Time     time.Time `json:"time"`
	Location string    `json:"location,omitempty"`
	Source   string    `json:"source"`
	Address  string    `json:"address,omitempty"`
}

type Break struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	DurationMinutes float64    `json:"durationMinutes"`
}

// Patch keys mirror the entity representation so a partial update can be
// written with the same field names a read returns.
type Patch struct {
	CheckIn           *Check     `json:"checkIn"`
	CheckOut          *Check     `json:"checkOut"`
	Breaks            *[]Break   `json:"breaks"`
	WorkType          *string    `json:"workType"`
	Status            *string    `json:"status"`
	OvertimeApproved  *bool      `json:"overtimeApproved"`
	ApprovedByID      *string    `json:"approvedBy"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}

// DayRules are the policy inputs for deriving totals and flags, sourced from
// the working_hours and attendance_rules settings categories.
type DayRules struct {
	StartMinute        int     // minutes from midnight, e.g. 540 for 09:00
	EndMinute          int     // e.g. 1080 for 18:00
	GraceMinutes       int
	HalfDayHours       float64
	FullDayHours       float64
	OvertimeAfterHours float64
}

func DefaultDayRules() DayRules {
	return DayRules{
		StartMinute:        9 * 60,
		EndMinute:          18 * 60,
		GraceMinutes:       10,
		HalfDayHours:       4,
		FullDayHours:       8,
		OvertimeAfterHours: 9,
	}
}

// DateOnly truncates a timestamp to its UTC calendar date, the granularity
// of the (employee, date) uniqueness invariant.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
