package settings

import (
	"encoding/json"
	"time"
)

const (
	CategoryWorkingHours    = "working_hours"
	CategoryLeavePolicy     = "leave_policy"
	CategoryAttendanceRules = "attendance_rules"
	CategoryHolidayCalendar = "holiday_calendar"
	CategoryPayroll         = "payroll"
)

// Categories with a typed payload. Other categories are stored and served
// as raw JSON.
var Categories = []string{
	CategoryWorkingHours, CategoryLeavePolicy, CategoryAttendanceRules,
	CategoryHolidayCalendar, CategoryPayroll,
}

// Setting is one configuration document, unique per category.
type Setting struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Data      json.RawMessage `json:"data"`
	UpdatedBy string          `json:"updatedBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type WorkingHours struct {
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "18:00"
	GraceMinutes int    `json:"graceMinutes"`
}

type AttendanceRules struct {
	HalfDayHours       float64 `json:"halfDayHours"`
	FullDayHours       float64 `json:"fullDayHours"`
	OvertimeAfterHours float64 `json:"overtimeAfterHours"`
}

type LeavePolicy struct {
	ExcludeWeekends bool               `json:"excludeWeekends"`
	ExcludeHolidays bool               `json:"excludeHolidays"`
	DefaultBalances map[string]float64 `json:"defaultBalances,omitempty"`
}

type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

type HolidayCalendar struct {
	Holidays []Holiday `json:"holidays"`
}

type Payroll struct {
	Currency          string  `json:"currency"`
	PayDay            int     `json:"payDay"`
	ProvidentFundRate float64 `json:"providentFundRate"`
}
