package settings

import (
	"bytes"
	"encoding/json"
	"fmt"

	"hrstore/internal/store"
)

// decodePayload enforces the typed shape for known categories; unknown
// categories pass through as long as the payload is a JSON object.
func decodePayload(category string, data json.RawMessage) error {
	var target any
	switch category {
	case CategoryWorkingHours:
		target = &WorkingHours{}
	case CategoryLeavePolicy:
		target = &LeavePolicy{}
	case CategoryAttendanceRules:
		target = &AttendanceRules{}
	case CategoryHolidayCalendar:
		target = &HolidayCalendar{}
	case CategoryPayroll:
		target = &Payroll{}
	default:
		target = &map[string]any{}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return store.Invalid("data", fmt.Sprintf("invalid payload for category %s: %v", category, err))
	}
	return nil
}

func (s Setting) WorkingHours() (WorkingHours, error) {
	out := WorkingHours{StartTime: "09:00", EndTime: "18:00", GraceMinutes: 10}
	return out, json.Unmarshal(s.Data, &out)
}

func (s Setting) AttendanceRules() (AttendanceRules, error) {
	out := AttendanceRules{HalfDayHours: 4, FullDayHours: 8, OvertimeAfterHours: 9}
	return out, json.Unmarshal(s.Data, &out)
}

func (s Setting) LeavePolicy() (LeavePolicy, error) {
	out := LeavePolicy{ExcludeWeekends: true, ExcludeHolidays: true}
	return out, json.Unmarshal(s.Data, &out)
}

func (s Setting) HolidayCalendar() (HolidayCalendar, error) {
	var out HolidayCalendar
	return out, json.Unmarshal(s.Data, &out)
}

func (s Setting) Payroll() (Payroll, error) {
	var out Payroll
	return out, json.Unmarshal(s.Data, &out)
}
