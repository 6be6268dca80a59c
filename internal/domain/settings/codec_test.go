package settings

import (
	"encoding/json"
	"testing"

	"hrstore/internal/store"
)

func TestDecodePayloadTyped(t *testing.T) {
	data := json.RawMessage(`{"startTime":"08:30","endTime":"17:30","graceMinutes":15}`)
	if err := decodePayload(CategoryWorkingHours, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodePayloadRejectsUnknownField(t *testing.T) {
	data := json.RawMessage(`{"startTime":"08:30","bogus":true}`)
	err := decodePayload(CategoryWorkingHours, data)
	if err == nil {
		t.Fatal("expected unknown field to fail")
	}
	if !store.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodePayloadUnknownCategory(t *testing.T) {
	data := json.RawMessage(`{"anything":"goes"}`)
	if err := decodePayload("branding", data); err != nil {
		t.Fatalf("raw categories must accept objects, got %v", err)
	}

	if err := decodePayload("branding", json.RawMessage(`"scalar"`)); err == nil {
		t.Fatal("raw categories must still be JSON objects")
	}
}

func TestWorkingHoursDefaults(t *testing.T) {
	s := Setting{Category: CategoryWorkingHours, Data: json.RawMessage(`{}`)}
	wh, err := s.WorkingHours()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wh.StartTime != "09:00" || wh.EndTime != "18:00" || wh.GraceMinutes != 10 {
		t.Fatalf("unexpected defaults %+v", wh)
	}
}

func TestAttendanceRulesOverride(t *testing.T) {
	s := Setting{Data: json.RawMessage(`{"halfDayHours":3,"fullDayHours":7,"overtimeAfterHours":8}`)}
	ar, err := s.AttendanceRules()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ar.HalfDayHours != 3 || ar.FullDayHours != 7 || ar.OvertimeAfterHours != 8 {
		t.Fatalf("unexpected rules %+v", ar)
	}
}

func TestLeavePolicyRoundtrip(t *testing.T) {
	s := Setting{Data: json.RawMessage(`{"excludeWeekends":false,"excludeHolidays":true,"defaultBalances":{"Casual Leave":7}}`)}
	lp, err := s.LeavePolicy()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.ExcludeWeekends {
		t.Fatal("expected weekends included")
	}
	if lp.DefaultBalances["Casual Leave"] != 7 {
		t.Fatalf("unexpected balances %+v", lp.DefaultBalances)
	}
}

func TestParseClock(t *testing.T) {
	minute, err := parseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minute != 570 {
		t.Fatalf("expected 570, got %d", minute)
	}

	if _, err := parseClock("9am"); err == nil {
		t.Fatal("expected parse failure")
	}
}
