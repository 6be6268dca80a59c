package employee

import (
	"testing"
	"time"
)

func validEmployee() Employee {
	return Employee{
		EmployeeID: "EMP001",
		Personal: PersonalInfo{
			FirstName: "Asha",
			LastName:  "Perera",
			Email:     "asha.perera@example.com",
		},
		Employment: EmploymentDetails{
			DepartmentID: "4be2",
			Designation:  "Engineer",
			EmployeeType: "Full-Time",
			JoiningDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			WorkLocation: "Office",
		},
		Status: StatusActive,
	}
}

func TestValidateOK(t *testing.T) {
	emp := validEmployee()
	emp.Normalize()
	if err := emp.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeCaseRules(t *testing.T) {
	emp := validEmployee()
	emp.EmployeeID = " emp001 "
	emp.Personal.Email = "Asha.Perera@Example.COM"
	emp.Normalize()

	if emp.EmployeeID != "EMP001" {
		t.Fatalf("expected upper-cased employee id, got %q", emp.EmployeeID)
	}
	if emp.Personal.Email != "asha.perera@example.com" {
		t.Fatalf("expected lower-cased email, got %q", emp.Personal.Email)
	}
}

func TestValidateMissingFields(t *testing.T) {
	emp := Employee{}
	emp.Normalize()
	if err := emp.Validate(); err == nil {
		t.Fatal("expected empty employee to fail")
	}
}

func TestValidateBadEmail(t *testing.T) {
	emp := validEmployee()
	emp.Personal.Email = "not-an-email"
	if err := emp.Validate(); err == nil {
		t.Fatal("expected bad email to fail")
	}
}

func TestValidateSelfManager(t *testing.T) {
	emp := validEmployee()
	emp.ID = "abc1"
	emp.Employment.ReportingManagerID = "abc1"
	if err := emp.Validate(); err == nil {
		t.Fatal("expected self-reference manager to fail")
	}
}

func TestValidateTerminatedNeedsDetails(t *testing.T) {
	emp := validEmployee()
	emp.Status = StatusTerminated
	if err := emp.Validate(); err == nil {
		t.Fatal("expected Terminated without details to fail")
	}

	emp.Termination = &Termination{Date: time.Now(), Reason: "resigned"}
	if err := emp.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNegativeBalance(t *testing.T) {
	emp := validEmployee()
	emp.LeaveBalance = map[string]float64{"Casual Leave": -1}
	if err := emp.Validate(); err == nil {
		t.Fatal("expected negative balance to fail")
	}
}

func TestDetectManagerCycle(t *testing.T) {
	chain := map[string]string{"b": "c", "c": "d", "d": ""}
	managerOf := func(id string) (string, error) { return chain[id], nil }

	cycle, err := DetectManagerCycle("a", "b", managerOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cycle {
		t.Fatal("expected no cycle in a linear chain")
	}

	chain["d"] = "a"
	cycle, err = DetectManagerCycle("a", "b", managerOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cycle {
		t.Fatal("expected cycle when the chain loops back")
	}
}

func TestDetectManagerCycleSelf(t *testing.T) {
	cycle, err := DetectManagerCycle("a", "a", func(string) (string, error) { return "", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cycle {
		t.Fatal("expected direct self-reference to count as a cycle")
	}
}
