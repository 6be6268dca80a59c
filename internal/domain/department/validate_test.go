package department

import "testing"

func TestValidateOK(t *testing.T) {
	d := Department{DepartmentID: "ENG", Name: "Engineering"}
	d.Normalize()
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeUppercasesID(t *testing.T) {
	d := Department{DepartmentID: " eng ", Name: "Engineering"}
	d.Normalize()
	if d.DepartmentID != "ENG" {
		t.Fatalf("expected ENG, got %q", d.DepartmentID)
	}
}

func TestValidateUnknownName(t *testing.T) {
	d := Department{DepartmentID: "X1", Name: "Astrology"}
	if err := d.Validate(); err == nil {
		t.Fatal("expected unknown name to fail")
	}
}

func TestValidateCustomNameRules(t *testing.T) {
	d := Department{DepartmentID: "OTH", Name: NameOther}
	if err := d.Validate(); err == nil {
		t.Fatal("Other without customName must fail")
	}

	d.CustomName = "Facilities"
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d = Department{DepartmentID: "ENG", Name: "Engineering", CustomName: "Facilities"}
	if err := d.Validate(); err == nil {
		t.Fatal("customName outside Other must fail")
	}
}

func TestValidateNegativeCount(t *testing.T) {
	d := Department{DepartmentID: "ENG", Name: "Engineering", EmployeeCount: -1}
	if err := d.Validate(); err == nil {
		t.Fatal("expected negative employeeCount to fail")
	}
}
