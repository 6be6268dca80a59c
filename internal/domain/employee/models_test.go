package employee

import (
	"encoding/json"
	"testing"
)

func TestPatchDecodesEntityKeys(t *testing.T) {
	raw := `{
		"personalInfo": {"firstName": "Asha", "lastName": "Rao", "email": "asha.rao@example.com"},
		"employmentDetails": {"designation": "Engineer II"},
		"salaryInfo": {"basicSalary": 52000},
		"biometricInfo": {"biometricId": "BIO-0042"},
		"terminationDetails": {"reason": "resigned"},
		"status": "Active",
		"leaveBalance": {"Casual Leave": 8}
	}`

	var patch Patch
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		t.Fatalf("failed to decode patch: %v", err)
	}
	if patch.Personal == nil || patch.Personal.FirstName != "Asha" {
		t.Fatalf("expected personalInfo to decode, got %+v", patch.Personal)
	}
	if patch.Employment == nil || patch.Employment.Designation != "Engineer II" {
		t.Fatalf("expected employmentDetails to decode, got %+v", patch.Employment)
	}
	if patch.Salary == nil || patch.Salary.BasicSalary != 52000 {
		t.Fatalf("expected salaryInfo to decode, got %+v", patch.Salary)
	}
	if patch.Biometric == nil || patch.Biometric.BiometricID != "BIO-0042" {
		t.Fatalf("expected biometricInfo to decode, got %+v", patch.Biometric)
	}
	if patch.Termination == nil || patch.Termination.Reason != "resigned" {
		t.Fatalf("expected terminationDetails to decode, got %+v", patch.Termination)
	}
	if patch.Status == nil || *patch.Status != "Active" {
		t.Fatalf("expected status to decode, got %v", patch.Status)
	}
	if patch.LeaveBalance == nil || (*patch.LeaveBalance)["Casual Leave"] != 8 {
		t.Fatalf("expected leaveBalance to decode, got %v", patch.LeaveBalance)
	}
}
