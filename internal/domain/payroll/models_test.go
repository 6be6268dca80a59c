package payroll

import (
	"encoding/json"
	"testing"
)

func TestSalaryPatchDecodesEntityKeys(t *testing.T) {
	raw := `{
		"earnings": {"basic": 50000, "bonus": 2500},
		"deductions": {"tax": 4800},
		"attendanceSummary": {"workingDays": 22, "presentDays": 20},
		"grossSalary": 52500,
		"totalDeductions": 4800,
		"netSalary": 47700,
		"paymentRef": "TXN-2026-03-0042"
	}`

	var patch SalaryPatch
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		t.Fatalf("failed to decode patch: %v", err)
	}
	if patch.Earnings == nil || patch.Earnings.Bonus != 2500 {
		t.Fatalf("expected earnings to decode, got %+v", patch.Earnings)
	}
	if patch.Deductions == nil || patch.Deductions.Tax != 4800 {
		t.Fatalf("expected deductions to decode, got %+v", patch.Deductions)
	}
	if patch.Summary == nil || patch.Summary.WorkingDays != 22 {
		t.Fatalf("expected attendanceSummary to decode, got %+v", patch.Summary)
	}
	if patch.NetSalary == nil || *patch.NetSalary != 47700 {
		t.Fatalf("expected netSalary to decode, got %v", patch.NetSalary)
	}
	if patch.PaymentRef == nil || *patch.PaymentRef != "TXN-2026-03-0042" {
		t.Fatalf("expected paymentRef to decode, got %v", patch.PaymentRef)
	}
}
