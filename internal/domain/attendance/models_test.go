package attendance

import (
	"encoding/json"
	"testing"
)

func TestPatchDecodesEntityKeys(t *testing.T) {
	raw := `{
		"checkIn": {"time": "2026-03-02T09:05:00Z", "source": "Manual"},
		"checkOut": {"time": "2026-03-02T18:00:00Z", "source": "Manual"},
		"workType": "Remote",
		"status": "Present",
		"overtimeApproved": true,
		"approvedBy": "8f1f38f2-52e7-4f7a-9a2a-3c1df6b7c111"
	}`

	var patch Patch
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		t.Fatalf("failed to decode patch: %v", err)
	}
	if patch.CheckIn == nil || patch.CheckIn.Source != SourceManual {
		t.Fatalf("expected checkIn to decode, got %+v", patch.CheckIn)
	}
	if patch.CheckOut == nil || patch.CheckOut.Time.Hour() != 18 {
		t.Fatalf("expected checkOut to decode, got %+v", patch.CheckOut)
	}
	if patch.WorkType == nil || *patch.WorkType != "Remote" {
		t.Fatalf("expected workType to decode, got %v", patch.WorkType)
	}
	if patch.OvertimeApproved == nil || !*patch.OvertimeApproved {
		t.Fatalf("expected overtimeApproved to decode, got %v", patch.OvertimeApproved)
	}
	if patch.ApprovedByID == nil || *patch.ApprovedByID == "" {
		t.Fatalf("expected approvedBy to decode, got %v", patch.ApprovedByID)
	}
}
