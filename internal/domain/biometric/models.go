package biometric

import "time"

const (
	TypeCheckIn  = "CheckIn"
	TypeCheckOut = "CheckOut"
	TypeBreakIn  = "BreakIn"
	TypeBreakOut = "BreakOut"
)

var LogTypes = []string{TypeCheckIn, TypeCheckOut, TypeBreakIn, TypeBreakOut}

// Device carries whatever metadata the capture hardware reported.
type Device struct {
	DeviceID string `json:"deviceId,omitempty"`
	Model    string `json:"model,omitempty"`
	Location string `json:"location,omitempty"`
	IP       string `json:"ip,omitempty"`
}

// Log is one raw punch event from a biometric device. EmployeeID is empty
// until the event has been matched against a registered biometric ID, and
// AttendanceID until reconciliation has folded it into a day record.
type Log struct {
	ID           string         `json:"id"`
	BiometricID  string         `json:"biometricId"`
	EmployeeID   string         `json:"employee,omitempty"`
	LogType      string         `json:"logType"`
	Timestamp    time.Time      `json:"timestamp"`
	Device       Device         `json:"device"`
	Processed    bool           `json:"processed"`
	ProcessedAt  *time.Time     `json:"processedAt,omitempty"`
	ProcessError string         `json:"processError,omitempty"`
	AttendanceID string         `json:"attendance,omitempty"`
	RawPayload   map[string]any `json:"rawPayload,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
