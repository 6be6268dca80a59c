package payroll

import (
	"fmt"
	"math"

	"hrstore/internal/store"
)

// tolerance for comparing caller-supplied totals against itemized sums.
const tolerance = 0.005

// Reconcile verifies that the stored monetary totals equal the sums of
// their itemized components. Upstream computation happens in the payroll
// collaborator; this is the write-time consistency gate.
func Reconcile(s Salary) error {
	v := store.NewValidator()
	v.Required("employee", s.EmployeeID)
	if s.Month < 1 || s.Month > 12 {
		v.Add("month", "must be between 1 and 12")
	}
	if s.Year < 2000 || s.Year > 2200 {
		v.Add("year", "must be a plausible calendar year")
	}
	v.NonNegative("earnings.basic", s.Earnings.Basic)
	v.NonNegative("deductions.providentFund", s.Deductions.ProvidentFund)
	if s.Summary.WorkingDays < 0 || s.Summary.PresentDays < 0 || s.Summary.AbsentDays < 0 ||
		s.Summary.LeaveDays < 0 || s.Summary.HalfDays < 0 {
		v.Add("attendanceSummary", "day counts must not be negative")
	}
	if err := v.Err(); err != nil {
		return err
	}

	if math.Abs(s.GrossSalary-s.Earnings.Total()) > tolerance {
		return store.Invalid("grossSalary",
			fmt.Sprintf("must equal the itemized earnings sum %.2f", s.Earnings.Total()))
	}
	if math.Abs(s.TotalDeductions-s.Deductions.Total()) > tolerance {
		return store.Invalid("totalDeductions",
			fmt.Sprintf("must equal the itemized deductions sum %.2f", s.Deductions.Total()))
	}
	if math.Abs(s.NetSalary-(s.GrossSalary-s.TotalDeductions)) > tolerance {
		return store.Invalid("netSalary", "must equal grossSalary - totalDeductions")
	}
	return nil
}

// paymentTransitions: On Hold is a side-state reachable from Pending and
// Processing and resumable to Processing; Paid is terminal.
var paymentTransitions = map[string][]string{
	PaymentPending:    {PaymentProcessing, PaymentOnHold},
	PaymentProcessing: {PaymentPaid, PaymentOnHold},
	PaymentOnHold:     {PaymentProcessing},
	PaymentPaid:       {},
}

func CanTransitionPayment(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var emailTransitions = map[string][]string{
	EmailNotSent: {EmailSent},
	EmailSent:    {EmailFailed, EmailBounced},
	EmailFailed:  {},
	EmailBounced: {},
}

func CanTransitionEmail(from, to string) bool {
	for _, next := range emailTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
