package payroll

import (
	"errors"
	"testing"

	"hrstore/internal/store"
)

func validSalary() Salary {
	earnings := Earnings{Basic: 3000, HRA: 600, Transport: 200, Medical: 100, Special: 100}
	deductions := Deductions{ProvidentFund: 300, Tax: 400, Insurance: 100}
	return Salary{
		EmployeeID:      "6f0a",
		Month:           4,
		Year:            2025,
		Earnings:        earnings,
		Deductions:      deductions,
		GrossSalary:     earnings.Total(),
		TotalDeductions: deductions.Total(),
		NetSalary:       earnings.Total() - deductions.Total(),
	}
}

func TestReconcileValid(t *testing.T) {
	if err := Reconcile(validSalary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReconcileGrossMismatch(t *testing.T) {
	s := validSalary()
	s.GrossSalary += 10

	err := Reconcile(s)
	if err == nil {
		t.Fatal("expected gross mismatch to fail")
	}
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Issues[0].Field != "grossSalary" {
		t.Fatalf("expected grossSalary issue, got %s", verr.Issues[0].Field)
	}
}

func TestReconcileNetMismatch(t *testing.T) {
	s := validSalary()
	s.NetSalary -= 5

	if err := Reconcile(s); err == nil {
		t.Fatal("expected net mismatch to fail")
	}
}

func TestReconcileWithinTolerance(t *testing.T) {
	s := validSalary()
	s.NetSalary += 0.004

	if err := Reconcile(s); err != nil {
		t.Fatalf("sub-tolerance drift must pass, got %v", err)
	}
}

func TestReconcileBadMonth(t *testing.T) {
	s := validSalary()
	s.Month = 13

	if err := Reconcile(s); err == nil {
		t.Fatal("expected month 13 to fail")
	}
}

func TestPaymentTransitions(t *testing.T) {
	allowed := [][2]string{
		{PaymentPending, PaymentProcessing},
		{PaymentPending, PaymentOnHold},
		{PaymentProcessing, PaymentPaid},
		{PaymentProcessing, PaymentOnHold},
		{PaymentOnHold, PaymentProcessing},
	}
	for _, pair := range allowed {
		if !CanTransitionPayment(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	if CanTransitionPayment(PaymentPaid, PaymentProcessing) {
		t.Fatal("Paid must be terminal")
	}
	if CanTransitionPayment(PaymentPending, PaymentPaid) {
		t.Fatal("Pending must not jump straight to Paid")
	}
}

func TestEmailTransitions(t *testing.T) {
	if !CanTransitionEmail(EmailNotSent, EmailSent) {
		t.Fatal("expected Not Sent -> Sent")
	}
	if !CanTransitionEmail(EmailSent, EmailBounced) {
		t.Fatal("expected Sent -> Bounced")
	}
	if CanTransitionEmail(EmailFailed, EmailSent) {
		t.Fatal("Failed must be terminal")
	}
}

func TestEarningsAndDeductionsTotals(t *testing.T) {
	e := Earnings{Basic: 1, HRA: 2, Transport: 3, Medical: 4, Special: 5, Overtime: 6, Bonus: 7}
	if e.Total() != 28 {
		t.Fatalf("expected 28, got %v", e.Total())
	}
	d := Deductions{ProvidentFund: 1, Tax: 2, Insurance: 3, Loan: 4, UnpaidLeave: 5}
	if d.Total() != 15 {
		t.Fatalf("expected 15, got %v", d.Total())
	}
}
