package payroll

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// SlipRenderer writes the salary-slip PDF artifact into a local directory
// and returns its location. Durable file storage beyond this directory is a
// collaborator concern; the store only keeps the reference.
type SlipRenderer struct {
	Dir string
}

func NewSlipRenderer(dir string) *SlipRenderer {
	return &SlipRenderer{Dir: dir}
}

func (r *SlipRenderer) Render(slip SalarySlip, sal Salary, firstName, lastName, email string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(r.Dir, slip.SlipNumber+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Slip: %s", slip.SlipNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", firstName, lastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", sal.Year, sal.Month))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", sal.GrossSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", sal.TotalDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", sal.NetSalary))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Days: %d working, %d present, %d absent, %d leave",
		sal.Summary.WorkingDays, sal.Summary.PresentDays, sal.Summary.AbsentDays, sal.Summary.LeaveDays))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
