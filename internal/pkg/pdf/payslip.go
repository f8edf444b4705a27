package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/payroll"
)

// RenderPayslip renders a settled payslip as a single-page A4 PDF.
func RenderPayslip(p payroll.Payslip, employeeName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.Cell(190, 10, "Payslip")
	doc.Ln(8)

	doc.SetFont("Arial", "", 11)
	doc.Cell(190, 8, fmt.Sprintf("%s - %s %d", employeeName, time.Month(p.Month+1), p.Year))
	doc.Ln(6)
	doc.Cell(190, 8, fmt.Sprintf("Generated %s", p.GeneratedAt.Format("2006-01-02")))
	doc.Ln(12)

	line := func(label, value string) {
		doc.SetFont("Arial", "", 11)
		doc.Cell(95, 8, label)
		doc.CellFormat(60, 8, value, "", 0, "R", false, 0, "")
		doc.Ln(8)
	}

	line("Base salary", p.BaseSalary.StringFixed(2))
	line("Tax deduction", p.TaxDeduction.Neg().StringFixed(2))
	line(fmt.Sprintf("Leave deduction (%.1f CL / %.1f SL unpaid)", p.UnpaidCasualDays, p.UnpaidSickDays),
		p.LeaveDeduction.Neg().StringFixed(2))
	line(fmt.Sprintf("Late deduction (%.1f days)", p.LateDays), p.LateDeduction.Neg().StringFixed(2))
	line("Reimbursements", p.ReimbursementTotal.StringFixed(2))

	doc.Ln(4)
	doc.SetFont("Arial", "B", 12)
	doc.Cell(95, 10, "Net salary")
	doc.CellFormat(60, 10, p.NetSalary.StringFixed(2), "T", 0, "R", false, 0, "")
	doc.Ln(14)

	doc.SetFont("Arial", "I", 9)
	doc.Cell(190, 6, fmt.Sprintf("Leave taken: %.1f casual, %.1f sick, %d half-day", p.CasualDays, p.SickDays, p.HalfDayCount))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
