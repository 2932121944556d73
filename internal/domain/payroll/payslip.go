package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"paie/internal/platform/format"
)

// RenderPayslip draws the summary as an A4 payslip and returns the PDF bytes.
// Nothing is written to disk.
func (s *Service) RenderPayslip(in PayrollInputs, summary PayrollSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Bulletin de paie", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Bulletin de paie")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Base: %sh × %s/h = %s", number(in.HoursWorked), format.Euro(in.HourlyRate), format.Euro(summary.Gross.BasePay))))
	pdf.Ln(6)
	if summary.Gross.Overtime25Amount != 0 {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Heures sup. 25%% (%sh): %s", number(in.Overtime25h), format.Euro(summary.Gross.Overtime25Amount))))
		pdf.Ln(6)
	}
	if summary.Gross.Overtime50Amount != 0 {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Heures sup. 50%% (%sh): %s", number(in.Overtime50h), format.Euro(summary.Gross.Overtime50Amount))))
		pdf.Ln(6)
	}
	if summary.Gross.BenefitsInKind != 0 {
		pdf.Cell(0, 7, tr("Avantages en nature: "+format.Euro(summary.Gross.BenefitsInKind)))
		pdf.Ln(6)
	}
	if summary.Gross.Bonuses != 0 {
		pdf.Cell(0, 7, tr("Primes: "+format.Euro(summary.Gross.Bonuses)))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, tr("Salaire brut: "+format.Euro(summary.GrossPay)))
	pdf.Ln(10)

	writePayslipTable(pdf, tr, "Cotisations salariales", summary.EmployeeContributions, summary.TotalEmployee)
	writePayslipTable(pdf, tr, "Cotisations patronales", summary.EmployerContributions, summary.TotalEmployer)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range [][2]string{
		{"Net avant impôt", format.Euro(summary.NetBeforeTax)},
		{fmt.Sprintf("Impôt sur le revenu (%s%%)", number(in.TaxRatePercent)), format.Euro(summary.IncomeTax)},
		{"Net à payer", format.Euro(summary.NetPay)},
		{"Coût total employeur", format.Euro(summary.TotalEmployerCost)},
	} {
		pdf.CellFormat(120, 7, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(row[1]), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func writePayslipTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, lines []ContributionResult, total float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Cotisation", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Base", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Taux", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Montant", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.CellFormat(70, 6, tr(line.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(format.Euro(line.Base)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, format.Percent(line.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(format.Euro(line.Amount)), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(135, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, tr(format.Euro(total)), "1", 1, "R", false, 0, "")
	pdf.Ln(6)
}
