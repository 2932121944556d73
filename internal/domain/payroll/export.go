package payroll

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"paie/internal/platform/format"
)

const (
	summarySheet       = "Synthèse"
	contributionsSheet = "Cotisations"
	euroNumFmt         = `#,##0.00 "€"`
	percentNumFmt      = 10 // built-in 0.00%
)

var exportHeader = []string{"group", "code", "name", "base", "rate", "amount"}

// ExportRow is one contribution line tagged with its group and code.
type ExportRow struct {
	Group  string
	Code   string
	Name   string
	Base   float64
	Rate   float64
	Amount float64
}

// ExportRows flattens both groups of summary, employee lines first. Codes come
// from the schedule; a line the schedule does not know gets an empty code.
func (s Schedule) ExportRows(summary PayrollSummary) []ExportRow {
	rows := make([]ExportRow, 0, len(summary.EmployeeContributions)+len(summary.EmployerContributions))
	appendGroup := func(group string, defs []ContributionDefinition, lines []ContributionResult) {
		codes := make(map[string]string, len(defs))
		for _, def := range defs {
			codes[def.Name] = def.Code
		}
		for _, line := range lines {
			rows = append(rows, ExportRow{
				Group:  group,
				Code:   codes[line.Name],
				Name:   line.Name,
				Base:   line.Base,
				Rate:   line.Rate,
				Amount: line.Amount,
			})
		}
	}
	appendGroup(GroupEmployee, s.Employee, summary.EmployeeContributions)
	appendGroup(GroupEmployer, s.Employer, summary.EmployerContributions)
	return rows
}

// WriteCSV writes the contribution lines with amounts in cents precision.
func (s *Service) WriteCSV(w io.Writer, summary PayrollSummary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range s.schedule.ExportRows(summary) {
		record := []string{
			row.Group,
			row.Code,
			row.Name,
			format.Cents(row.Base),
			strconv.FormatFloat(row.Rate, 'f', -1, 64),
			format.Cents(row.Amount),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Code, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// RenderWorkbook builds an .xlsx with a summary sheet and a contributions
// sheet. Cells hold the unrounded figures; only the number format rounds.
func (s *Service) RenderWorkbook(in PayrollInputs, summary PayrollSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(contributionsSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	euroFmt := euroNumFmt
	euroStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &euroFmt})
	if err != nil {
		return nil, fmt.Errorf("euro style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: percentNumFmt})
	if err != nil {
		return nil, fmt.Errorf("percent style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("bold style: %w", err)
	}

	figures := []struct {
		label string
		value float64
		style int
	}{
		{"Heures travaillées", in.HoursWorked, 0},
		{"Taux horaire", in.HourlyRate, euroStyle},
		{"Salaire brut", summary.GrossPay, euroStyle},
		{"Base CSG/CRDS", summary.CsgCrdsBase, euroStyle},
		{"Total cotisations salariales", summary.TotalEmployee, euroStyle},
		{"Total cotisations patronales", summary.TotalEmployer, euroStyle},
		{"Net avant impôt", summary.NetBeforeTax, euroStyle},
		{"Impôt sur le revenu", summary.IncomeTax, euroStyle},
		{"Net à payer", summary.NetPay, euroStyle},
		{"Coût total employeur", summary.TotalEmployerCost, euroStyle},
	}
	for i, fig := range figures {
		row := i + 1
		if err := setRow(f, summarySheet, row, fig.label, fig.value); err != nil {
			return nil, err
		}
		if fig.style != 0 {
			cell, _ := excelize.CoordinatesToCellName(2, row)
			if err := f.SetCellStyle(summarySheet, cell, cell, fig.style); err != nil {
				return nil, fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}

	if err := setRow(f, contributionsSheet, 1, "Groupe", "Code", "Cotisation", "Base", "Taux", "Montant"); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(contributionsSheet, "A1", "F1", boldStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	rows := s.schedule.ExportRows(summary)
	for i, r := range rows {
		if err := setRow(f, contributionsSheet, i+2, r.Group, r.Code, r.Name, r.Base, r.Rate, r.Amount); err != nil {
			return nil, err
		}
	}
	if last := len(rows) + 1; last > 1 {
		for _, col := range []struct {
			from, to string
			style    int
		}{
			{"D2", fmt.Sprintf("D%d", last), euroStyle},
			{"E2", fmt.Sprintf("E%d", last), percentStyle},
			{"F2", fmt.Sprintf("F%d", last), euroStyle},
		} {
			if err := f.SetCellStyle(contributionsSheet, col.from, col.to, col.style); err != nil {
				return nil, fmt.Errorf("style %s: %w", col.from, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
