package payroll

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"paie/internal/platform/format"
)

// Explain renders the line-by-line derivation of a summary computed with the
// default schedule, in French, the way the payslip detail panel shows it.
func Explain(in PayrollInputs, s PayrollSummary) string {
	return DefaultSchedule().Explain(in, s)
}

func (sch Schedule) Explain(in PayrollInputs, s PayrollSummary) string {
	var b strings.Builder
	sch.WriteExplanation(&b, in, s)
	return b.String()
}

// WriteExplanation writes the derivation of s. Employee lines levied on the
// CSG/CRDS base are listed apart from the other employee contributions.
func (sch Schedule) WriteExplanation(w io.Writer, in PayrollInputs, s PayrollSummary) {
	euro := format.Euro
	rate := euro(in.HourlyRate)

	fmt.Fprintln(w, "### 1. Salaire brut")
	fmt.Fprintf(w, "Base (%sh × %s/h): %s\n", number(in.HoursWorked), rate, euro(s.Gross.BasePay))
	if in.Overtime25h > 0 {
		fmt.Fprintf(w, "Heures sup. 25%% (%sh): %s\n", number(in.Overtime25h), euro(s.Gross.Overtime25Amount))
		fmt.Fprintf(w, "Calcul: %sh × %s/h × 1.25 = %s\n", number(in.Overtime25h), rate, euro(s.Gross.Overtime25Amount))
	}
	if in.Overtime50h > 0 {
		fmt.Fprintf(w, "Heures sup. 50%% (%sh): %s\n", number(in.Overtime50h), euro(s.Gross.Overtime50Amount))
		fmt.Fprintf(w, "Calcul: %sh × %s/h × 1.50 = %s\n", number(in.Overtime50h), rate, euro(s.Gross.Overtime50Amount))
	}
	if in.BenefitsInKind > 0 {
		fmt.Fprintf(w, "Avantages: %s\n", euro(in.BenefitsInKind))
	}
	if in.Bonuses > 0 {
		fmt.Fprintf(w, "Primes: %s\n", euro(in.Bonuses))
	}
	fmt.Fprintf(w, "Total brut: %s\n", euro(s.GrossPay))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "### 2. Cotisations")
	fmt.Fprintln(w, "#### Autres cotisations salariales")
	csgLines := make(map[string]bool)
	for _, def := range sch.Employee {
		if def.BaseRule.IsCsgBase() {
			csgLines[def.Name] = true
		}
	}
	for _, line := range s.EmployeeContributions {
		if !csgLines[line.Name] {
			writeLine(w, line)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "#### Calcul de la base CSG-CRDS")
	fmt.Fprintln(w, "La CSG et la CRDS sont calculées sur une base de 98.25% du salaire brut")
	fmt.Fprintf(w, "Base CSG-CRDS = %s × 98.25%% = %s\n", euro(s.GrossPay), euro(s.CsgCrdsBase))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Calcul des CSG et CRDS :")
	for _, line := range s.EmployeeContributions {
		if csgLines[line.Name] {
			writeLine(w, line)
		}
	}
	fmt.Fprintf(w, "Total des cotisations salariales: %s\n", euro(s.TotalEmployee))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "#### Cotisations patronales")
	for _, line := range s.EmployerContributions {
		writeLine(w, line)
	}
	fmt.Fprintf(w, "Total des cotisations patronales: %s\n", euro(s.TotalEmployer))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "### 3. Calcul du net")
	fmt.Fprintf(w, "Salaire brut: %s\n", euro(s.GrossPay))
	fmt.Fprintf(w, "- Total des cotisations salariales: %s\n", euro(s.TotalEmployee))
	fmt.Fprintf(w, "= Net avant impôt: %s\n", euro(s.NetBeforeTax))
	fmt.Fprintf(w, "- Impôt sur le revenu (%s%% de %s)\n", number(in.TaxRatePercent), euro(in.TaxableIncome))
	fmt.Fprintf(w, "  %s × %s%% = %s\n", euro(in.TaxableIncome), number(in.TaxRatePercent), euro(s.IncomeTax))
	fmt.Fprintf(w, "= Net à payer: %s\n", euro(s.NetPay))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Coût total employeur: %s\n", euro(s.TotalEmployerCost))
}

func writeLine(w io.Writer, line ContributionResult) {
	fmt.Fprintf(w, "%s:\n", line.Name)
	fmt.Fprintf(w, "  Base: %s\n", format.Euro(line.Base))
	fmt.Fprintf(w, "  × Taux: %s\n", format.Percent(line.Rate))
	fmt.Fprintf(w, "  = Montant: %s\n", format.Euro(line.Amount))
}

// number prints hours and percentages the way the payslip has always shown
// them: 151.67, and 10.0 for whole values.
func number(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
