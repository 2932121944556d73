package payroll

// ComputeGross splits the month's gross pay into its components. Total is
// summed in the order base pay, 25 % overtime, 50 % overtime, benefits in
// kind, bonuses.
func ComputeGross(in PayrollInputs) GrossBreakdown {
	g := GrossBreakdown{
		BasePay:          in.HoursWorked * in.HourlyRate,
		Overtime25Amount: in.Overtime25h * in.HourlyRate * Overtime25Multiplier,
		Overtime50Amount: in.Overtime50h * in.HourlyRate * Overtime50Multiplier,
		BenefitsInKind:   in.BenefitsInKind,
		Bonuses:          in.Bonuses,
	}
	g.Total = g.BasePay + g.Overtime25Amount + g.Overtime50Amount + g.BenefitsInKind + g.Bonuses
	return g
}

// ComputePayroll runs the default schedule. Override maps may be nil.
func ComputePayroll(in PayrollInputs, employeeOverrides, employerOverrides Overrides) PayrollSummary {
	return DefaultSchedule().Compute(in, employeeOverrides, employerOverrides)
}

// Compute produces a fresh summary from the inputs. It never fails: invalid
// numbers such as NaN propagate into the result.
func (s Schedule) Compute(in PayrollInputs, employeeOverrides, employerOverrides Overrides) PayrollSummary {
	gross := ComputeGross(in)
	bases := Bases{
		Gross:   gross.Total,
		CsgCrds: gross.Total * CsgCrdsRatio,
		Ceiling: in.PMSSCeiling,
	}

	employee := ComputeContributions(s.Employee, bases, employeeOverrides)
	employer := ComputeContributions(s.Employer, bases, employerOverrides)
	totalEmployee := sumAmounts(employee)
	totalEmployer := sumAmounts(employer)

	netBeforeTax := gross.Total - totalEmployee
	incomeTax := in.TaxableIncome * (in.TaxRatePercent / 100)

	return PayrollSummary{
		Gross:                 gross,
		GrossPay:              gross.Total,
		CsgCrdsBase:           bases.CsgCrds,
		EmployeeContributions: employee,
		EmployerContributions: employer,
		TotalEmployee:         totalEmployee,
		TotalEmployer:         totalEmployer,
		NetBeforeTax:          netBeforeTax,
		IncomeTax:             incomeTax,
		NetPay:                netBeforeTax - incomeTax,
		TotalEmployerCost:     gross.Total + totalEmployer,
	}
}
