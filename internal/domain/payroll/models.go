package payroll

// PayrollInputs are the figures entered for one monthly computation. Values are
// trusted: the caller is responsible for keeping them finite and non-negative.
type PayrollInputs struct {
	HoursWorked    float64 `json:"hoursWorked" yaml:"hoursWorked"`
	HourlyRate     float64 `json:"hourlyRate" yaml:"hourlyRate"`
	Overtime25h    float64 `json:"overtime25h" yaml:"overtime25h"`
	Overtime50h    float64 `json:"overtime50h" yaml:"overtime50h"`
	BenefitsInKind float64 `json:"benefitsInKind" yaml:"benefitsInKind"`
	Bonuses        float64 `json:"bonuses" yaml:"bonuses"`
	TaxableIncome  float64 `json:"taxableIncome" yaml:"taxableIncome"`
	TaxRatePercent float64 `json:"taxRatePercent" yaml:"taxRatePercent"`
	PMSSCeiling    float64 `json:"pmssCeiling" yaml:"pmssCeiling"`
}

// DefaultInputs returns the values a blank form starts from: a full-time month
// at 11 €/h under the 3666 € ceiling.
func DefaultInputs() PayrollInputs {
	return PayrollInputs{
		HoursWorked: DefaultHoursWorked,
		HourlyRate:  DefaultHourlyRate,
		PMSSCeiling: DefaultPMSSCeiling,
	}
}

type ContributionDefinition struct {
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	BaseRule    BaseRule `json:"baseRule"`
	DefaultRate float64  `json:"defaultRate"`
}

type ContributionResult struct {
	Name   string  `json:"name"`
	Base   float64 `json:"base"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// Override replaces the resolved base and/or the default rate of one line.
// A nil field keeps the schedule value.
type Override struct {
	Base *float64 `json:"base,omitempty"`
	Rate *float64 `json:"rate,omitempty"`
}

// Overrides are keyed by contribution name.
type Overrides map[string]Override

type GrossBreakdown struct {
	BasePay          float64 `json:"basePay"`
	Overtime25Amount float64 `json:"overtime25Amount"`
	Overtime50Amount float64 `json:"overtime50Amount"`
	BenefitsInKind   float64 `json:"benefitsInKind"`
	Bonuses          float64 `json:"bonuses"`
	Total            float64 `json:"total"`
}

type PayrollSummary struct {
	Gross                 GrossBreakdown       `json:"gross"`
	GrossPay              float64              `json:"grossPay"`
	CsgCrdsBase           float64              `json:"csgCrdsBase"`
	EmployeeContributions []ContributionResult `json:"employeeContributions"`
	EmployerContributions []ContributionResult `json:"employerContributions"`
	TotalEmployee         float64              `json:"totalEmployee"`
	TotalEmployer         float64              `json:"totalEmployer"`
	NetBeforeTax          float64              `json:"netBeforeTax"`
	IncomeTax             float64              `json:"incomeTax"`
	NetPay                float64              `json:"netPay"`
	TotalEmployerCost     float64              `json:"totalEmployerCost"`
}

// Employee returns the employee line with the given name.
func (s PayrollSummary) Employee(name string) (ContributionResult, bool) {
	return findResult(s.EmployeeContributions, name)
}

// Employer returns the employer line with the given name.
func (s PayrollSummary) Employer(name string) (ContributionResult, bool) {
	return findResult(s.EmployerContributions, name)
}

func findResult(results []ContributionResult, name string) (ContributionResult, bool) {
	for _, result := range results {
		if result.Name == name {
			return result, true
		}
	}
	return ContributionResult{}, false
}
