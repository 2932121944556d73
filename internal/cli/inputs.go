package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"paie/internal/domain/payroll"
	"paie/internal/platform/slug"
)

// inputFlags binds every PayrollInputs field and the override lists to a
// command.
type inputFlags struct {
	inputs   payroll.PayrollInputs
	employee []string
	employer []string
}

func bindInputFlags(cmd *cobra.Command) *inputFlags {
	f := &inputFlags{inputs: payroll.DefaultInputs()}
	flags := cmd.Flags()
	flags.Float64Var(&f.inputs.HoursWorked, "hours", f.inputs.HoursWorked, "hours worked in the month")
	flags.Float64Var(&f.inputs.HourlyRate, "hourly-rate", f.inputs.HourlyRate, "gross hourly rate in euros")
	flags.Float64Var(&f.inputs.Overtime25h, "overtime-25", 0, "overtime hours paid at +25%")
	flags.Float64Var(&f.inputs.Overtime50h, "overtime-50", 0, "overtime hours paid at +50%")
	flags.Float64Var(&f.inputs.BenefitsInKind, "benefits", 0, "benefits in kind in euros")
	flags.Float64Var(&f.inputs.Bonuses, "bonuses", 0, "bonuses in euros")
	flags.Float64Var(&f.inputs.TaxableIncome, "taxable-income", 0, "taxable income in euros")
	flags.Float64Var(&f.inputs.TaxRatePercent, "tax-rate", 0, "withholding tax rate in percent")
	flags.Float64Var(&f.inputs.PMSSCeiling, "pmss", f.inputs.PMSSCeiling, "monthly social security ceiling in euros")
	flags.StringArrayVar(&f.employee, "employee-override", nil, "override an employee line, e.g. crds:rate=0.005,base=1000 (repeatable)")
	flags.StringArrayVar(&f.employer, "employer-override", nil, "override an employer line, e.g. at_mp:rate=0.02 (repeatable)")
	return f
}

// resolve checks the inputs and parses the override flags.
func (f *inputFlags) resolve() (payroll.PayrollInputs, payroll.Overrides, payroll.Overrides, error) {
	if err := checkInputs(f.inputs); err != nil {
		return payroll.PayrollInputs{}, nil, nil, WrapExitError(ExitCommandError, "invalid inputs", err)
	}
	employee, err := parseOverrides(f.employee)
	if err != nil {
		return payroll.PayrollInputs{}, nil, nil, WrapExitError(ExitCommandError, "invalid --employee-override", err)
	}
	employer, err := parseOverrides(f.employer)
	if err != nil {
		return payroll.PayrollInputs{}, nil, nil, WrapExitError(ExitCommandError, "invalid --employer-override", err)
	}
	return f.inputs, employee, employer, nil
}

func checkInputs(in payroll.PayrollInputs) error {
	var errs error
	for _, field := range []struct {
		flag  string
		value float64
	}{
		{"--hours", in.HoursWorked},
		{"--hourly-rate", in.HourlyRate},
		{"--overtime-25", in.Overtime25h},
		{"--overtime-50", in.Overtime50h},
		{"--benefits", in.BenefitsInKind},
		{"--bonuses", in.Bonuses},
		{"--taxable-income", in.TaxableIncome},
		{"--tax-rate", in.TaxRatePercent},
		{"--pmss", in.PMSSCeiling},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) || field.value < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s must be a non-negative number", field.flag))
		}
	}
	if in.TaxRatePercent > 100 {
		errs = multierr.Append(errs, fmt.Errorf("--tax-rate must not exceed 100"))
	}
	return errs
}

// parseOverrides merges repeated flags, matching keys by contribution code so
// "CRDS" and "crds" are one key; a later flag replaces only the fields it sets.
func parseOverrides(raw []string) (payroll.Overrides, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	overrides := make(payroll.Overrides, len(raw))
	for _, entry := range raw {
		key, override, err := parseOverride(entry)
		if err != nil {
			return nil, err
		}
		if code := slug.Make(key); code != "" {
			key = code
		}
		merged := overrides[key]
		if override.Base != nil {
			merged.Base = override.Base
		}
		if override.Rate != nil {
			merged.Rate = override.Rate
		}
		overrides[key] = merged
	}
	return overrides, nil
}

// parseOverride reads "name-or-code:rate=0.07,base=1000". Either field may
// be left out, not both.
func parseOverride(raw string) (string, payroll.Override, error) {
	idx := strings.LastIndex(raw, ":")
	if idx <= 0 {
		return "", payroll.Override{}, fmt.Errorf("%q: expected name:rate=R,base=B", raw)
	}
	key := strings.TrimSpace(raw[:idx])
	if key == "" {
		return "", payroll.Override{}, fmt.Errorf("%q: missing contribution name", raw)
	}

	var override payroll.Override
	for _, part := range strings.Split(raw[idx+1:], ",") {
		field, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return "", payroll.Override{}, fmt.Errorf("%q: expected field=value, got %q", raw, part)
		}
		number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(number) || math.IsInf(number, 0) || number < 0 {
			return "", payroll.Override{}, fmt.Errorf("%q: %s must be a non-negative number", raw, field)
		}
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "rate":
			if number > 1 {
				return "", payroll.Override{}, fmt.Errorf("%q: rate is a fraction between 0 and 1", raw)
			}
			override.Rate = &number
		case "base":
			override.Base = &number
		default:
			return "", payroll.Override{}, fmt.Errorf("%q: unknown field %q (want rate or base)", raw, field)
		}
	}
	return key, override, nil
}
