package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"paie/internal/domain/payroll"
)

// ComputeResult is the JSON payload of the compute command.
type ComputeResult struct {
	Inputs      payroll.PayrollInputs  `json:"inputs"`
	Summary     payroll.PayrollSummary `json:"summary"`
	Explanation string                 `json:"explanation,omitempty"`
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	var explain bool
	var flags *inputFlags

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a monthly payslip",
		Long: `Compute gross pay, contributions, tax and net pay for one month.

Unset inputs default to 151.67 hours at 11.00 €/h under a 3 666 € ceiling.
Contribution lines can be overridden by name or code, for example:

  paie compute --hourly-rate 12.5 --employee-override "Prévoyance:rate=0.01" \
    --employer-override at_mp:rate=0.02,base=1500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(rootOpts, flags, explain, cmd)
		},
	}
	flags = bindInputFlags(cmd)
	cmd.Flags().BoolVar(&explain, "explain", false, "print the step by step calculation")

	return cmd
}

func runCompute(opts *RootOptions, flags *inputFlags, explain bool, cmd *cobra.Command) error {
	svc, err := opts.newService(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	in, employee, employer, err := flags.resolve()
	if err != nil {
		return err
	}
	summary, err := svc.Compute(in, employee, employer)
	if err != nil {
		return WrapExitError(ExitCommandError, "compute", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		result := ComputeResult{Inputs: in, Summary: summary}
		if explain {
			result.Explanation = svc.Explain(in, summary)
		}
		return writeJSON(out, result)
	}

	if err := writeSummaryText(out, summary); err != nil {
		return err
	}
	if explain {
		fmt.Fprintln(out)
		svc.Schedule().WriteExplanation(out, in, summary)
	}
	return nil
}
