package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"paie/internal/domain/payroll"
	"paie/internal/platform/format"
)

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the contribution table",
		Long: `Print the active contribution table: the built-in one, or the file
given with --schedule. Codes shown here are accepted by the override flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			schedule := svc.Schedule()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(out, schedule)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			writeDefinitions(tw, "Cotisations salariales", schedule.Employee)
			writeDefinitions(tw, "Cotisations patronales", schedule.Employer)
			return tw.Flush()
		},
	}
}

func writeDefinitions(tw io.Writer, title string, defs []payroll.ContributionDefinition) {
	fmt.Fprintf(tw, "%s\tCode\tBase\tTaux\n", title)
	for _, def := range defs {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", def.Name, def.Code, def.BaseRule, format.Percent(def.DefaultRate))
	}
	fmt.Fprintln(tw)
}
