package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	var flags *inputFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the contribution lines as CSV or XLSX",
		Long: `Compute the month and write every contribution line to a .csv or .xlsx
file, chosen by the extension of -o.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := strings.ToLower(filepath.Ext(output))
			if ext != ".csv" && ext != ".xlsx" {
				return NewExitError(ExitCommandError, fmt.Sprintf("output %q must end in .csv or .xlsx", output))
			}
			svc, err := rootOpts.newService(cmd.ErrOrStderr())
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

			var data []byte
			if ext == ".xlsx" {
				data, err = svc.RenderWorkbook(in, summary)
			} else {
				var b strings.Builder
				err = svc.WriteCSV(&b, summary)
				data = []byte(b.String())
			}
			if err != nil {
				return WrapExitError(ExitFailure, "render export", err)
			}
			return writeOutputFile(rootOpts, cmd, output, data)
		},
	}
	flags = bindInputFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
