package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// FileResult is the JSON payload of commands that write a file.
type FileResult struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// NewPayslipCommand creates the payslip command.
func NewPayslipCommand(rootOpts *RootOptions) *cobra.Command {
	var output string
	var flags *inputFlags

	cmd := &cobra.Command{
		Use:   "payslip",
		Short: "Write the payslip as a PDF",
		Long: `Compute the month and write an A4 PDF payslip. Without -o the file is
named bulletin-<uuid>.pdf in the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			pdf, err := svc.RenderPayslip(in, summary)
			if err != nil {
				return WrapExitError(ExitFailure, "render payslip", err)
			}

			path := output
			if path == "" {
				path = fmt.Sprintf("bulletin-%s.pdf", uuid.NewString())
			}
			return writeOutputFile(rootOpts, cmd, path, pdf)
		},
	}
	flags = bindInputFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "PDF file to write")

	return cmd
}

func writeOutputFile(opts *RootOptions, cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WrapExitError(ExitFailure, "write "+path, err)
	}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), FileResult{Path: path, Bytes: len(data)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(data))
	return nil
}
