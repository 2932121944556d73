package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"paie/internal/domain/payroll"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Schedule string // optional YAML or TOML contribution table
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the paie CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "paie",
		Short: "French payslip calculator",
		Long: `Compute a monthly French payslip: gross pay, employee and employer
social contributions, income tax withholding, net pay and employer cost.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Schedule, "schedule", os.Getenv("SCHEDULE_FILE"), "contribution table file (.yaml or .toml)")

	cmd.AddCommand(NewComputeCommand(opts))
	cmd.AddCommand(NewScheduleCommand(opts))
	cmd.AddCommand(NewPayslipCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newService builds a payroll service on the default table or the --schedule
// file. Logs go to stderr so JSON output stays clean.
func (o *RootOptions) newService(stderr io.Writer) (*payroll.Service, error) {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	schedule := payroll.DefaultSchedule()
	if o.Schedule != "" {
		loaded, err := payroll.LoadScheduleFile(o.Schedule)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load schedule", err)
		}
		schedule = loaded
		logger.Debug("schedule loaded", "path", o.Schedule)
	}
	return payroll.NewService(schedule, logger, nil), nil
}
