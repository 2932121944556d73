package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"paie/internal/domain/payroll"
	"paie/internal/platform/format"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // computation or output failure
	ExitCommandError = 2 // bad flags, unreadable schedule, invalid inputs
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error; plain errors map to
// ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// CLIResponse is the JSON envelope of --format json output.
type CLIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(CLIResponse{Status: "ok", Data: data})
}

func writeSummaryText(w io.Writer, s payroll.PayrollSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Salaire brut\t%s\n", format.Euro(s.GrossPay))
	fmt.Fprintf(tw, "Base CSG/CRDS\t%s\n", format.Euro(s.CsgCrdsBase))
	fmt.Fprintln(tw)

	writeLines(tw, "Cotisations salariales", s.EmployeeContributions, s.TotalEmployee)
	writeLines(tw, "Cotisations patronales", s.EmployerContributions, s.TotalEmployer)

	fmt.Fprintf(tw, "Net avant impôt\t%s\n", format.Euro(s.NetBeforeTax))
	fmt.Fprintf(tw, "Impôt sur le revenu\t%s\n", format.Euro(s.IncomeTax))
	fmt.Fprintf(tw, "Net à payer\t%s\n", format.Euro(s.NetPay))
	fmt.Fprintf(tw, "Coût total employeur\t%s\n", format.Euro(s.TotalEmployerCost))
	return tw.Flush()
}

func writeLines(tw io.Writer, title string, lines []payroll.ContributionResult, total float64) {
	fmt.Fprintf(tw, "%s\tBase\tTaux\tMontant\n", title)
	for _, line := range lines {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", line.Name, format.Euro(line.Base), format.Percent(line.Rate), format.Euro(line.Amount))
	}
	fmt.Fprintf(tw, "  Total\t\t\t%s\n", format.Euro(total))
	fmt.Fprintln(tw)
}
