package payroll

import "errors"

var (
	ErrInvalidSchedule     = errors.New("invalid contribution schedule")
	ErrInvalidBaseRule     = errors.New("invalid base rule")
	ErrUnknownContribution = errors.New("unknown contribution")
	ErrUnknownGroup        = errors.New("unknown contribution group")
	ErrConflictingOverride = errors.New("conflicting overrides")
)
