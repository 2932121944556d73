package payroll

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Recorder counts computations; *metrics.Collector satisfies it.
type Recorder interface {
	RecordComputation()
}

type Service struct {
	schedule Schedule
	logger   *slog.Logger
	recorder Recorder
}

func NewService(schedule Schedule, logger *slog.Logger, recorder Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{schedule: schedule, logger: logger, recorder: recorder}
}

func (s *Service) Schedule() Schedule {
	return s.schedule
}

// ResolveOverrides rewrites override keys given as names or codes to the
// canonical contribution names of group. Keys naming the same line are merged
// field by field; two keys setting one field to different values conflict.
func (s *Service) ResolveOverrides(group string, overrides Overrides) (Overrides, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resolved := make(Overrides, len(overrides))
	setBy := make(map[string]string, len(overrides))
	var unknown []string
	var errs error
	for _, key := range keys {
		name, err := s.schedule.Lookup(group, key)
		if err != nil {
			unknown = append(unknown, key)
			continue
		}
		override := overrides[key]
		merged := resolved[name]
		if override.Base != nil {
			if merged.Base != nil && *merged.Base != *override.Base {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s %q base set by %q and %q", ErrConflictingOverride, group, name, setBy[name+".base"], key))
			}
			merged.Base = override.Base
			setBy[name+".base"] = key
		}
		if override.Rate != nil {
			if merged.Rate != nil && *merged.Rate != *override.Rate {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s %q rate set by %q and %q", ErrConflictingOverride, group, name, setBy[name+".rate"], key))
			}
			merged.Rate = override.Rate
			setBy[name+".rate"] = key
		}
		resolved[name] = merged
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownContribution, group, strings.Join(unknown, ", "))
	}
	if errs != nil {
		return nil, errs
	}
	return resolved, nil
}

// Compute resolves override keys and runs the configured schedule. The only
// error is an override naming no contribution.
func (s *Service) Compute(in PayrollInputs, employeeOverrides, employerOverrides Overrides) (PayrollSummary, error) {
	employee, err := s.ResolveOverrides(GroupEmployee, employeeOverrides)
	if err != nil {
		return PayrollSummary{}, err
	}
	employer, err := s.ResolveOverrides(GroupEmployer, employerOverrides)
	if err != nil {
		return PayrollSummary{}, err
	}

	summary := s.schedule.Compute(in, employee, employer)
	if s.recorder != nil {
		s.recorder.RecordComputation()
	}
	s.logger.Debug("payroll computed",
		"gross", summary.GrossPay,
		"totalEmployee", summary.TotalEmployee,
		"totalEmployer", summary.TotalEmployer,
		"netPay", summary.NetPay,
		"overrides", len(employee)+len(employer),
	)
	return summary, nil
}

func (s *Service) Explain(in PayrollInputs, summary PayrollSummary) string {
	return s.schedule.Explain(in, summary)
}
