package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"paie/internal/platform/slug"
)

type scheduleFile struct {
	Employee []scheduleLine `yaml:"employee" toml:"employee"`
	Employer []scheduleLine `yaml:"employer" toml:"employer"`
}

type scheduleLine struct {
	Name   string   `yaml:"name" toml:"name"`
	Base   string   `yaml:"base" toml:"base"`
	Factor *float64 `yaml:"factor" toml:"factor"`
	Rate   float64  `yaml:"rate" toml:"rate"`
}

// LoadScheduleFile reads a contribution table from a .toml file or, for any
// other extension, a YAML file. See ParseSchedule.
func LoadScheduleFile(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, fmt.Errorf("read schedule %s: %w", path, err)
	}
	parse := ParseSchedule
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseScheduleTOML
	}
	schedule, err := parse(data)
	if err != nil {
		return Schedule{}, fmt.Errorf("schedule %s: %w", path, err)
	}
	return schedule, nil
}

// ParseSchedule decodes employee and employer tables of {name, base, factor,
// rate} lines. A group left empty keeps the default table.
func ParseSchedule(data []byte) (Schedule, error) {
	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Schedule{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return file.build()
}

// ParseScheduleTOML is ParseSchedule for [[employee]] / [[employer]] tables.
func ParseScheduleTOML(data []byte) (Schedule, error) {
	var file scheduleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Schedule{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return file.build()
}

func (f scheduleFile) build() (Schedule, error) {
	schedule := DefaultSchedule()
	var errs error
	if len(f.Employee) > 0 {
		defs, err := buildGroup(GroupEmployee, f.Employee)
		errs = multierr.Append(errs, err)
		schedule.Employee = defs
	}
	if len(f.Employer) > 0 {
		defs, err := buildGroup(GroupEmployer, f.Employer)
		errs = multierr.Append(errs, err)
		schedule.Employer = defs
	}
	if errs != nil {
		return Schedule{}, errs
	}
	return schedule, nil
}

// buildGroup reports every bad line, not just the first.
func buildGroup(group string, lines []scheduleLine) ([]ContributionDefinition, error) {
	defs := make([]ContributionDefinition, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	var errs error
	for i, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s line %d: name is required", ErrInvalidSchedule, group, i+1))
			continue
		}
		code := slug.Make(name)
		if _, dup := seen[code]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s line %d: duplicate contribution %q", ErrInvalidSchedule, group, i+1, name))
			continue
		}
		seen[code] = struct{}{}

		rule, err := lineRule(line)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s line %d (%s): %v", ErrInvalidSchedule, group, i+1, name, err))
			continue
		}
		if !(line.Rate >= 0 && line.Rate <= 1) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s line %d (%s): rate %v outside [0, 1]", ErrInvalidSchedule, group, i+1, name, line.Rate))
			continue
		}
		defs = append(defs, define(name, rule, line.Rate))
	}
	if errs != nil {
		return nil, errs
	}
	return defs, nil
}

func lineRule(line scheduleLine) (BaseRule, error) {
	kind := strings.ToLower(strings.TrimSpace(line.Base))
	if kind == BaseScaledGross {
		if line.Factor == nil {
			return BaseRule{}, fmt.Errorf("%s requires a factor", BaseScaledGross)
		}
		return ScaledGross(*line.Factor), nil
	}
	if line.Factor != nil {
		return BaseRule{}, fmt.Errorf("factor is only allowed with %s", BaseScaledGross)
	}
	return ParseBaseRule(kind)
}
