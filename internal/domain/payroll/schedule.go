package payroll

import (
	"fmt"

	"paie/internal/platform/slug"
)

// Schedule holds the ordered employee and employer contribution tables.
// Order is display order and must be preserved.
type Schedule struct {
	Employee []ContributionDefinition `json:"employee"`
	Employer []ContributionDefinition `json:"employer"`
}

func define(name string, rule BaseRule, rate float64) ContributionDefinition {
	return ContributionDefinition{Name: name, Code: slug.Make(name), BaseRule: rule, DefaultRate: rate}
}

func EmployeeSchedule() []ContributionDefinition {
	return []ContributionDefinition{
		define(NameMaladie, FullGross(), 0.00),
		define(NameVieillessePlafonnee, CappedAtCeiling(), 0.069),
		define(NameVieillesseDeplafonnee, FullGross(), 0.004),
		define(NameChomage, FullGross(), 0.00),
		define(NameRetraiteComplementaire, FullGross(), 0.040),
		define(NamePrevoyance, FullGross(), 0.004),
		define(NameCSGDeductible, CsgBase(), 0.067),
		define(NameCSGNonDeductible, CsgBase(), 0.024),
		define(NameCRDS, CsgBase(), 0.005),
	}
}

func EmployerSchedule() []ContributionDefinition {
	return []ContributionDefinition{
		define(NameMaladie, FullGross(), 0.130),
		define(NameVieillessePlafonnee, CappedAtCeiling(), 0.084),
		define(NameVieillesseDeplafonnee, FullGross(), 0.019),
		define(NameAllocationsFamiliales, FullGross(), 0.0525),
		define(NameATMP, FullGross(), 0.070),
		define(NameChomage, FullGross(), 0.0405),
		define(NameAGS, FullGross(), 0.0015),
		define(NameRetraiteComplementaire, FullGross(), 0.060),
		define(NamePrevoyance, FullGross(), 0.006),
		define(NameFormationProfessionnelle, FullGross(), 0.010),
		define(NameTaxeApprentissage, FullGross(), 0.0068),
		define(NameFNAL, FullGross(), 0.001),
	}
}

func DefaultSchedule() Schedule {
	return Schedule{Employee: EmployeeSchedule(), Employer: EmployerSchedule()}
}

// Group returns the definitions of the employee or employer group.
func (s Schedule) Group(group string) ([]ContributionDefinition, error) {
	switch group {
	case GroupEmployee:
		return s.Employee, nil
	case GroupEmployer:
		return s.Employer, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
}

// Lookup resolves a contribution name or code within a group to its
// canonical name.
func (s Schedule) Lookup(group, key string) (string, error) {
	defs, err := s.Group(group)
	if err != nil {
		return "", err
	}
	code := slug.Make(key)
	for _, def := range defs {
		if def.Name == key || def.Code == code {
			return def.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrUnknownContribution, group, key)
}
