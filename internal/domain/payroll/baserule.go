package payroll

import (
	"fmt"
	"strconv"
	"strings"
)

type baseKind uint8

const (
	kindFullGross baseKind = iota
	kindCappedAtCeiling
	kindCsgBase
	kindScaledGross
)

const (
	BaseFullGross       = "full_gross"
	BaseCappedAtCeiling = "capped_at_ceiling"
	BaseCsgBase         = "csg_base"
	BaseScaledGross     = "scaled_gross"
)

// BaseRule tells how a contribution's base is derived from the month's
// figures. The zero value is FullGross.
type BaseRule struct {
	kind   baseKind
	factor float64
}

// Bases are the figures every base rule resolves against.
type Bases struct {
	Gross   float64
	CsgCrds float64
	Ceiling float64
}

func FullGross() BaseRule       { return BaseRule{kind: kindFullGross} }
func CappedAtCeiling() BaseRule { return BaseRule{kind: kindCappedAtCeiling} }
func CsgBase() BaseRule         { return BaseRule{kind: kindCsgBase} }

func ScaledGross(factor float64) BaseRule {
	return BaseRule{kind: kindScaledGross, factor: factor}
}

// Resolve returns the base amount for the rule. A zero ceiling caps the base
// at zero.
func (r BaseRule) Resolve(b Bases) float64 {
	switch r.kind {
	case kindCappedAtCeiling:
		return min(b.Gross, b.Ceiling)
	case kindCsgBase:
		return b.CsgCrds
	case kindScaledGross:
		return b.Gross * r.factor
	default:
		return b.Gross
	}
}

// IsCsgBase reports whether the line is levied on the CSG/CRDS base.
func (r BaseRule) IsCsgBase() bool {
	return r.kind == kindCsgBase
}

// Factor is the gross multiplier of a ScaledGross rule, 1 for FullGross and 0
// otherwise.
func (r BaseRule) Factor() float64 {
	switch r.kind {
	case kindFullGross:
		return 1
	case kindScaledGross:
		return r.factor
	default:
		return 0
	}
}

func (r BaseRule) Kind() string {
	switch r.kind {
	case kindCappedAtCeiling:
		return BaseCappedAtCeiling
	case kindCsgBase:
		return BaseCsgBase
	case kindScaledGross:
		return BaseScaledGross
	default:
		return BaseFullGross
	}
}

func (r BaseRule) String() string {
	if r.kind == kindScaledGross {
		return BaseScaledGross + ":" + strconv.FormatFloat(r.factor, 'g', -1, 64)
	}
	return r.Kind()
}

func (r BaseRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *BaseRule) UnmarshalText(text []byte) error {
	parsed, err := ParseBaseRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseBaseRule accepts the textual form produced by String, e.g.
// "capped_at_ceiling" or "scaled_gross:0.5".
func ParseBaseRule(raw string) (BaseRule, error) {
	kind, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), ":")
	switch kind {
	case BaseFullGross, "":
		if hasArg {
			break
		}
		return FullGross(), nil
	case BaseCappedAtCeiling:
		if hasArg {
			break
		}
		return CappedAtCeiling(), nil
	case BaseCsgBase:
		if hasArg {
			break
		}
		return CsgBase(), nil
	case BaseScaledGross:
		if !hasArg {
			return BaseRule{}, fmt.Errorf("%w: %s requires a factor", ErrInvalidBaseRule, BaseScaledGross)
		}
		factor, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return BaseRule{}, fmt.Errorf("%w: factor %q: %v", ErrInvalidBaseRule, arg, err)
		}
		return ScaledGross(factor), nil
	default:
		return BaseRule{}, fmt.Errorf("%w: %q", ErrInvalidBaseRule, raw)
	}
	return BaseRule{}, fmt.Errorf("%w: %s takes no argument", ErrInvalidBaseRule, kind)
}
