// Package format renders payroll figures for display. Computation never reads
// these strings back.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const currencySuffix = " €"

// Euro renders a space-grouped amount with two decimals: 1 668.37 €.
// Rounding is half away from zero, the same as Cents.
func Euro(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return humanize.FormatFloat("# ###.##", amount) + currencySuffix
	}
	d := cents(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	grouped := strings.ReplaceAll(humanize.BigComma(d.Truncate(0).BigInt()), ",", " ")
	return sign + grouped + fixed[len(fixed)-3:] + currencySuffix
}

// Percent renders a fraction as a percentage with two decimals: 0.069 gives 6.90%.
func Percent(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return humanize.FormatFloat("#.##", rate) + "%"
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// Cents renders an amount rounded to the cent without grouping or suffix,
// the way exports expect it.
func Cents(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	return cents(amount).StringFixed(2)
}

func cents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}
