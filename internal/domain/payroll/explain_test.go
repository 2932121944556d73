package payroll

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestExplainDefaultMonth(t *testing.T) {
	in := DefaultInputs()
	got := Explain(in, ComputePayroll(in, nil, nil))
	newGolden(t).Assert(t, "explain_default", []byte(got))
}

func TestExplainOvertimeBenefitsAndTax(t *testing.T) {
	in := sampleInputs()
	got := Explain(in, ComputePayroll(in, nil, nil))
	newGolden(t).Assert(t, "explain_overtime", []byte(got))
}

func TestExplainSkipsEmptyGrossComponents(t *testing.T) {
	in := DefaultInputs()
	got := Explain(in, ComputePayroll(in, nil, nil))
	for _, absent := range []string{"Heures sup. 25%", "Heures sup. 50%", "Avantages:", "Primes:"} {
		if strings.Contains(got, absent) {
			t.Fatalf("did not expect %q in explanation", absent)
		}
	}
}

func TestNumber(t *testing.T) {
	cases := map[float64]string{
		151.67: "151.67",
		10:     "10.0",
		0:      "0.0",
		7.5:    "7.5",
	}
	for v, want := range cases {
		if got := number(v); got != want {
			t.Fatalf("number(%v) = %q, want %q", v, got, want)
		}
	}
}
