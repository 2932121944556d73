package format

import (
	"math"
	"testing"
)

func TestEuro(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0.00 €"},
		{1668.37, "1 668.37 €"},
		{1668.37 * 0.9825, "1 639.17 €"},
		{200, "200.00 €"},
		{1234567.891, "1 234 567.89 €"},
		{-50, "-50.00 €"},
	}
	for _, tc := range cases {
		if got := Euro(tc.amount); got != tc.want {
			t.Fatalf("Euro(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{0, "0.00%"},
		{0.069, "6.90%"},
		{0.0525, "5.25%"},
		{0.0015, "0.15%"},
		{0.13, "13.00%"},
	}
	for _, tc := range cases {
		if got := Percent(tc.rate); got != tc.want {
			t.Fatalf("Percent(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestCents(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{125, "125.00"},
		{1668.37 * 0.9825, "1639.17"},
		{2.675, "2.68"},
		{-2.675, "-2.68"},
		{math.Inf(1), "+Inf"},
	}
	for _, tc := range cases {
		if got := Cents(tc.amount); got != tc.want {
			t.Fatalf("Cents(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestEuroAgreesWithCents(t *testing.T) {
	for _, amount := range []float64{2.675, 0.005, 1.005, 1668.37 * 0.069, 99.995} {
		want := Cents(amount) + " €"
		if got := Euro(amount); got != want {
			t.Fatalf("Euro(%v) = %q, want %q", amount, got, want)
		}
	}
}

func TestEuroBeyondInt64(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{1e19, "10 000 000 000 000 000 000.00 €"},
		{-1e19, "-10 000 000 000 000 000 000.00 €"},
		{1.5e20, "150 000 000 000 000 000 000.00 €"},
	}
	for _, tc := range cases {
		if got := Euro(tc.amount); got != tc.want {
			t.Fatalf("Euro(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestNonFiniteFigures(t *testing.T) {
	if got := Euro(math.NaN()); got != "NaN €" {
		t.Fatalf("Euro(NaN) = %q", got)
	}
	if got := Percent(math.Inf(1)); got != "Infinity%" {
		t.Fatalf("Percent(+Inf) = %q", got)
	}
}
