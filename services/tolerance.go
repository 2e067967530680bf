package services

import "math"

// Tolerance returns the acceptable error band when a quantity was rounded to
// the given number of decimal places: twice the theoretical half-step error
// of that rounding (10^-digits), floored at 0.01 so coarse float noise in
// hand-entered values never trips a finding.
//
// Tolerance(3) = 0.01, Tolerance(2) = 0.01, Tolerance(0) = 1.0.
func Tolerance(digits int) float64 {
	tol := math.Pow(10, -float64(digits))
	if tol < 0.01 {
		return 0.01
	}
	return tol
}

// GoverningDigits picks the rounding precision that governs a row: an
// explicit ROUND(expr, n) in the quantity cell's formula wins, otherwise the
// rule set default applies.
func GoverningDigits(qtyFormula string, rules *RuleSet) int {
	if d, ok := ParseRoundDigits(qtyFormula); ok {
		return d
	}
	return rules.RoundDefaultDigits
}
