package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// multiplierFactorPattern finds literal "* 1.04" style factors in basis text.
var multiplierFactorPattern = regexp.MustCompile(`\*\s*([0-9]+(?:\.[0-9]+)?)`)

// AllowanceResult is the resolved allowance policy for one row.
type AllowanceResult struct {
	// PercentKey is the map-key form of the percentage found in the remark
	// ("4%"). Empty when the remark carries no percentage.
	PercentKey string

	// UnknownPercent is set when the remark names a percentage that the
	// multiplier map does not define.
	UnknownPercent bool

	// MissingBasis is set when a known allowance applies but no usable
	// basis value exists to compute the expected quantity from.
	MissingBasis bool

	// Applies is set when a known allowance should be checked against the
	// quantity; Multiplier and Expected are then populated.
	Applies    bool
	Multiplier float64
	Expected   float64
}

// ResolveAllowance decides whether an allowance check applies to a row and,
// if so, what quantity to expect. basis is nil when the basis expression was
// unevaluable. digits is the governing rounding precision for the row.
//
// Not-applicable outcomes (zero AllowanceResult): no percentage in the
// remark, an exempt work type, or a basis text that already embeds the
// multiplier (the double-counting guard).
func ResolveAllowance(rules *RuleSet, remark, workType, basisText string, basis *float64, digits int) AllowanceResult {
	key, ok := rules.ExtractPercent(remark)
	if !ok {
		return AllowanceResult{}
	}
	if rules.IsExemptWorkType(workType) {
		return AllowanceResult{}
	}

	mult, ok := rules.Multiplier(key)
	if !ok {
		return AllowanceResult{PercentKey: key, UnknownPercent: true}
	}

	// Double-counting guard: a basis like "100*1.04" has the surcharge
	// baked in already, so multiplying again would demand it twice.
	if HasMultiplierFactor(basisText, mult) {
		return AllowanceResult{}
	}

	if basis == nil {
		return AllowanceResult{PercentKey: key, MissingBasis: true, Multiplier: mult}
	}

	return AllowanceResult{
		PercentKey: key,
		Applies:    true,
		Multiplier: mult,
		Expected:   roundTo(*basis*mult, digits),
	}
}

// HasMultiplierFactor reports whether basis text contains a literal
// multiplication by mult (within float tolerance), e.g. "*1.04".
func HasMultiplierFactor(basisText string, mult float64) bool {
	if basisText == "" {
		return false
	}
	text := strings.ReplaceAll(basisText, ",", "")
	for _, m := range multiplierFactorPattern.FindAllStringSubmatch(text, -1) {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if math.Abs(f-mult) < 1e-9 {
			return true
		}
	}
	return false
}
