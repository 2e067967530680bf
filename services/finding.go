package services

// Severity classifies how serious a finding is. The order is total:
// HIGH > MEDIUM > LOW, used for report grouping.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Severities lists all severities from most to least severe.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns the sort position of a severity, HIGH first. Unknown values
// sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	}
	return 3
}

// Check type identifiers carried on findings.
const (
	CheckCalcText   = "calc_text_check"
	CheckAllowance  = "allowance_check"
	CheckUnitWeight = "unit_weight"
)

// Finding is one detected, row-scoped defect. Findings are immutable after
// creation; numeric fields are nil when a check has no expected/actual pair
// (e.g. an unevaluable basis).
type Finding struct {
	Row       int
	Cell      string
	CheckType string
	Severity  Severity
	Message   string
	Related   string
	RuleName  string
	Expected  *float64
	Actual    *float64
	Diff      *float64
	Tol       *float64
}

func fptr(v float64) *float64 { return &v }
