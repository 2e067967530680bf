package services

import (
	"fmt"
	"math"
)

// Row is one spreadsheet line under audit, as mapped by the workbook reader.
// Rows are immutable inputs; the validator holds no state across them.
type Row struct {
	// Index is the 1-based sheet row number.
	Index int

	WorkType string
	Spec     string
	Unit     string
	Remark   string

	// Basis is the raw text of the 산출근거 (computation basis) cell.
	Basis string

	// QtyFormula is the quantity cell's formula text, "" for constants.
	QtyFormula string

	// Qty is the quantity cell's numeric value, nil when absent.
	Qty *float64

	// Source cell addresses, used for finding locations.
	BasisCell  string
	QtyCell    string
	RemarkCell string
	UnitCell   string
}

// related builds the context string attached to findings, mirroring the
// basis / quantity formula / remark triple an auditor wants to see.
func (r Row) related() string {
	return fmt.Sprintf("D:%s | E:%s | BIGO:%s", r.Basis, r.QtyFormula, r.Remark)
}

// ValidateRow runs every per-row check and returns the findings in a fixed
// order: basis-vs-quantity first, then allowance, then unit heuristics. A
// pure function of (row, rules); rows can be validated in any order or
// concurrently and merged by index.
func ValidateRow(rules *RuleSet, row Row) []Finding {
	digits := GoverningDigits(row.QtyFormula, rules)
	tol := Tolerance(digits)

	var basis *float64
	if row.Basis != "" {
		if v, ok := Evaluate(row.Basis); ok {
			basis = &v
		}
	}

	var findings []Finding

	// 1. Basis vs quantity. An unevaluable basis (cell references, foreign
	// functions, broken arithmetic) is a LOW data defect, never a HIGH
	// mismatch computed from a guess.
	switch {
	case row.Basis != "" && basis == nil:
		findings = append(findings, Finding{
			Row:       row.Index,
			Cell:      row.BasisCell,
			CheckType: CheckCalcText,
			Severity:  SeverityLow,
			Message:   "basis not computable",
			Related:   row.related(),
			RuleName:  fmt.Sprintf("ROUND(%d) 비교", digits),
		})
	case basis != nil && row.Qty != nil:
		expected := roundTo(*basis, digits)
		diff := math.Abs(expected - *row.Qty)
		if diff > tol {
			findings = append(findings, Finding{
				Row:       row.Index,
				Cell:      row.BasisCell + "/" + row.QtyCell,
				CheckType: CheckCalcText,
				Severity:  SeverityHigh,
				Message:   "calculation mismatch",
				Related:   row.related(),
				RuleName:  fmt.Sprintf("ROUND(%d) 비교", digits),
				Expected:  fptr(expected),
				Actual:    fptr(*row.Qty),
				Diff:      fptr(diff),
				Tol:       fptr(tol),
			})
		}
	}

	// 2. Allowance policy.
	res := ResolveAllowance(rules, row.Remark, row.WorkType, row.Basis, basis, digits)
	switch {
	case res.UnknownPercent:
		findings = append(findings, Finding{
			Row:       row.Index,
			Cell:      row.RemarkCell,
			CheckType: CheckAllowance,
			Severity:  SeverityLow,
			Message:   fmt.Sprintf("unknown allowance percent %s", res.PercentKey),
			Related:   row.related(),
			RuleName:  "allowance_multiplier_map missing",
		})
	case res.MissingBasis:
		findings = append(findings, Finding{
			Row:       row.Index,
			Cell:      row.QtyCell,
			CheckType: CheckAllowance,
			Severity:  SeverityLow,
			Message:   fmt.Sprintf("insufficient data to verify %s allowance", res.PercentKey),
			Related:   row.related(),
			RuleName:  fmt.Sprintf("비고 퍼센트(%s)", res.PercentKey),
		})
	case res.Applies && row.Qty == nil:
		findings = append(findings, Finding{
			Row:       row.Index,
			Cell:      row.QtyCell,
			CheckType: CheckAllowance,
			Severity:  SeverityLow,
			Message:   fmt.Sprintf("insufficient data to verify %s allowance", res.PercentKey),
			Related:   row.related(),
			RuleName:  fmt.Sprintf("비고 퍼센트(%s)", res.PercentKey),
		})
	case res.Applies:
		diff := math.Abs(res.Expected - *row.Qty)
		if diff > tol {
			findings = append(findings, Finding{
				Row:       row.Index,
				Cell:      row.QtyCell,
				CheckType: CheckAllowance,
				Severity:  SeverityMedium,
				Message:   "allowance mismatch",
				Related:   row.related(),
				RuleName:  fmt.Sprintf("비고 퍼센트(%s) | D*%v", res.PercentKey, res.Multiplier),
				Expected:  fptr(res.Expected),
				Actual:    fptr(*row.Qty),
				Diff:      fptr(diff),
				Tol:       fptr(tol),
			})
		}
	}

	// 3. Unit/spec plausibility heuristics.
	findings = append(findings, UnitChecks(row)...)

	return findings
}
