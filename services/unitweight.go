package services

import (
	"regexp"
	"strings"
)

var (
	plateThicknessPattern = regexp.MustCompile(`(?i)\bT\s*\d+(\.\d+)?\b`)
	rebarDiameterPattern  = regexp.MustCompile(`(?i)\bD\s*\d+\b`)
)

// UnitChecks runs unit-of-measure plausibility heuristics over a row's work
// type, spec and unit. These catch items priced against the wrong unit or
// specs missing the dimension a weight lookup needs.
func UnitChecks(row Row) []Finding {
	var findings []Finding

	add := func(sev Severity, message, ruleName string) {
		findings = append(findings, Finding{
			Row:       row.Index,
			Cell:      row.UnitCell,
			CheckType: CheckUnitWeight,
			Severity:  sev,
			Message:   message,
			RuleName:  ruleName,
		})
	}

	workSpec := row.WorkType + " " + row.Spec
	lower := strings.ToLower(workSpec)
	unit := strings.ToLower(strings.TrimSpace(row.Unit))

	if strings.Contains(workSpec, "아연도각관") {
		if unit == "kg" {
			add(SeverityHigh, "아연도각관은 m 단가 처리 가능 품목인데 kg 단위로 입력됨", "unit_weight:아연도각관")
		}
		return findings
	}

	if strings.Contains(lower, "st pl") || strings.Contains(lower, "sts pl") {
		if !plateThicknessPattern.MatchString(row.Spec) {
			add(SeverityMedium, "PL 품목인데 규격에 두께(T값) 정보가 없음", "unit_weight:plate-thickness")
		}
	}

	if strings.Contains(lower, "angle") {
		switch unit {
		case "m", "m2", "㎡":
			add(SeverityLow, "angle 품목은 39.65 kg/m2 기준 검토 대상", "unit_weight:angle-39.65")
		}
	}

	if strings.Contains(workSpec, "이형철근") {
		if !rebarDiameterPattern.MatchString(row.Spec) {
			add(SeverityMedium, "이형철근 품목인데 규격에 D값이 없음", "unit_weight:rebar-diameter")
		}
	}

	return findings
}
