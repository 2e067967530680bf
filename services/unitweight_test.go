package services

import "testing"

func TestUnitChecks(t *testing.T) {
	tests := []struct {
		name       string
		workType   string
		spec       string
		unit       string
		wantCount  int
		wantSev    Severity
		wantRule   string
	}{
		{
			name:      "galvanized tube in kg",
			workType:  "아연도각관",
			spec:      "50x50",
			unit:      "kg",
			wantCount: 1,
			wantSev:   SeverityHigh,
			wantRule:  "unit_weight:아연도각관",
		},
		{
			name:      "galvanized tube in m passes",
			workType:  "아연도각관",
			spec:      "50x50",
			unit:      "m",
			wantCount: 0,
		},
		{
			name:      "steel plate without thickness",
			workType:  "ST PL 설치",
			spec:      "900x900",
			unit:      "ea",
			wantCount: 1,
			wantSev:   SeverityMedium,
			wantRule:  "unit_weight:plate-thickness",
		},
		{
			name:      "steel plate with thickness passes",
			workType:  "ST PL 설치",
			spec:      "900x900 T6",
			unit:      "ea",
			wantCount: 0,
		},
		{
			name:      "angle in square meters",
			workType:  "angle 가공",
			spec:      "L-50x50x4",
			unit:      "m2",
			wantCount: 1,
			wantSev:   SeverityLow,
			wantRule:  "unit_weight:angle-39.65",
		},
		{
			name:      "rebar without diameter",
			workType:  "이형철근",
			spec:      "SD400",
			unit:      "kg",
			wantCount: 1,
			wantSev:   SeverityMedium,
			wantRule:  "unit_weight:rebar-diameter",
		},
		{
			name:      "rebar with diameter passes",
			workType:  "이형철근",
			spec:      "SD400 D13",
			unit:      "kg",
			wantCount: 0,
		},
		{
			name:      "unrelated item",
			workType:  "잔디 식재",
			spec:      "평떼",
			unit:      "m2",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{Index: 10, WorkType: tt.workType, Spec: tt.spec, Unit: tt.unit, UnitCell: "F10"}
			findings := UnitChecks(row)
			if len(findings) != tt.wantCount {
				t.Fatalf("UnitChecks() returned %d findings, want %d: %v", len(findings), tt.wantCount, findings)
			}
			if tt.wantCount == 0 {
				return
			}
			f := findings[0]
			if f.Severity != tt.wantSev {
				t.Errorf("severity = %s, want %s", f.Severity, tt.wantSev)
			}
			if f.RuleName != tt.wantRule {
				t.Errorf("rule = %q, want %q", f.RuleName, tt.wantRule)
			}
			if f.CheckType != CheckUnitWeight {
				t.Errorf("check type = %q, want %q", f.CheckType, CheckUnitWeight)
			}
			if f.Cell != "F10" {
				t.Errorf("cell = %q, want F10", f.Cell)
			}
		})
	}
}
