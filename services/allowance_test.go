package services

import (
	"math"
	"testing"
)

func TestResolveAllowance(t *testing.T) {
	rs := testRules(t)
	basis := 100.0

	tests := []struct {
		name     string
		remark   string
		workType string
		basisTxt string
		basis    *float64
		expect   AllowanceResult
	}{
		{
			name:     "applies with expected quantity",
			remark:   "4% 할증",
			workType: "재료",
			basisTxt: "50*2",
			basis:    &basis,
			expect:   AllowanceResult{PercentKey: "4%", Applies: true, Multiplier: 1.04, Expected: 104},
		},
		{
			name:     "no percentage",
			remark:   "현장 확인",
			workType: "재료",
			basisTxt: "50*2",
			basis:    &basis,
			expect:   AllowanceResult{},
		},
		{
			name:     "exempt work type",
			remark:   "4% 할증",
			workType: "시설물 설치공",
			basisTxt: "50*2",
			basis:    &basis,
			expect:   AllowanceResult{},
		},
		{
			name:     "unknown percent",
			remark:   "7% 할증",
			workType: "재료",
			basisTxt: "50*2",
			basis:    &basis,
			expect:   AllowanceResult{PercentKey: "7%", UnknownPercent: true},
		},
		{
			name:     "double counting guard",
			remark:   "4% 할증",
			workType: "재료",
			basisTxt: "100*1.04",
			basis:    fptr(104),
			expect:   AllowanceResult{},
		},
		{
			name:     "guard with spacing",
			remark:   "4%",
			workType: "재료",
			basisTxt: "25 * 4 * 1.04",
			basis:    fptr(104),
			expect:   AllowanceResult{},
		},
		{
			name:     "missing basis",
			remark:   "4% 할증",
			workType: "재료",
			basisTxt: "B5*2",
			basis:    nil,
			expect:   AllowanceResult{PercentKey: "4%", MissingBasis: true, Multiplier: 1.04},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAllowance(rs, tt.remark, tt.workType, tt.basisTxt, tt.basis, 3)
			if got.PercentKey != tt.expect.PercentKey ||
				got.UnknownPercent != tt.expect.UnknownPercent ||
				got.MissingBasis != tt.expect.MissingBasis ||
				got.Applies != tt.expect.Applies {
				t.Fatalf("ResolveAllowance() = %+v, want %+v", got, tt.expect)
			}
			if got.Applies {
				if math.Abs(got.Expected-tt.expect.Expected) > 1e-9 {
					t.Errorf("Expected = %v, want %v", got.Expected, tt.expect.Expected)
				}
				if math.Abs(got.Multiplier-tt.expect.Multiplier) > 1e-9 {
					t.Errorf("Multiplier = %v, want %v", got.Multiplier, tt.expect.Multiplier)
				}
			}
		})
	}
}

func TestHasMultiplierFactor(t *testing.T) {
	tests := []struct {
		name   string
		basis  string
		mult   float64
		expect bool
	}{
		{"exact factor", "100*1.04", 1.04, true},
		{"spaced factor", "100 * 1.04", 1.04, true},
		{"factor among others", "2.5*4*1.1", 1.1, true},
		{"different factor", "100*1.05", 1.04, false},
		{"no multiplication", "100+1.04", 1.04, false},
		{"empty", "", 1.04, false},
		{"comma noise", "1,000*1.04", 1.04, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasMultiplierFactor(tt.basis, tt.mult); got != tt.expect {
				t.Errorf("HasMultiplierFactor(%q, %v) = %v, want %v", tt.basis, tt.mult, got, tt.expect)
			}
		})
	}
}
