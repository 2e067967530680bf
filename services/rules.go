package services

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleSet is the process-wide audit configuration. It is loaded once per run
// and never mutated afterwards, so it is safe to share across concurrent
// audits without synchronization.
type RuleSet struct {
	// RoundDefaultDigits is the rounding precision assumed for quantity
	// cells whose formula carries no explicit ROUND(..., n).
	RoundDefaultDigits int

	// PercentPattern extracts the allowance percentage from remark text.
	// Capture group 1 holds the numeric part, e.g. "4" out of "4% 할증".
	PercentPattern *regexp.Regexp

	// Multipliers maps a percentage key like "4%" to its multiplier, 1.04.
	Multipliers map[string]float64

	// ExcludedWorkTypes lists work-type labels exempt from allowance
	// checking. Matching is by containment: "설치" exempts "시설물 설치공".
	ExcludedWorkTypes []string
}

type rulesFile struct {
	RoundDefaultDigits *int               `yaml:"round_default_digits"`
	PercentRegex       string             `yaml:"allowance_percent_extract_regex"`
	MultiplierMap      map[string]float64 `yaml:"allowance_multiplier_map"`
	ExcludedWorkTypes  []string           `yaml:"excluded_work_types"`
}

const (
	defaultRoundDigits  = 3
	defaultPercentRegex = `(\d+(\.\d+)?)%`
)

// LoadRules reads and validates a rules YAML file. Any failure here is fatal
// to the run: the caller must not process rows with a broken configuration.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	rs, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rs, nil
}

// ParseRules decodes rules YAML. yaml.v3 rejects duplicate mapping keys, so
// a multiplier map with a repeated percentage fails here rather than
// silently keeping one of the values.
func ParseRules(data []byte) (*RuleSet, error) {
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	digits := defaultRoundDigits
	if rf.RoundDefaultDigits != nil {
		digits = *rf.RoundDefaultDigits
	}
	if digits < 0 {
		return nil, fmt.Errorf("round_default_digits must be >= 0, got %d", digits)
	}

	pattern := rf.PercentRegex
	if pattern == "" {
		pattern = defaultPercentRegex
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("allowance_percent_extract_regex: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("allowance_percent_extract_regex needs a capture group for the numeric percentage")
	}

	for key, mult := range rf.MultiplierMap {
		if mult <= 0 {
			return nil, fmt.Errorf("allowance_multiplier_map[%q]: multiplier must be positive, got %v", key, mult)
		}
	}

	mults := make(map[string]float64, len(rf.MultiplierMap))
	for k, v := range rf.MultiplierMap {
		mults[strings.TrimSpace(k)] = v
	}

	excluded := make([]string, 0, len(rf.ExcludedWorkTypes))
	for _, w := range rf.ExcludedWorkTypes {
		if s := strings.TrimSpace(w); s != "" {
			excluded = append(excluded, s)
		}
	}

	return &RuleSet{
		RoundDefaultDigits: digits,
		PercentPattern:     re,
		Multipliers:        mults,
		ExcludedWorkTypes:  excluded,
	}, nil
}

// ExtractPercent finds the allowance percentage in remark text and returns
// it in map-key form ("4%"). ok=false means allowance checking does not
// apply to the row.
func (r *RuleSet) ExtractPercent(remark string) (string, bool) {
	m := r.PercentPattern.FindStringSubmatch(remark)
	if m == nil {
		return "", false
	}
	return m[1] + "%", true
}

// Multiplier resolves a percentage key to its numeric multiplier.
func (r *RuleSet) Multiplier(percentKey string) (float64, bool) {
	mult, ok := r.Multipliers[percentKey]
	return mult, ok
}

// IsExemptWorkType reports whether a work-type label is exempt from
// allowance checking. Exemption entries match by containment so a short
// label like "터파기" covers every work type that mentions it.
func (r *RuleSet) IsExemptWorkType(workType string) bool {
	label := strings.ToLower(strings.TrimSpace(workType))
	if label == "" {
		return false
	}
	for _, ex := range r.ExcludedWorkTypes {
		if strings.Contains(label, strings.ToLower(ex)) {
			return true
		}
	}
	return false
}
