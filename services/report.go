package services

import "sort"

// Report collects findings across a run. Findings keep their encounter
// order; Grouped returns the presentation order (HIGH, MEDIUM, LOW buckets,
// encounter order preserved inside each). A Report never mutates a Finding
// after receipt.
type Report struct {
	findings []Finding
	counts   map[Severity]int
}

func NewReport() *Report {
	return &Report{counts: make(map[Severity]int)}
}

// Add appends findings in encounter order.
func (r *Report) Add(findings ...Finding) {
	for _, f := range findings {
		r.findings = append(r.findings, f)
		r.counts[f.Severity]++
	}
}

// Findings returns the flat list in encounter order.
func (r *Report) Findings() []Finding {
	return r.findings
}

// Grouped returns findings sorted into severity buckets, HIGH first. The
// sort is stable so encounter order survives within each bucket.
func (r *Report) Grouped() []Finding {
	grouped := make([]Finding, len(r.findings))
	copy(grouped, r.findings)
	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Severity.Rank() < grouped[j].Severity.Rank()
	})
	return grouped
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(sev Severity) int {
	return r.counts[sev]
}

// Total returns the overall finding count.
func (r *Report) Total() int {
	return len(r.findings)
}
