package services

import "testing"

func TestReport_GroupedOrderAndCounts(t *testing.T) {
	rep := NewReport()

	// Mixed severities in encounter order across several rows.
	rep.Add(
		Finding{Row: 3, Severity: SeverityLow, Message: "low-a"},
		Finding{Row: 4, Severity: SeverityHigh, Message: "high-a"},
	)
	rep.Add(Finding{Row: 5, Severity: SeverityMedium, Message: "med-a"})
	rep.Add(
		Finding{Row: 7, Severity: SeverityHigh, Message: "high-b"},
		Finding{Row: 7, Severity: SeverityMedium, Message: "med-b"},
		Finding{Row: 9, Severity: SeverityLow, Message: "low-b"},
	)

	if rep.Total() != 6 {
		t.Fatalf("Total() = %d, want 6", rep.Total())
	}
	if rep.Count(SeverityHigh) != 2 || rep.Count(SeverityMedium) != 2 || rep.Count(SeverityLow) != 2 {
		t.Errorf("counts = %d/%d/%d, want 2/2/2",
			rep.Count(SeverityHigh), rep.Count(SeverityMedium), rep.Count(SeverityLow))
	}

	grouped := rep.Grouped()
	wantOrder := []string{"high-a", "high-b", "med-a", "med-b", "low-a", "low-b"}
	for i, want := range wantOrder {
		if grouped[i].Message != want {
			t.Errorf("grouped[%d] = %q, want %q", i, grouped[i].Message, want)
		}
	}

	// The flat view keeps encounter order untouched.
	flat := rep.Findings()
	wantFlat := []string{"low-a", "high-a", "med-a", "high-b", "med-b", "low-b"}
	for i, want := range wantFlat {
		if flat[i].Message != want {
			t.Errorf("flat[%d] = %q, want %q", i, flat[i].Message, want)
		}
	}
}

func TestReport_Empty(t *testing.T) {
	rep := NewReport()
	if rep.Total() != 0 {
		t.Errorf("Total() = %d, want 0", rep.Total())
	}
	if len(rep.Grouped()) != 0 {
		t.Errorf("Grouped() = %v, want empty", rep.Grouped())
	}
	for _, sev := range Severities {
		if rep.Count(sev) != 0 {
			t.Errorf("Count(%s) = %d, want 0", sev, rep.Count(sev))
		}
	}
}

func TestSeverity_Rank(t *testing.T) {
	if !(SeverityHigh.Rank() < SeverityMedium.Rank() && SeverityMedium.Rank() < SeverityLow.Rank()) {
		t.Error("severity order must be HIGH > MEDIUM > LOW")
	}
	if Severity("BOGUS").Rank() <= SeverityLow.Rank() {
		t.Error("unknown severities must sort after LOW")
	}
}
