package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateReportExcel(t *testing.T) {
	meta := ReportMeta{
		Filename:    "takeoff.xlsx",
		Sheet:       "시설물산출",
		CreatedDate: "2026-08-25",
		RowsChecked: 42,
	}

	data, err := GenerateReportExcel(meta, sampleReport())
	if err != nil {
		t.Fatalf("GenerateReportExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen generated workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary" || sheets[1] != "Findings" {
		t.Fatalf("sheets = %v, want [Summary Findings]", sheets)
	}

	if v, _ := f.GetCellValue("Summary", "A1"); v != "Quantity Takeoff Audit" {
		t.Errorf("Summary!A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Summary", "A2"); v != "File: takeoff.xlsx" {
		t.Errorf("Summary!A2 = %q", v)
	}
	if v, _ := f.GetCellValue("Summary", "A4"); v != "Rows checked: 42" {
		t.Errorf("Summary!A4 = %q", v)
	}

	// Severity counts start on row 8 in HIGH/MEDIUM/LOW order.
	if v, _ := f.GetCellValue("Summary", "B8"); v != "1" {
		t.Errorf("HIGH count cell = %q, want 1", v)
	}
	if v, _ := f.GetCellValue("Summary", "B9"); v != "1" {
		t.Errorf("MEDIUM count cell = %q, want 1", v)
	}
	if v, _ := f.GetCellValue("Summary", "B11"); v != "2" {
		t.Errorf("total cell = %q, want 2", v)
	}

	if v, _ := f.GetCellValue("Findings", "A1"); v != "row" {
		t.Errorf("Findings!A1 = %q", v)
	}
	// First data row is the HIGH finding from row 7.
	if v, _ := f.GetCellValue("Findings", "A2"); v != "7" {
		t.Errorf("Findings!A2 = %q, want 7", v)
	}
	if v, _ := f.GetCellValue("Findings", "E2"); v != string(SeverityHigh) {
		t.Errorf("Findings!E2 = %q", v)
	}
	if v, _ := f.GetCellValue("Findings", "A3"); v != "9" {
		t.Errorf("Findings!A3 = %q, want 9", v)
	}
}

func TestSanitizeReportCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"=ROUND(D7,3)", "'=ROUND(D7,3)"},
		{"+100", "'+100"},
		{"-4% 조정", "'-4% 조정"},
		{"@cmd", "'@cmd"},
		{"calculation mismatch", "calculation mismatch"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeReportCell(tt.in); got != tt.want {
			t.Errorf("sanitizeReportCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
