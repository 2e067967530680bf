package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReportMeta carries run-level context for the rendered report artifacts.
type ReportMeta struct {
	Filename    string
	Sheet       string
	CreatedDate string
	RowsChecked int
}

// severityFill maps a severity to the fill color used on its rows.
func severityFill(sev Severity) string {
	switch sev {
	case SeverityHigh:
		return "#FDE2E2"
	case SeverityMedium:
		return "#FDF0DC"
	default:
		return "#EFEFEF"
	}
}

// GenerateReportExcel renders the audit report as an xlsx workbook with a
// Summary sheet (per-severity counts) and a Findings sheet (detail listing
// in severity-grouped order).
func GenerateReportExcel(meta ReportMeta, report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	findingsSheet := "Findings"
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return nil, fmt.Errorf("create findings sheet: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	severityStyles := make(map[Severity]int, len(Severities))
	for _, sev := range Severities {
		style, err := f.NewStyle(&excelize.Style{
			Font:   &excelize.Font{Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{severityFill(sev)}, Pattern: 1},
			Border: thinBorders(),
		})
		if err != nil {
			return nil, fmt.Errorf("create %s style: %w", sev, err)
		}
		severityStyles[sev] = style
	}

	// ── Summary sheet ───────────────────────────────────────────────────

	f.SetColWidth(summarySheet, "A", "A", 14)
	f.SetColWidth(summarySheet, "B", "B", 10)

	f.MergeCell(summarySheet, "A1", "B1")
	f.SetCellValue(summarySheet, "A1", "Quantity Takeoff Audit")
	f.SetCellStyle(summarySheet, "A1", "B1", titleStyle)

	f.SetCellValue(summarySheet, "A2", "File: "+meta.Filename)
	f.SetCellValue(summarySheet, "A3", "Sheet: "+meta.Sheet)
	f.SetCellValue(summarySheet, "A4", fmt.Sprintf("Rows checked: %d", meta.RowsChecked))
	f.SetCellValue(summarySheet, "A5", "Date: "+meta.CreatedDate)

	f.SetCellValue(summarySheet, "A7", "severity")
	f.SetCellValue(summarySheet, "B7", "count")
	f.SetCellStyle(summarySheet, "A7", "B7", headerStyle)

	row := 8
	for _, sev := range Severities {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(summarySheet, "A"+rowStr, string(sev))
		f.SetCellValue(summarySheet, "B"+rowStr, report.Count(sev))
		f.SetCellStyle(summarySheet, "A"+rowStr, "B"+rowStr, severityStyles[sev])
		row++
	}
	rowStr := fmt.Sprintf("%d", row)
	f.SetCellValue(summarySheet, "A"+rowStr, "total")
	f.SetCellValue(summarySheet, "B"+rowStr, report.Total())

	// ── Findings sheet ──────────────────────────────────────────────────

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 10, 16, 40, 10, 26, 50, 12, 12, 12, 8}
	for i, col := range columns {
		f.SetColWidth(findingsSheet, col, col, widths[i])
	}

	for i, h := range reportColumns {
		cell := fmt.Sprintf("%s1", columns[i])
		f.SetCellValue(findingsSheet, cell, h)
	}
	f.SetCellStyle(findingsSheet, "A1", lastCol+"1", headerStyle)

	row = 2
	for _, fd := range report.Grouped() {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(findingsSheet, "A"+rowStr, fd.Row)
		f.SetCellValue(findingsSheet, "B"+rowStr, fd.Cell)
		f.SetCellValue(findingsSheet, "C"+rowStr, fd.CheckType)
		f.SetCellValue(findingsSheet, "D"+rowStr, sanitizeReportCell(fd.Message))
		f.SetCellValue(findingsSheet, "E"+rowStr, string(fd.Severity))
		f.SetCellValue(findingsSheet, "F"+rowStr, sanitizeReportCell(fd.RuleName))
		f.SetCellValue(findingsSheet, "G"+rowStr, sanitizeReportCell(fd.Related))
		setOptionalCell(f, findingsSheet, "H"+rowStr, fd.Actual)
		setOptionalCell(f, findingsSheet, "I"+rowStr, fd.Expected)
		setOptionalCell(f, findingsSheet, "J"+rowStr, fd.Diff)
		setOptionalCell(f, findingsSheet, "K"+rowStr, fd.Tol)
		f.SetCellStyle(findingsSheet, "A"+rowStr, lastCol+rowStr, severityStyles[fd.Severity])
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel report: %w", err)
	}
	return buf.Bytes(), nil
}

func setOptionalCell(f *excelize.File, sheet, cell string, v *float64) {
	if v == nil {
		return
	}
	f.SetCellValue(sheet, cell, *v)
}

// thinBorders returns a uniform thin border on all four sides.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#CCCCCC", Style: 1},
		{Type: "right", Color: "#CCCCCC", Style: 1},
		{Type: "top", Color: "#CCCCCC", Style: 1},
		{Type: "bottom", Color: "#CCCCCC", Style: 1},
	}
}

// sanitizeReportCell prefixes text that Excel would interpret as a formula.
// Related-formula context regularly starts with "=", which must land in the
// report as inert text.
func sanitizeReportCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
