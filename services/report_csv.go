package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// reportColumns is the detail column order shared by the csv and xlsx
// report artifacts.
var reportColumns = []string{
	"row",
	"cell",
	"check_type",
	"reason",
	"severity",
	"rule_name",
	"related_formula",
	"actual_value",
	"expected_value",
	"difference",
	"tol",
}

// GenerateCSV renders the report detail listing as report.csv content.
// The output starts with a UTF-8 BOM so Excel opens the Korean remark and
// work-type text correctly.
func GenerateCSV(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\xef\xbb\xbf")

	w := csv.NewWriter(&buf)
	if err := w.Write(reportColumns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, f := range report.Grouped() {
		record := []string{
			strconv.Itoa(f.Row),
			f.Cell,
			f.CheckType,
			f.Message,
			string(f.Severity),
			f.RuleName,
			f.Related,
			FormatOptional(f.Actual),
			FormatOptional(f.Expected),
			FormatOptional(f.Diff),
			FormatOptional(f.Tol),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", f.Row, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
