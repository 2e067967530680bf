package services

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

// RunResult is the outcome of auditing one workbook.
type RunResult struct {
	Sheet       string
	HeaderRow   int
	RowsChecked int
	Report      *Report
}

// AuditWorkbook validates every row of an opened workbook against the rule
// set and aggregates the findings. Rows are independent; they are processed
// in sheet order and the findings keep that encounter order.
func AuditWorkbook(f *excelize.File, rules *RuleSet) (*RunResult, error) {
	wb, err := ReadWorkbook(f)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	for _, row := range wb.Rows {
		report.Add(ValidateRow(rules, row)...)
	}

	log.Printf("audit: sheet=%q header_row=%d rows_checked=%d findings=%d",
		wb.Sheet, wb.HeaderRow, len(wb.Rows), report.Total())

	return &RunResult{
		Sheet:       wb.Sheet,
		HeaderRow:   wb.HeaderRow,
		RowsChecked: len(wb.Rows),
		Report:      report,
	}, nil
}

// AuditReader audits an xlsx stream.
func AuditReader(r io.Reader, rules *RuleSet) (*RunResult, error) {
	f, err := OpenWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return AuditWorkbook(f, rules)
}

// AuditFile audits an xlsx file on disk.
func AuditFile(path string, rules *RuleSet) (*RunResult, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input workbook: %w", err)
	}
	defer fh.Close()
	return AuditReader(fh, rules)
}
