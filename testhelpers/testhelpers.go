// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"qtyaudit/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestRun creates an audit_runs record and returns it.
func CreateTestRun(t *testing.T, app *pocketbase.PocketBase, filename string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("audit_runs")
	if err != nil {
		t.Fatalf("failed to find audit_runs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("filename", filename)
	record.Set("sheet", "시설물산출")
	record.Set("rows_checked", 10)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test run: %v", err)
	}

	return record
}

// CreateTestFinding creates a finding record linked to a run and returns it.
func CreateTestFinding(t *testing.T, app *pocketbase.PocketBase, runID string, sortOrder int, severity, message string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("findings")
	if err != nil {
		t.Fatalf("failed to find findings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("run", runID)
	record.Set("sort_order", sortOrder)
	record.Set("row", 12)
	record.Set("cell", "E12")
	record.Set("check_type", "calc_text_check")
	record.Set("severity", severity)
	record.Set("message", message)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test finding: %v", err)
	}

	return record
}

// BuildTestWorkbook produces an xlsx byte stream with the standard takeoff
// headers and the given data rows starting below them. Each row supplies the
// values for columns B..G (공종, 규격, 산출근거, 수량, 단위, 비고).
func BuildTestWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}

	headers := []string{"공종", "규격", "산출근거", "수량", "단위", "비고"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("failed to write header: %v", err)
		}
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+2, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("failed to write cell %s: %v", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteTestRules writes a minimal rules file into dir and returns its path.
func WriteTestRules(t *testing.T, dir string) string {
	t.Helper()

	const body = `round_default_digits: 3
allowance_multiplier_map:
  "4%": 1.04
  "10%": 1.10
excluded_work_types:
  - "설치"
`
	path := filepath.Join(dir, "rules.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
