package handlers

import (
	"fmt"
	"os"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"qtyaudit/services"
	"qtyaudit/templates"
)

// rulesPath resolves the audit rules file: the QTYAUDIT_RULES environment
// variable when set, otherwise rules.yml next to the binary.
func rulesPath() string {
	if p := os.Getenv("QTYAUDIT_RULES"); p != "" {
		return p
	}
	return "rules.yml"
}

func severityClass(sev string) string {
	switch services.Severity(sev) {
	case services.SeverityHigh:
		return "sev-high"
	case services.SeverityMedium:
		return "sev-medium"
	default:
		return "sev-low"
	}
}

// loadRunFindings returns a run's finding records in stored display order.
func loadRunFindings(app *pocketbase.PocketBase, runID string) ([]*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("findings")
	if err != nil {
		return nil, fmt.Errorf("findings collection: %w", err)
	}
	records, err := app.FindRecordsByFilter(
		col,
		"run = {:runId}",
		"sort_order", 0, 0,
		map[string]any{"runId": runID},
	)
	if err != nil {
		return nil, fmt.Errorf("query findings for run %s: %w", runID, err)
	}
	return records, nil
}

// recordToFinding maps a stored finding back into the engine's finding type,
// used when regenerating report artifacts for download.
func recordToFinding(rec *core.Record) services.Finding {
	return services.Finding{
		Row:       rec.GetInt("row"),
		Cell:      rec.GetString("cell"),
		CheckType: rec.GetString("check_type"),
		Severity:  services.Severity(rec.GetString("severity")),
		Message:   rec.GetString("message"),
		RuleName:  rec.GetString("rule_name"),
		Related:   rec.GetString("related"),
		Expected:  services.ParseNumber(rec.GetString("expected")),
		Actual:    services.ParseNumber(rec.GetString("actual")),
		Diff:      services.ParseNumber(rec.GetString("difference")),
		Tol:       services.ParseNumber(rec.GetString("tolerance")),
	}
}

// recordToFindingView maps a stored finding into its display form.
func recordToFindingView(rec *core.Record) templates.FindingView {
	sev := rec.GetString("severity")
	return templates.FindingView{
		Row:           rec.GetInt("row"),
		Cell:          rec.GetString("cell"),
		CheckType:     rec.GetString("check_type"),
		Severity:      sev,
		SeverityClass: severityClass(sev),
		Message:       rec.GetString("message"),
		RuleName:      rec.GetString("rule_name"),
		Related:       rec.GetString("related"),
		Expected:      rec.GetString("expected"),
		Actual:        rec.GetString("actual"),
		Diff:          rec.GetString("difference"),
		Tol:           rec.GetString("tolerance"),
	}
}

// runCreatedDate formats a run's created timestamp for display.
func runCreatedDate(rec *core.Record) string {
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		return dt.Time().Format("2006-01-02 15:04")
	}
	return "—"
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
