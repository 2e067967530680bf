package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"qtyaudit/services"
)

// buildRunReport reloads a stored run as a report plus its artifact metadata.
func buildRunReport(app *pocketbase.PocketBase, runID string) (services.ReportMeta, *services.Report, error) {
	run, err := app.FindRecordById("audit_runs", runID)
	if err != nil {
		return services.ReportMeta{}, nil, fmt.Errorf("run not found: %w", err)
	}

	records, err := loadRunFindings(app, runID)
	if err != nil {
		return services.ReportMeta{}, nil, err
	}

	report := services.NewReport()
	for _, rec := range records {
		report.Add(recordToFinding(rec))
	}

	meta := services.ReportMeta{
		Filename:    run.GetString("filename"),
		Sheet:       run.GetString("sheet"),
		CreatedDate: runCreatedDate(run),
		RowsChecked: run.GetInt("rows_checked"),
	}
	return meta, report, nil
}

// HandleAuditExport downloads a run's report as csv, excel or pdf.
// Route: GET /audits/{id}/export/{format}
func HandleAuditExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runID := e.Request.PathValue("id")
		if runID == "" {
			return e.String(http.StatusBadRequest, "Missing run ID")
		}
		format := e.Request.PathValue("format")

		meta, report, err := buildRunReport(app, runID)
		if err != nil {
			log.Printf("audit_export: %v", err)
			return e.String(http.StatusNotFound, "Run not found")
		}

		base := sanitizeFilename("report_" + meta.Filename)

		var (
			payload     []byte
			contentType string
			filename    string
		)
		switch format {
		case "csv":
			payload, err = services.GenerateCSV(report)
			contentType = "text/csv; charset=utf-8"
			filename = base + ".csv"
		case "excel":
			payload, err = services.GenerateReportExcel(meta, report)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			filename = base + ".xlsx"
		case "pdf":
			payload, err = services.GenerateReportPDF(meta, report)
			contentType = "application/pdf"
			filename = base + ".pdf"
		default:
			return e.String(http.StatusBadRequest, "Unknown export format")
		}
		if err != nil {
			log.Printf("audit_export: generate %s: %v", format, err)
			return e.String(http.StatusInternalServerError, "Failed to generate report")
		}

		e.Response.Header().Set("Content-Type", contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(payload)
		return nil
	}
}
