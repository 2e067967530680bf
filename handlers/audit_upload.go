package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"qtyaudit/services"
	"qtyaudit/templates"
)

// HandleAuditUploadPage renders the upload form.
// Route: GET /audits/upload
func HandleAuditUploadPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.UploadContent().Render(e.Request.Context(), e.Response)
		}
		return templates.UploadPage().Render(e.Request.Context(), e.Response)
	}
}

// HandleAuditRun receives an uploaded takeoff workbook, audits it, stores the
// run with its findings, and redirects to the run's detail page.
// Route: POST /audits
func HandleAuditRun(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 20MB)
		if err := e.Request.ParseMultipartForm(20 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "파일이 너무 크거나 폼 데이터가 올바르지 않습니다.")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "업로드할 파일을 선택해 주세요.")
		}
		defer file.Close()

		rules, err := services.LoadRules(rulesPath())
		if err != nil {
			log.Printf("audit_run: load rules: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "검증 규칙을 불러올 수 없습니다.")
		}

		result, err := services.AuditReader(file, rules)
		if err != nil {
			log.Printf("audit_run: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "산출서를 읽을 수 없습니다. xlsx 파일인지 확인해 주세요.")
		}

		runID, err := saveRun(app, header.Filename, result)
		if err != nil {
			log.Printf("audit_run: save: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "검증 결과를 저장하지 못했습니다.")
		}

		SetToast(e, "success", fmt.Sprintf("검증 완료: 지적 %d건", result.Report.Total()))

		target := "/audits/" + runID
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", target)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, target)
	}
}

// saveRun persists one audit run and its findings. Findings are stored in
// severity-grouped order so reads can simply sort by sort_order.
func saveRun(app *pocketbase.PocketBase, filename string, result *services.RunResult) (string, error) {
	runsCol, err := app.FindCollectionByNameOrId("audit_runs")
	if err != nil {
		return "", fmt.Errorf("audit_runs collection: %w", err)
	}
	findingsCol, err := app.FindCollectionByNameOrId("findings")
	if err != nil {
		return "", fmt.Errorf("findings collection: %w", err)
	}

	run := core.NewRecord(runsCol)
	run.Set("filename", filename)
	run.Set("sheet", result.Sheet)
	run.Set("rows_checked", result.RowsChecked)
	run.Set("high_count", result.Report.Count(services.SeverityHigh))
	run.Set("medium_count", result.Report.Count(services.SeverityMedium))
	run.Set("low_count", result.Report.Count(services.SeverityLow))
	if err := app.Save(run); err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	for i, f := range result.Report.Grouped() {
		rec := core.NewRecord(findingsCol)
		rec.Set("run", run.Id)
		rec.Set("sort_order", i+1)
		rec.Set("row", f.Row)
		rec.Set("cell", f.Cell)
		rec.Set("check_type", f.CheckType)
		rec.Set("severity", string(f.Severity))
		rec.Set("message", f.Message)
		rec.Set("rule_name", f.RuleName)
		rec.Set("related", f.Related)
		rec.Set("expected", services.FormatOptional(f.Expected))
		rec.Set("actual", services.FormatOptional(f.Actual))
		rec.Set("difference", services.FormatOptional(f.Diff))
		rec.Set("tolerance", services.FormatOptional(f.Tol))
		if err := app.Save(rec); err != nil {
			return "", fmt.Errorf("save finding %d: %w", i+1, err)
		}
	}

	return run.Id, nil
}
