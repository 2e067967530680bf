package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"qtyaudit/templates"
)

// HandleAuditView renders one run's findings.
// Route: GET /audits/{id}
func HandleAuditView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runID := e.Request.PathValue("id")
		if runID == "" {
			return e.String(http.StatusBadRequest, "Missing run ID")
		}

		run, err := app.FindRecordById("audit_runs", runID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "검증 결과를 찾을 수 없습니다.")
		}

		records, err := loadRunFindings(app, runID)
		if err != nil {
			log.Printf("audit_view: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "문제가 발생했습니다. 다시 시도해 주세요.")
		}

		data := templates.RunViewData{
			ID:          run.Id,
			Filename:    run.GetString("filename"),
			Sheet:       run.GetString("sheet"),
			RowsChecked: run.GetInt("rows_checked"),
			CreatedDate: runCreatedDate(run),
			HighCount:   run.GetInt("high_count"),
			MediumCount: run.GetInt("medium_count"),
			LowCount:    run.GetInt("low_count"),
			Total:       len(records),
		}
		for _, rec := range records {
			data.Findings = append(data.Findings, recordToFindingView(rec))
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.RunViewContent(data)
		} else {
			component = templates.RunViewPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleAuditDelete removes a run; its findings cascade.
// Route: DELETE /audits/{id}
func HandleAuditDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runID := e.Request.PathValue("id")
		if runID == "" {
			return e.String(http.StatusBadRequest, "Missing run ID")
		}

		run, err := app.FindRecordById("audit_runs", runID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "검증 결과를 찾을 수 없습니다.")
		}

		if err := app.Delete(run); err != nil {
			log.Printf("audit_delete: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "삭제하지 못했습니다.")
		}

		SetToast(e, "success", "검증 결과를 삭제했습니다.")
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/audits")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/audits")
	}
}
