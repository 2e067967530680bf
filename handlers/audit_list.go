package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"qtyaudit/templates"
)

// HandleAuditList renders the audit run history, newest first.
// Route: GET /audits
func HandleAuditList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runsCol, err := app.FindCollectionByNameOrId("audit_runs")
		if err != nil {
			log.Printf("audit_list: could not find audit_runs collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "문제가 발생했습니다. 다시 시도해 주세요.")
		}

		records, err := app.FindRecordsByFilter(runsCol, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("audit_list: could not query runs: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "문제가 발생했습니다. 다시 시도해 주세요.")
		}

		var items []templates.RunListItem
		for _, rec := range records {
			items = append(items, templates.RunListItem{
				ID:          rec.Id,
				Filename:    rec.GetString("filename"),
				Sheet:       rec.GetString("sheet"),
				RowsChecked: rec.GetInt("rows_checked"),
				HighCount:   rec.GetInt("high_count"),
				MediumCount: rec.GetInt("medium_count"),
				LowCount:    rec.GetInt("low_count"),
				CreatedDate: runCreatedDate(rec),
			})
		}

		data := templates.RunListData{
			Items:      items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.RunListContent(data)
		} else {
			component = templates.RunListPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleAuditLatest redirects to the most recent run, or to the upload form
// when nothing has been audited yet.
// Route: GET /audits/latest
func HandleAuditLatest(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		runsCol, err := app.FindCollectionByNameOrId("audit_runs")
		if err != nil {
			log.Printf("audit_latest: could not find audit_runs collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "문제가 발생했습니다. 다시 시도해 주세요.")
		}

		records, err := app.FindRecordsByFilter(runsCol, "id != ''", "-created", 1, 0, nil)
		if err != nil || len(records) == 0 {
			return e.Redirect(http.StatusFound, "/audits/upload")
		}
		return e.Redirect(http.StatusFound, "/audits/"+records[0].Id)
	}
}
