package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// RunListItem is one audit run in the history table.
type RunListItem struct {
	ID          string
	Filename    string
	Sheet       string
	RowsChecked int
	HighCount   int
	MediumCount int
	LowCount    int
	CreatedDate string
}

// RunListData feeds the run history page.
type RunListData struct {
	Items      []RunListItem
	TotalCount int
}

// FindingView is one finding row, pre-formatted for display.
type FindingView struct {
	Row           int
	Cell          string
	CheckType     string
	Severity      string
	SeverityClass string
	Message       string
	RuleName      string
	Related       string
	Expected      string
	Actual        string
	Diff          string
	Tol           string
}

// RunViewData feeds the single-run detail page.
type RunViewData struct {
	ID          string
	Filename    string
	Sheet       string
	RowsChecked int
	CreatedDate string
	HighCount   int
	MediumCount int
	LowCount    int
	Total       int
	Findings    []FindingView
}

// UploadContent renders the upload form partial.
func UploadContent() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="card">
<h1>산출서 업로드</h1>
<p class="hint">수량산출서(.xlsx)를 올리면 산출근거·할증·단위를 검증합니다.</p>
<form method="post" action="/audits" enctype="multipart/form-data"
      hx-post="/audits" hx-encoding="multipart/form-data" hx-target="#main">
<input type="file" name="file" accept=".xlsx" required>
<button type="submit" class="btn btn-primary">검증 시작</button>
</form>
</section>
`)
		return err
	})
}

// UploadPage renders the upload form inside the layout.
func UploadPage() templ.Component {
	return Layout("산출서 업로드", UploadContent())
}

// RunListContent renders the run history table partial.
func RunListContent(data RunListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="card">
<h1>검증 이력 <span class="count">(%d)</span></h1>
`, data.TotalCount); err != nil {
			return err
		}

		if len(data.Items) == 0 {
			_, err := io.WriteString(w, `<p class="empty">아직 검증한 파일이 없습니다. <a href="/audits/upload">새 검증</a>을 시작하세요.</p>
</section>
`)
			return err
		}

		if _, err := io.WriteString(w, `<table class="run-table">
<thead><tr><th>파일</th><th>시트</th><th>행 수</th><th>HIGH</th><th>MEDIUM</th><th>LOW</th><th>일자</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}

		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/audits/%s" hx-get="/audits/%s" hx-target="#main" hx-push-url="true">%s</a></td>
<td>%s</td>
<td>%d</td>
<td class="sev-high">%d</td>
<td class="sev-medium">%d</td>
<td class="sev-low">%d</td>
<td>%s</td>
<td><button class="btn btn-ghost" hx-delete="/audits/%s" hx-confirm="이 검증 결과를 삭제할까요?" hx-target="#main">삭제</button></td>
</tr>
`,
				templ.EscapeString(item.ID), templ.EscapeString(item.ID), templ.EscapeString(item.Filename),
				templ.EscapeString(item.Sheet),
				item.RowsChecked, item.HighCount, item.MediumCount, item.LowCount,
				templ.EscapeString(item.CreatedDate),
				templ.EscapeString(item.ID),
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody>
</table>
</section>
`)
		return err
	})
}

// RunListPage renders the run history inside the layout.
func RunListPage(data RunListData) templ.Component {
	return Layout("검증 이력", RunListContent(data))
}

// RunViewContent renders one run's findings partial.
func RunViewContent(data RunViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="card">
<h1>%s</h1>
<p class="meta">시트 %s · 검사한 행 %d · %s</p>
<div class="summary">
<span class="pill sev-high">HIGH %d</span>
<span class="pill sev-medium">MEDIUM %d</span>
<span class="pill sev-low">LOW %d</span>
<span class="pill">합계 %d</span>
</div>
<div class="actions">
<a class="btn" href="/audits/%s/export/csv">CSV</a>
<a class="btn" href="/audits/%s/export/excel">Excel</a>
<a class="btn" href="/audits/%s/export/pdf">PDF</a>
</div>
`,
			templ.EscapeString(data.Filename),
			templ.EscapeString(data.Sheet), data.RowsChecked, templ.EscapeString(data.CreatedDate),
			data.HighCount, data.MediumCount, data.LowCount, data.Total,
			templ.EscapeString(data.ID), templ.EscapeString(data.ID), templ.EscapeString(data.ID),
		); err != nil {
			return err
		}

		if len(data.Findings) == 0 {
			_, err := io.WriteString(w, `<p class="empty">지적 사항이 없습니다.</p>
</section>
`)
			return err
		}

		if _, err := io.WriteString(w, `<table class="finding-table">
<thead><tr><th>행</th><th>셀</th><th>구분</th><th>내용</th><th>규칙</th><th>기대값</th><th>입력값</th><th>차이</th><th>허용오차</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}

		for _, f := range data.Findings {
			if _, err := fmt.Fprintf(w, `<tr class="%s">
<td>%d</td>
<td>%s</td>
<td>%s</td>
<td title="%s">%s</td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
</tr>
`,
				templ.EscapeString(f.SeverityClass),
				f.Row,
				templ.EscapeString(f.Cell),
				templ.EscapeString(f.CheckType),
				templ.EscapeString(f.Related), templ.EscapeString(f.Message),
				templ.EscapeString(f.RuleName),
				templ.EscapeString(f.Expected),
				templ.EscapeString(f.Actual),
				templ.EscapeString(f.Diff),
				templ.EscapeString(f.Tol),
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</tbody>
</table>
</section>
`)
		return err
	})
}

// RunViewPage renders one run's findings inside the layout.
func RunViewPage(data RunViewData) templ.Component {
	return Layout(data.Filename, RunViewContent(data))
}
