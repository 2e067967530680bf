package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateReportPDF renders the audit report as a PDF using maroto/v2:
// header with run context, per-severity summary, then the findings table in
// grouped order.
func GenerateReportPDF(meta ReportMeta, report *Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addReportHeader(m, meta)
	addSeveritySummary(m, report)
	addFindingsHeader(m)
	for _, f := range report.Grouped() {
		addFindingRow(m, f)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf report: %w", err)
	}
	return doc.GetBytes(), nil
}

func addReportHeader(m core.Maroto, meta ReportMeta) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Quantity Takeoff Audit Report", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	subtle := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("File: %s (sheet %s)", meta.Filename, meta.Sheet), props.Text{
					Size:  9,
					Align: align.Left,
					Color: subtle,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s | Rows checked: %d", meta.CreatedDate, meta.RowsChecked), props.Text{
					Size:  9,
					Align: align.Right,
					Color: subtle,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addSeveritySummary(m core.Maroto, report *Report) {
	summaryText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
	}
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(
				text.New(fmt.Sprintf("HIGH: %d", report.Count(SeverityHigh)), summaryText),
			).WithStyle(summaryCell),
			col.New(3).Add(
				text.New(fmt.Sprintf("MEDIUM: %d", report.Count(SeverityMedium)), summaryText),
			).WithStyle(summaryCell),
			col.New(3).Add(
				text.New(fmt.Sprintf("LOW: %d", report.Count(SeverityLow)), summaryText),
			).WithStyle(summaryCell),
			col.New(3).Add(
				text.New(fmt.Sprintf("Total: %d", report.Total()), summaryText),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(row.New(4))
}

func addFindingsHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("Row", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cell", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Severity", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Reason", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Expected / Actual", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Diff", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Check", headerTextLeft)).WithStyle(&headerCell),
		),
	)
}

func severityRowColor(sev Severity) *props.Color {
	switch sev {
	case SeverityHigh:
		return &props.Color{Red: 253, Green: 226, Blue: 226}
	case SeverityMedium:
		return &props.Color{Red: 253, Green: 240, Blue: 220}
	default:
		return &props.Color{Red: 239, Green: 239, Blue: 239}
	}
}

func addFindingRow(m core.Maroto, f Finding) {
	cellStyle := &props.Cell{BackgroundColor: severityRowColor(f.Severity)}

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left

	expActual := ""
	if f.Expected != nil && f.Actual != nil {
		expActual = FormatNumber(*f.Expected) + " / " + FormatNumber(*f.Actual)
	}
	diff := FormatOptional(f.Diff)

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", f.Row), baseText)).WithStyle(cellStyle),
			col.New(1).Add(text.New(f.Cell, baseText)).WithStyle(cellStyle),
			col.New(1).Add(text.New(string(f.Severity), baseText)).WithStyle(cellStyle),
			col.New(4).Add(text.New(f.Message, leftText)).WithStyle(cellStyle),
			col.New(2).Add(text.New(expActual, baseText)).WithStyle(cellStyle),
			col.New(1).Add(text.New(diff, baseText)).WithStyle(cellStyle),
			col.New(2).Add(text.New(f.CheckType, leftText)).WithStyle(cellStyle),
		),
	)
}
