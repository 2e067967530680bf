package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnMap holds the 1-based column positions of the audited fields.
type ColumnMap struct {
	Work   int
	Spec   int
	Basis  int
	Qty    int
	Unit   int
	Remark int
}

// defaultColumns is the B..G layout used when header detection fails.
func defaultColumns() ColumnMap {
	return ColumnMap{Work: 2, Spec: 3, Basis: 4, Qty: 5, Unit: 6, Remark: 7}
}

// WorkbookRows is the reader's output: where the data came from plus the
// mapped rows ready for validation.
type WorkbookRows struct {
	Sheet     string
	HeaderRow int
	Columns   ColumnMap
	Rows      []Row
}

// ChooseSheet picks the takeoff sheet: an exact 시설물산출 match wins,
// otherwise sheet names are scored by domain keywords, otherwise the first
// sheet is used.
func ChooseSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}

	for _, name := range sheets {
		if name == "시설물산출" {
			return name
		}
	}

	best := ""
	bestScore := 0
	for _, name := range sheets {
		score := 0
		if strings.Contains(name, "시설물") {
			score += 2
		}
		if strings.Contains(name, "산출") {
			score += 2
		}
		if strings.Contains(name, "수량") {
			score++
		}
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	if best != "" {
		return best
	}
	return sheets[0]
}

// DetectColumns scans the first rows of a sheet for the takeoff headers
// (공종, 규격, 산출근거, 수량, 단위, 비고). The first row with at least two
// header hits becomes the header row; otherwise row 1 with the default B..G
// layout is assumed.
func DetectColumns(rows [][]string) (int, ColumnMap) {
	cols := defaultColumns()
	headerRow := 1

	limit := len(rows)
	if limit > 20 {
		limit = 20
	}

	for r := 0; r < limit; r++ {
		hits := 0
		for c, raw := range rows[r] {
			if c >= 40 {
				break
			}
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			col := c + 1
			lower := strings.ToLower(text)
			if strings.Contains(text, "공종") {
				cols.Work = col
				hits++
			}
			if strings.Contains(text, "규격") {
				cols.Spec = col
				hits++
			}
			if strings.Contains(text, "산출근거") {
				cols.Basis = col
				hits++
			}
			if strings.Contains(text, "수량") {
				cols.Qty = col
				hits++
			}
			if strings.Contains(text, "단위") {
				cols.Unit = col
				hits++
			}
			if strings.Contains(text, "비고") || strings.Contains(lower, "remark") {
				cols.Remark = col
				hits++
			}
		}
		if hits >= 2 {
			headerRow = r + 1
			break
		}
	}

	return headerRow, cols
}

// ParseNumber converts a cell value to a float, tolerating thousands commas
// and surrounding whitespace. Returns nil for empty or non-numeric text and
// for NaN/Inf.
func ParseNumber(s string) *float64 {
	t := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if t == "" {
		return nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ReadWorkbook maps an opened workbook into audit rows. It fails when the
// chosen sheet yields no data rows at all, which aborts the run before any
// validation happens.
func ReadWorkbook(f *excelize.File) (*WorkbookRows, error) {
	sheet := ChooseSheet(f)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerRow, cols := DetectColumns(grid)

	cellAt := func(col, row int) string {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return ""
		}
		return name
	}

	valueAt := func(col, row int) string {
		v, _ := f.GetCellValue(sheet, cellAt(col, row))
		return strings.TrimSpace(v)
	}

	var out []Row
	for r := headerRow + 1; r <= len(grid); r++ {
		work := valueAt(cols.Work, r)
		spec := valueAt(cols.Spec, r)
		basis := valueAt(cols.Basis, r)
		unit := valueAt(cols.Unit, r)
		remark := valueAt(cols.Remark, r)

		qtyCell := cellAt(cols.Qty, r)
		qtyFormula, _ := f.GetCellFormula(sheet, qtyCell)
		qtyRaw, _ := f.GetCellValue(sheet, qtyCell)
		if strings.TrimSpace(qtyRaw) == "" && qtyFormula != "" {
			// Formula cells in freshly generated files carry no cached
			// value; let excelize compute one where it can.
			if calced, err := f.CalcCellValue(sheet, qtyCell); err == nil {
				qtyRaw = calced
			}
		}
		qty := ParseNumber(qtyRaw)

		if work == "" && spec == "" && basis == "" && qtyFormula == "" && qty == nil && unit == "" && remark == "" {
			continue
		}

		out = append(out, Row{
			Index:      r,
			WorkType:   work,
			Spec:       spec,
			Unit:       unit,
			Remark:     remark,
			Basis:      basis,
			QtyFormula: qtyFormula,
			Qty:        qty,
			BasisCell:  cellAt(cols.Basis, r),
			QtyCell:    qtyCell,
			RemarkCell: cellAt(cols.Remark, r),
			UnitCell:   cellAt(cols.Unit, r),
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("sheet %q contains no recognizable data rows", sheet)
	}

	return &WorkbookRows{
		Sheet:     sheet,
		HeaderRow: headerRow,
		Columns:   cols,
		Rows:      out,
	}, nil
}

// OpenWorkbook opens an xlsx stream for reading.
func OpenWorkbook(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return f, nil
}
