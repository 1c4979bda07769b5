package export

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosfrc/internal/batch"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/alexiusacademia/gosfrc/internal/sweep"
	"github.com/xuri/excelize/v2"
)

// Table is one worksheet: a header row followed by data rows. A nil cell
// is written empty.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// WriteXLSX saves the tables as worksheets of a new workbook at path. The
// first table becomes the active sheet.
func WriteXLSX(path string, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("export: no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
				return fmt.Errorf("export: sheet %q: %w", t.Sheet, err)
			}
			continue
		}
		if _, err := f.NewSheet(t.Sheet); err != nil {
			return fmt.Errorf("export: sheet %q: %w", t.Sheet, err)
		}
	}
	f.SetActiveSheet(0)

	for _, t := range tables {
		if err := writeTable(f, t); err != nil {
			return fmt.Errorf("export: sheet %q: %w", t.Sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func writeTable(f *excelize.File, t Table) error {
	// Header row
	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(t.Sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(t.Sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

var predictionHeaders = []string{"mean", "characteristic", "design", "clamped"}

func predictionCells(o *residual.Outcome) []any {
	if !o.OK() {
		return []any{nil, nil, nil, nil}
	}
	p := o.Prediction
	return []any{p.Mean, p.Characteristic, p.Design, p.WasClamped}
}

func targetHeaders(targets []residual.Target) []string {
	var h []string
	for _, t := range targets {
		for _, name := range predictionHeaders {
			h = append(h, fmt.Sprintf("%s %s", t, name))
		}
	}
	return h
}

// BatchTables lays out batch results as a results sheet and, when any
// target produced values, a summary sheet.
func BatchTables(results []batch.Result) []Table {
	targets := []residual.Target{residual.Fr1, residual.Fr3}

	res := Table{
		Sheet:   "Results",
		Headers: append([]string{"case", "valid", "blocked", "Vf", "lf (mm)", "df (mm)", "fc (MPa)", "ffu (MPa)"}, targetHeaders(targets)...),
	}
	res.Headers = append(res.Headers, "error", "violations")

	for _, r := range results {
		if r.Report == nil {
			row := make([]any, len(res.Headers))
			row[0] = r.Name
			row[len(row)-2] = r.Error
			res.Rows = append(res.Rows, row)
			continue
		}
		rep := r.Report
		in := rep.Inputs
		row := []any{r.Name, rep.Valid, rep.Blocked, in.Vf, in.Lf, in.Df, in.Fc, in.Ffu}
		var errs []string
		for _, t := range targets {
			o := rep.Results.Get(t)
			row = append(row, predictionCells(o)...)
			if o != nil && o.Error != "" {
				errs = append(errs, fmt.Sprintf("%s: %s", t, o.Error))
			}
		}
		row = append(row, strings.Join(errs, "; "), strings.Join(rep.Validation.Messages(), "; "))
		res.Rows = append(res.Rows, row)
	}

	tables := []Table{res}
	sum := Table{
		Sheet:   "Summary",
		Headers: []string{"target", "cases", "min", "max", "mean", "std dev"},
	}
	for _, t := range targets {
		if s, ok := batch.Summarize(results, t); ok {
			sum.Rows = append(sum.Rows, []any{t.String(), s.Count, s.Min, s.Max, s.Mean, s.StdDev})
		}
	}
	if len(sum.Rows) > 0 {
		tables = append(tables, sum)
	}
	return tables
}

// SweepTable lays out every sweep point with the predictions of targets.
// Undefined predictions are left empty.
func SweepTable(res *sweep.Result, targets residual.Targets) Table {
	list := targets.List()
	t := Table{
		Sheet:   "Sweep",
		Headers: append([]string{res.Label, "in envelope"}, targetHeaders(list)...),
	}
	t.Headers = append(t.Headers, "violations")

	for _, pt := range res.Points {
		row := []any{pt.Value, pt.InEnvelope}
		for _, target := range list {
			row = append(row, predictionCells(pt.Results.Get(target))...)
		}
		row = append(row, strings.Join(pt.Violations, "; "))
		t.Rows = append(t.Rows, row)
	}
	return t
}
