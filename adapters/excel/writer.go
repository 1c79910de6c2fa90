package excel

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"adsopt/domain/optimization"
	"adsopt/domain/workbook"
	"adsopt/internal/logging"
	"adsopt/internal/schema"
)

// Writer emits the merged workbook with canonical column order and a
// highlight fill on every updated row
type Writer struct {
	config ExcelConfig
	schema *schema.Schema
	logger *logging.Logger
}

// NewWriter creates a writer using the given column schema
func NewWriter(config ExcelConfig, s *schema.Schema, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{config: config, schema: s, logger: logger}
}

// Write renders wb into w. Rows whose ref is in report.Updated are highlighted;
// a report sheet is appended when report is not nil.
func (wr *Writer) Write(w io.Writer, wb *workbook.Workbook, report *optimization.RunReport) error {
	f, err := wr.build(wb, report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs renders wb into a file at path
func (wr *Writer) SaveAs(path string, wb *workbook.Workbook, report *optimization.RunReport) error {
	f, err := wr.build(wb, report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

func (wr *Writer) build(wb *workbook.Workbook, report *optimization.RunReport) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{wr.config.HeaderColor}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	highlightStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{wr.config.HighlightColor}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create highlight style: %w", err)
	}

	updated := workbook.NewRowSet()
	if report != nil {
		updated = report.Updated
	}

	names := wb.SheetNames()
	if wr.schema != nil {
		names = wr.schema.SortSheets(names)
	}

	first := true
	for _, name := range names {
		t, _ := wb.Sheet(name)
		if wr.schema != nil {
			t = wr.schema.Apply(t)
		}
		if err := addSheet(f, name, first); err != nil {
			f.Close()
			return nil, err
		}
		first = false

		highlighted, err := writeTable(f, t, updated, headerStyle, highlightStyle)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
		wr.logger.Debug("[ExcelWriter] sheet %q: %d rows, %d highlighted", name, t.Len(), highlighted)
	}

	if report != nil && wr.config.ReportSheetName != "" {
		reportName := freeSheetName(names, wr.config.ReportSheetName)
		if reportName != wr.config.ReportSheetName {
			wr.logger.Warn("[ExcelWriter] workbook already has a %q sheet, writing the report to %q", wr.config.ReportSheetName, reportName)
		}
		if err := addSheet(f, reportName, first); err != nil {
			f.Close()
			return nil, err
		}
		if err := writeReport(f, reportName, report, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write report sheet: %w", err)
		}
	}
	return f, nil
}

// maxSheetName is the longest sheet name Excel accepts
const maxSheetName = 31

// freeSheetName returns base, or base with a " (n)" suffix when a sheet of
// that name is already taken. Sheet names compare case-insensitively.
func freeSheetName(taken []string, base string) string {
	used := make(map[string]bool, len(taken))
	for _, n := range taken {
		used[strings.ToLower(n)] = true
	}
	if !used[strings.ToLower(base)] {
		return base
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		stem := base
		if r := []rune(stem); len(r)+len([]rune(suffix)) > maxSheetName {
			stem = string(r[:maxSheetName-len([]rune(suffix))])
		}
		if name := stem + suffix; !used[strings.ToLower(name)] {
			return name
		}
	}
}

// addSheet renames the default sheet for the first table and creates the rest
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return nil
}

func writeTable(f *excelize.File, t *workbook.Table, updated workbook.RowSet, headerStyle, highlightStyle int) (int, error) {
	columns := t.Columns()
	sheet := t.Name()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return 0, err
	}

	highlighted := 0
	for i, row := range t.Rows() {
		excelRow := i + 2
		cells := make([]interface{}, len(columns))
		for j, c := range columns {
			cells[j] = cellValue(row.Get(c))
		}
		start := fmt.Sprintf("A%d", excelRow)
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return highlighted, err
		}
		if updated.Has(row.Ref) {
			if err := f.SetCellStyle(sheet, start, fmt.Sprintf("%s%d", lastCol, excelRow), highlightStyle); err != nil {
				return highlighted, err
			}
			highlighted++
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return highlighted, err
	}
	return highlighted, nil
}

func cellValue(v workbook.Value) interface{} {
	switch v.Kind() {
	case workbook.KindNumber:
		f, _ := v.Float()
		return f
	case workbook.KindText:
		return v.String()
	default:
		return nil
	}
}

func writeReport(f *excelize.File, sheet string, report *optimization.RunReport, headerStyle int) error {
	rows := [][]interface{}{
		{"Run ID", report.RunID.String()},
		{"Input Hash", report.InputHash.String()},
		{"Strategies Selected", strings.Join(report.Selected, ", ")},
		{"Successful Strategies", report.SuccessfulStrategies},
		{"Total Rows Updated", report.TotalRowsUpdated},
		{"Conflicts", report.ConflictCount()},
		{"Started At", report.StartedAt.Format("2006-01-02 15:04:05")},
		{"Duration", report.Duration.String()},
		{},
		{"Strategy", "Rows Updated", "Rows Found", "Data Errors", "Warnings", "Details"},
	}
	for _, s := range report.Strategies {
		rows = append(rows, []interface{}{
			s.Name, s.RowsUpdated, s.Found, len(s.CleanErrors), strings.Join(s.Warnings, "; "), formatDetails(s.Details),
		})
	}
	if len(report.Profiles) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Sheet", "Column", "Count", "Missing", "Mean", "Std Dev", "Min", "Q25", "Median", "Q75", "Max", "Outliers"})
		for _, p := range report.Profiles {
			rows = append(rows, []interface{}{
				p.Sheet, p.Column, p.Count, p.Missing, p.Mean, p.StdDev, p.Min, p.Q25, p.Median, p.Q75, p.Max, p.Outliers,
			})
		}
	}
	if len(report.Conflicts) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Conflict Row", "Strategies", "Columns"})
		for _, c := range report.Conflicts {
			rows = append(rows, []interface{}{c.Ref.String(), strings.Join(c.Strategies, " > "), strings.Join(c.Columns, ", ")})
		}
	}

	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "A8", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "L", 24)
}

func formatDetails(details map[string]float64) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, details[k]))
	}
	return strings.Join(parts, ", ")
}
