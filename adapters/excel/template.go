package excel

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"adsopt/domain/core"
	"adsopt/domain/optimization"
)

// TemplateHeader is the header of the single-column ASIN template
const TemplateHeader = "ASIN"

// ReadTemplate reads the target ASIN list from the first sheet of an xlsx
// file. The column headed ASIN is used, or the first column when no header
// matches. Duplicates and blanks are dropped.
func ReadTemplate(src io.Reader) (optimization.Template, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return optimization.Template{}, fmt.Errorf("failed to read template: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return optimization.Template{}, fmt.Errorf("%w: template is not a valid xlsx file: %v", core.ErrMissingTemplate, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return optimization.Template{}, fmt.Errorf("%w: template has no sheets", core.ErrMissingTemplate)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return optimization.Template{}, fmt.Errorf("failed to read template sheet: %w", err)
	}
	if len(rows) == 0 {
		return optimization.Template{}, nil
	}

	col, start := 0, 0
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), TemplateHeader) {
			col, start = i, 1
			break
		}
	}

	seen := make(map[string]bool)
	var asins []string
	for _, row := range rows[start:] {
		if col >= len(row) {
			continue
		}
		asin := strings.TrimSpace(row[col])
		if asin == "" || seen[asin] {
			continue
		}
		seen[asin] = true
		asins = append(asins, asin)
	}
	return optimization.Template{ASINs: asins}, nil
}

// WriteTemplate writes an empty ASIN template with a styled header
func WriteTemplate(w io.Writer, config ExcelConfig) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", TemplateHeader); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{config.HeaderColor}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	return f.Write(w)
}
