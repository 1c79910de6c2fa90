package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"adsopt/domain/core"
	"adsopt/domain/workbook"
	"adsopt/internal/logging"
)

// DataReader handles reading Excel and CSV bulk files into a Workbook
type DataReader struct {
	config ExcelConfig
	logger *logging.Logger
}

// NewDataReader creates a reader with the given limits
func NewDataReader(config ExcelConfig, logger *logging.Logger) *DataReader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DataReader{config: config, logger: logger}
}

// ReadFile reads an .xlsx or .csv file from disk
func (r *DataReader) ReadFile(filePath string) (*LoadedWorkbook, error) {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: file not found: %s", core.ErrValidation, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	if r.config.MaxFileSizeBytes > 0 && info.Size() > r.config.MaxFileSizeBytes {
		return nil, r.sizeError(info.Size())
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	return r.Read(f, filepath.Base(filePath))
}

// Read parses a workbook from an upload; name is only used to tell csv from xlsx
func (r *DataReader) Read(src io.Reader, name string) (*LoadedWorkbook, error) {
	limited := src
	if r.config.MaxFileSizeBytes > 0 {
		limited = io.LimitReader(src, r.config.MaxFileSizeBytes+1)
	}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if r.config.MaxFileSizeBytes > 0 && int64(len(data)) > r.config.MaxFileSizeBytes {
		return nil, r.sizeError(int64(len(data)))
	}

	startTime := time.Now()
	var sheets []SheetData
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		sheets, err = r.readCSV(data)
	} else {
		sheets, err = r.readExcel(data)
	}
	if err != nil {
		return nil, err
	}

	tables := make([]*workbook.Table, 0, len(sheets))
	for _, s := range sheets {
		if r.config.MaxRows > 0 && len(s.Rows) > r.config.MaxRows {
			return nil, fmt.Errorf("%w: sheet %q has %d rows, limit is %d", core.ErrLimitExceeded, s.Name, len(s.Rows), r.config.MaxRows)
		}
		records := make([][]string, len(s.Rows))
		for i, row := range s.Rows {
			records[i] = row
		}
		tables = append(tables, workbook.FromRecords(s.Name, s.Headers, records))
	}

	r.logger.Info("[DataReader] %s read in %.2fms (%d sheets, %d bytes)",
		name, float64(time.Since(startTime).Nanoseconds())/1e6, len(tables), len(data))

	return &LoadedWorkbook{
		Workbook: workbook.New(tables...),
		Hash:     core.NewHash(data),
		Size:     int64(len(data)),
	}, nil
}

func (r *DataReader) sizeError(size int64) error {
	return fmt.Errorf("%w: file is %d bytes, limit is %d", core.ErrLimitExceeded, size, r.config.MaxFileSizeBytes)
}

// readExcel reads every sheet of the workbook with raw cell values so long
// identifiers are not rendered in scientific notation
func (r *DataReader) readExcel(data []byte) ([]SheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", core.ErrValidation, err)
	}
	defer f.Close()

	var sheets []SheetData
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		r.logger.Debug("[DataReader] sheet %q: %d raw rows", name, len(rows))
		sheets = append(sheets, processRows(name, rows))
	}
	return sheets, nil
}

// readCSV reads a single-sheet CSV export
func (r *DataReader) readCSV(data []byte) ([]SheetData, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV file: %v", core.ErrValidation, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return []SheetData{processRows(r.config.CSVSheetName, rows)}, nil
}

// processRows splits header from data and drops blank rows
func processRows(name string, rows [][]string) SheetData {
	sheet := SheetData{Name: name}
	if len(rows) == 0 {
		return sheet
	}

	sheet.Headers = make([]string, len(rows[0]))
	for i, header := range rows[0] {
		sheet.Headers[i] = strings.TrimSpace(header)
	}

	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make(RawRowData, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
