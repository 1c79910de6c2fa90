package excel

// ExcelConfig holds configuration for reading and writing workbooks
type ExcelConfig struct {
	MaxFileSizeBytes int64  `json:"max_file_size_bytes"`
	MaxRows          int    `json:"max_rows"`
	CSVSheetName     string `json:"csv_sheet_name"`
	HighlightColor   string `json:"highlight_color"`
	HeaderColor      string `json:"header_color"`
	ReportSheetName  string `json:"report_sheet_name"`
}

// DefaultExcelConfig returns sensible defaults for bulk-sheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		MaxFileSizeBytes: 50 << 20,
		MaxRows:          200000,
		CSVSheetName:     "Sponsored Products Campaigns",
		HighlightColor:   "FFFF00",
		HeaderColor:      "D9E1F2",
		ReportSheetName:  "Run Report",
	}
}
