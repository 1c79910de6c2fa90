package excel

import (
	"adsopt/domain/core"
	"adsopt/domain/workbook"
)

// RawRowData represents a row of raw Excel data as string values
type RawRowData []string

// SheetData is one sheet as read from the file, before it becomes a Table
type SheetData struct {
	Name    string
	Headers []string
	Rows    []RawRowData
}

// LoadedWorkbook is a parsed input file together with its fingerprint
type LoadedWorkbook struct {
	Workbook *workbook.Workbook
	Hash     core.Hash
	Size     int64
}
