package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
)

// XLSXParser parses XLSX timing exports. Several chip-timing vendors only
// offer spreadsheet downloads, so the import path accepts both.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads the first sheet of an XLSX workbook into RawRows.
func (p *XLSXParser) Parse(data []byte) ([]resultstypes.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: if this is a CSV file, give it a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	var records [][]string
	for _, row := range rows {
		if isEmptyRecord(row) {
			continue
		}
		records = append(records, row)
	}

	return mapRecords(records)
}
