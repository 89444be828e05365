package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
)

// CSVParser parses CSV timing exports.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data into RawRows. The first non-empty record is the
// header. A proper CSV reader is used, so quoted fields with embedded
// delimiters are handled instead of corrupting column alignment.
func (p *CSVParser) Parse(data []byte) ([]resultstypes.RawRow, error) {
	cleaned, delimiter := preprocessCSVData(data)

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	// Timing systems routinely emit ragged rows; short rows are padded with
	// empty values downstream rather than rejected here.
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isEmptyRecord(record) {
			continue
		}
		records = append(records, record)
	}

	return mapRecords(records)
}
