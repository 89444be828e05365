package parsers

import (
	"bytes"
	"errors"
	"strings"

	resultstypes "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/types"
)

// ErrEmptyInput indicates the file had no header or no data rows. This is a
// structural error: nothing in the batch is processed.
var ErrEmptyInput = errors.New("input must contain a header row and at least one data row")

// canonical field names for header synonyms. Keys are normalized header
// cells (lower-cased, spaces/underscores/hyphens stripped).
var headerSynonyms = map[string]string{
	"registrationnumber": "registrationNumber",
	"regnumber":          "registrationNumber",
	"registration":       "registrationNumber",
	"bib":                "bibNumber",
	"bibnumber":          "bibNumber",
	"firstname":          "firstName",
	"lastname":           "lastName",
	"finishtime":         "finishTime",
	"time":               "finishTime",
	"guntime":            "gunTime",
	"overallplace":       "overallPlace",
	"place":              "overallPlace",
	"categoryplace":      "categoryPlace",
	"catplace":           "categoryPlace",
	"status":             "status",
	"pace":               "pace",
}

// normalizeHeaderCell lower-cases and strips separators so "Bib Number",
// "bib_number" and "bib-number" all resolve to the same synonym key.
func normalizeHeaderCell(cell string) string {
	c := strings.ToLower(strings.TrimSpace(cell))
	c = strings.ReplaceAll(c, " ", "")
	c = strings.ReplaceAll(c, "_", "")
	c = strings.ReplaceAll(c, "-", "")
	return c
}

// mapRecords turns raw rows (header first) into RawRows. Unrecognized headers
// are preserved verbatim in Extra; short rows read as empty strings for the
// missing trailing cells.
func mapRecords(records [][]string) ([]resultstypes.RawRow, error) {
	if len(records) < 2 {
		return nil, ErrEmptyInput
	}

	header := records[0]
	fields := make([]string, len(header))    // canonical field name, or ""
	extraKeys := make([]string, len(header)) // original header for unknown columns
	for i, cell := range header {
		if canonical, ok := headerSynonyms[normalizeHeaderCell(cell)]; ok {
			fields[i] = canonical
		} else {
			extraKeys[i] = strings.TrimSpace(cell)
		}
	}

	rows := make([]resultstypes.RawRow, 0, len(records)-1)
	for rowIdx, record := range records[1:] {
		row := resultstypes.RawRow{Line: rowIdx + 2}
		for i := range header {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			switch fields[i] {
			case "registrationNumber":
				row.RegistrationNumber = value
			case "bibNumber":
				row.BibNumber = value
			case "firstName":
				row.FirstName = value
			case "lastName":
				row.LastName = value
			case "finishTime":
				row.FinishTime = value
			case "gunTime":
				row.GunTime = value
			case "overallPlace":
				row.OverallPlace = value
			case "categoryPlace":
				row.CategoryPlace = value
			case "status":
				row.Status = value
			case "pace":
				row.Pace = value
			default:
				if extraKeys[i] != "" {
					if row.Extra == nil {
						row.Extra = make(map[string]string)
					}
					row.Extra[extraKeys[i]] = value
				}
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// isEmptyRecord reports whether every cell of a record is blank.
func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// preprocessCSVData strips the UTF-8 BOM, normalizes CRLF, and auto-detects
// the delimiter (comma vs tab) by counting occurrences in the first lines.
func preprocessCSVData(data []byte) (string, rune) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	cleaned := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	lines := strings.Split(cleaned, "\n")
	sampleSize := 5
	if len(lines) < sampleSize {
		sampleSize = len(lines)
	}

	commaCount := 0
	tabCount := 0
	for i := 0; i < sampleSize; i++ {
		commaCount += strings.Count(lines[i], ",")
		tabCount += strings.Count(lines[i], "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}

	return cleaned, delimiter
}
