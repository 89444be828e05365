package parsers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactoryGetParser(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		filename string
		wantType interface{}
		wantErr  bool
	}{
		{filename: "results.csv", wantType: &CSVParser{}},
		{filename: "RESULTS.CSV", wantType: &CSVParser{}},
		{filename: "export.tsv", wantType: &CSVParser{}},
		{filename: "export.txt", wantType: &CSVParser{}},
		{filename: "results.xlsx", wantType: &XLSXParser{}},
		{filename: "results.xls", wantType: &XLSXParser{}},
		{filename: "results.pdf", wantErr: true},
		{filename: "noextension", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.IsType(t, tt.wantType, parser)
		})
	}
}

func TestCSVParserHeaderSynonyms(t *testing.T) {
	csv := []byte("Bib Number,First Name,Last Name,Time,Gun Time,Place,Cat Place,Status,Pace\n" +
		"17,Anna,Svoboda,45:30,45:45,3,1,finished,4:33\n")

	rows, err := NewCSVParser().Parse(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, "17", row.BibNumber)
	require.Equal(t, "Anna", row.FirstName)
	require.Equal(t, "Svoboda", row.LastName)
	require.Equal(t, "45:30", row.FinishTime)
	require.Equal(t, "45:45", row.GunTime)
	require.Equal(t, "3", row.OverallPlace)
	require.Equal(t, "1", row.CategoryPlace)
	require.Equal(t, "finished", row.Status)
	require.Equal(t, "4:33", row.Pace)
	require.Equal(t, 2, row.Line)
}

func TestCSVParserHeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "snake case", header: "registration_number,first_name,last_name,finish_time,status"},
		{name: "camel case", header: "registrationNumber,firstName,lastName,finishTime,status"},
		{name: "kebab case", header: "registration-number,first-name,last-name,finish-time,status"},
		{name: "upper case", header: "REGISTRATION NUMBER,FIRST NAME,LAST NAME,FINISH TIME,STATUS"},
		{name: "short synonyms", header: "registration,firstname,lastname,time,status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.header + "\nR-100,Anna,Svoboda,45:30,finished\n")
			rows, err := NewCSVParser().Parse(data)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			require.Equal(t, "R-100", rows[0].RegistrationNumber)
			require.Equal(t, "Anna", rows[0].FirstName)
			require.Equal(t, "Svoboda", rows[0].LastName)
			require.Equal(t, "45:30", rows[0].FinishTime)
			require.Equal(t, "finished", rows[0].Status)
		})
	}
}

func TestCSVParserUnknownHeadersPreserved(t *testing.T) {
	csv := []byte("bib,firstName,lastName,status,Chip ID,Wave\n" +
		"17,Anna,Svoboda,dnf,CH-0042,B\n")

	rows, err := NewCSVParser().Parse(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, map[string]string{"Chip ID": "CH-0042", "Wave": "B"}, rows[0].Extra)
}

func TestCSVParserShortRowsPadded(t *testing.T) {
	csv := []byte("bib,firstName,lastName,finishTime,status\n" +
		"17,Anna\n")

	rows, err := NewCSVParser().Parse(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "17", rows[0].BibNumber)
	require.Equal(t, "Anna", rows[0].FirstName)
	require.Equal(t, "", rows[0].LastName)
	require.Equal(t, "", rows[0].FinishTime)
	require.Equal(t, "", rows[0].Status)
}

func TestCSVParserQuotedFields(t *testing.T) {
	csv := []byte("bib,firstName,lastName,status\n" +
		`17,Anna,"Svoboda, Jr.",finished` + "\n")

	rows, err := NewCSVParser().Parse(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Svoboda, Jr.", rows[0].LastName)
}

func TestCSVParserTabDelimited(t *testing.T) {
	tsv := []byte("bib\tfirstName\tlastName\tstatus\n" +
		"17\tAnna\tSvoboda\tfinished\n")

	rows, err := NewCSVParser().Parse(tsv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "17", rows[0].BibNumber)
	require.Equal(t, "Svoboda", rows[0].LastName)
}

func TestCSVParserBOMAndCRLF(t *testing.T) {
	csv := append([]byte{0xEF, 0xBB, 0xBF}, []byte("bib,firstName,lastName,status\r\n17,Anna,Svoboda,finished\r\n")...)

	rows, err := NewCSVParser().Parse(csv)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "17", rows[0].BibNumber)
}

func TestCSVParserSkipsBlankLines(t *testing.T) {
	csv := []byte("bib,firstName,lastName,status\n\n17,Anna,Svoboda,finished\n\n,,,\n42,Jan,Novak,dnf\n")

	rows, err := NewCSVParser().Parse(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "17", rows[0].BibNumber)
	require.Equal(t, "42", rows[1].BibNumber)
}

func TestCSVParserEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty file", data: nil},
		{name: "header only", data: []byte("bib,firstName,lastName,status\n")},
		{name: "only blank lines", data: []byte("\n\n\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse(tt.data)
			require.ErrorIs(t, err, ErrEmptyInput)
		})
	}
}

func TestXLSXParser(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Bib Number", "First Name", "Last Name", "Finish Time", "Status"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"17", "Anna", "Svoboda", "45:30", "finished"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"42", "Jan", "Novak", "", "dnf"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "17", rows[0].BibNumber)
	require.Equal(t, "45:30", rows[0].FinishTime)
	require.Equal(t, "42", rows[1].BibNumber)
	require.Equal(t, "dnf", rows[1].Status)
}

func TestXLSXParserRejectsNonZipData(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("bib,firstName\n17,Anna\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), ".csv extension")
}
