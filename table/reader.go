package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// Read parses an uploaded tabular file into a Table, dispatching on the file
// extension:
//
//   - .csv  comma-delimited text
//   - .tsv  tab-delimited text
//   - .txt  comma-delimited text, reparsed as tab-delimited when the comma
//     parse does not yield more than one column
//   - .xlsx first worksheet of an Excel workbook
//
// When hasHeaders is true the first row becomes the (trimmed) header and the
// remaining rows the records. Otherwise the header is synthesized as
// 'Column 1' ... 'Column N' and every row is a record.
func Read(f io.Reader, filename string, hasHeaders bool) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}

		rows, err := delimited(b, ',')
		if err != nil {
			return nil, err
		}

		return makeTable(rows, hasHeaders)

	case ".tsv":
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}

		rows, err := delimited(b, '\t')
		if err != nil {
			return nil, err
		}

		return makeTable(rows, hasHeaders)

	case ".txt":
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}

		// ... comma first, but only if it yields more than one column
		rows, err := delimited(b, ',')
		if err != nil || len(rows) == 0 || len(rows[0]) < 2 {
			if rows, err = delimited(b, '\t'); err != nil {
				return nil, err
			}
		}

		return makeTable(rows, hasHeaders)

	case ".xlsx":
		return readXLSX(f, hasHeaders)

	default:
		return nil, fmt.Errorf("unsupported file format '%s' (expected .csv, .xlsx, .txt or .tsv)", ext)
	}
}

func delimited(b []byte, comma rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(b, bom)))
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	return r.ReadAll()
}

func readXLSX(f io.Reader, hasHeaders bool) (*Table, error) {
	workbook, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX file (%w)", err)
	}

	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("XLSX workbook has no worksheets")
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read worksheet '%s' (%w)", sheet, err)
	}

	return makeTable(rows, hasHeaders)
}

func makeTable(rows [][]string, hasHeaders bool) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	if hasHeaders {
		header := make([]string, len(rows[0]))
		for i, v := range rows[0] {
			header[i] = clean(v)
		}

		records := make([][]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			records = append(records, pad(row, len(header)))
		}

		return &Table{
			Header:  header,
			Records: records,
		}, nil
	}

	// ... synthesize 'Column N' header
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	header := make([]string, width)
	for i := range header {
		header[i] = fmt.Sprintf("Column %d", i+1)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, pad(row, width))
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}
