package table

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular dataset. Every record has exactly
// len(Header) cells - short rows are padded with empty strings and long rows
// are truncated when the table is built.
type Table struct {
	Header  []string
	Records [][]string
}

// FromValues builds a Table from a block of spreadsheet values, using the
// first row as the header. Cells are converted to their string form and
// header cells are trimmed.
func FromValues(values [][]interface{}) (*Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("empty worksheet")
	}

	// ... header
	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = clean(fmt.Sprintf("%v", v))
	}

	// ... records
	records := [][]string{}
	for _, row := range values[1:] {
		record := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				record[i] = fmt.Sprintf("%v", row[i])
			}
		}

		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

// Index maps normalised column names to their positions in the header.
// Lookups against the index ignore case and embedded spaces, so 'First Name',
// 'first name' and 'FIRSTNAME' all resolve to the same column. Duplicate
// column names are an error - a mapping onto them would be ambiguous.
func (t *Table) Index() (map[string]int, error) {
	index := map[string]int{}

	for i, h := range t.Header {
		k := normalise(h)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", h)
		}

		index[k] = i
	}

	return index, nil
}

// Normalise reduces a column name to its lookup key for Index.
func Normalise(v string) string {
	return normalise(v)
}

func pad(row []string, width int) []string {
	record := make([]string, width)
	copy(record, row)

	return record
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
