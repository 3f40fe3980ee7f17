package table

import (
	"encoding/csv"
	"io"
)

// WriteTSV writes the table to f as tab-separated values, header row first.
func (t *Table) WriteTSV(f io.Writer) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(t.Header)
	for _, record := range t.Records {
		w.Write(record)
	}

	w.Flush()

	return w.Error()
}
