package sheets

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/harvesting-media/dataproc/table"
)

// Writer implements the two worksheet write modes over the values API.
type Writer struct {
	api API
}

func NewWriter(api API) *Writer {
	return &Writer{
		api: api,
	}
}

// Overwrite replaces the contents of the worksheet with the table. After the
// write the worksheet holds exactly the header row plus the records, whatever
// it held before.
func (w *Writer) Overwrite(ctx context.Context, worksheet string, t *table.Table) error {
	if err := w.api.VerifyWorksheet(ctx, worksheet); err != nil {
		return err
	}

	if err := w.api.Clear(ctx, worksheet); err != nil {
		return err
	}

	area, err := rangeOf(worksheet, 1, len(t.Records)+1, len(t.Header))
	if err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(t.Records)+1)
	values = append(values, toRow(t.Header))
	for _, record := range t.Records {
		values = append(values, toRow(record))
	}

	return w.api.Update(ctx, area, values)
}

// Append writes the records (never a header) after the last populated row of
// the worksheet. A worksheet with M populated rows ends up with M+N; an empty
// worksheet receives the records from row 1, still without a header. A table
// with no records writes nothing at all.
func (w *Writer) Append(ctx context.Context, worksheet string, t *table.Table) error {
	if err := w.api.VerifyWorksheet(ctx, worksheet); err != nil {
		return err
	}

	if len(t.Records) == 0 {
		return nil
	}

	rows, err := w.api.Get(ctx, worksheet)
	if err != nil {
		return err
	}

	top := len(rows) + 1

	area, err := rangeOf(worksheet, top, top+len(t.Records)-1, len(t.Header))
	if err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(t.Records))
	for _, record := range t.Records {
		values = append(values, toRow(record))
	}

	return w.api.Update(ctx, area, values)
}

func rangeOf(worksheet string, top, bottom, columns int) (string, error) {
	right, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return "", fmt.Errorf("invalid column count %d (%w)", columns, err)
	}

	return fmt.Sprintf("%s!A%d:%s%d", worksheet, top, right, bottom), nil
}

func toRow(record []string) []interface{} {
	row := make([]interface{}, len(record))
	for i, v := range record {
		row[i] = v
	}

	return row
}
