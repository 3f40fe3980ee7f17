package process

import (
	"errors"
	"fmt"

	"github.com/harvesting-media/dataproc/table"
)

// Mode selects how a process writes its worksheet.
type Mode string

const (
	// Overwrite clears the worksheet and writes the header and records from A1.
	Overwrite Mode = "overwrite"

	// Append writes records after the last populated row, without a header.
	Append Mode = "append"
)

// Field is a single column of a process's target schema. Key identifies the
// field in mappings, Label is the name presented to the operator, Column is
// the header cell written to the worksheet and Normalize is applied to every
// mapped value.
type Field struct {
	Key       string
	Label     string
	Column    string
	Normalize func(string) string
}

// Definition describes a named import process: the worksheet it feeds, the
// write mode and the target schema that source columns are mapped onto. The
// schema order is fixed - the output columns are written in definition order
// regardless of the order of the source columns.
type Definition struct {
	Name      string
	Worksheet string
	Mode      Mode
	Fields    []Field
}

// Summary reports a completed transform to the operator.
type Summary struct {
	Process      string `json:"process"`
	Worksheet    string `json:"worksheet"`
	Mode         Mode   `json:"mode"`
	Rows         int    `json:"rows"`
	UniqueEmails int    `json:"unique_emails"`
}

var ErrUnknownProcess = errors.New("unknown process")

var processes = []Definition{
	{
		Name:      "Certo Market",
		Worksheet: "Certo_Market",
		Mode:      Overwrite,
		Fields: []Field{
			{Key: "email", Label: "Email", Column: "Email", Normalize: NormalizeEmail},
			{Key: "first_name", Label: "First Name", Column: "First Name", Normalize: NormalizeName},
			{Key: "phone", Label: "Phone", Column: "Phone", Normalize: clean},
		},
	},
	{
		Name:      "Ferreira",
		Worksheet: "Ferreira",
		Mode:      Overwrite,
		Fields: []Field{
			{Key: "email", Label: "Email", Column: "Email", Normalize: NormalizeEmail},
			{Key: "first_name", Label: "First Name", Column: "First Name", Normalize: NormalizeName},
			{Key: "phone", Label: "Phone", Column: "Phone", Normalize: clean},
		},
	},
	{
		Name:      "Certo Market Visits Report",
		Worksheet: "Certo_Market_MKT_Report",
		Mode:      Append,
		Fields: []Field{
			{Key: "email", Label: "Email", Column: "Email", Normalize: NormalizeEmail},
			{Key: "first_name", Label: "First Name", Column: "First Name", Normalize: NormalizeName},
			{Key: "visit_date", Label: "Visit Date", Column: "Visit Date", Normalize: NormalizeDate},
		},
	},
}

// Processes returns the configured process definitions in display order.
func Processes() []Definition {
	return append([]Definition{}, processes...)
}

// Names returns the configured process names in display order.
func Names() []string {
	names := make([]string, len(processes))
	for i, p := range processes {
		names[i] = p.Name
	}

	return names
}

// Lookup finds a process definition by its exact name.
func Lookup(name string) (Definition, error) {
	for _, p := range processes {
		if p.Name == name {
			return p, nil
		}
	}

	return Definition{}, fmt.Errorf("%w '%s'", ErrUnknownProcess, name)
}

// Apply projects src onto the process's target schema. mapping assigns a
// source column to each field key (column names are matched ignoring case and
// embedded spaces). Every field must be mapped to a column present in the
// source table - there is no validation beyond that.
func (d Definition) Apply(src *table.Table, mapping map[string]string) (*table.Table, error) {
	index, err := src.Index()
	if err != nil {
		return nil, err
	}

	// ... resolve the mapping against the source header
	columns := make([]int, len(d.Fields))
	for i, f := range d.Fields {
		column, ok := mapping[f.Key]
		if !ok || column == "" {
			return nil, fmt.Errorf("no column mapped for '%s'", f.Label)
		}

		ix, ok := index[table.Normalise(column)]
		if !ok {
			return nil, fmt.Errorf("column '%s' mapped for '%s' is not in the file", column, f.Label)
		}

		columns[i] = ix
	}

	// ... header
	header := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		header[i] = f.Column
	}

	// ... records
	records := make([][]string, 0, len(src.Records))
	for _, row := range src.Records {
		record := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			record[i] = f.Normalize(row[columns[i]])
		}

		records = append(records, record)
	}

	return &table.Table{
		Header:  header,
		Records: records,
	}, nil
}

// Summarize reports the row count and the number of distinct values in the
// Email column of a transformed table. The empty value counts as one distinct
// value when present; a process without an email field reports zero.
func (d Definition) Summarize(out *table.Table) Summary {
	summary := Summary{
		Process:   d.Name,
		Worksheet: d.Worksheet,
		Mode:      d.Mode,
		Rows:      len(out.Records),
	}

	for i, f := range d.Fields {
		if f.Key == "email" {
			distinct := map[string]struct{}{}
			for _, record := range out.Records {
				distinct[record[i]] = struct{}{}
			}

			summary.UniqueEmails = len(distinct)

			break
		}
	}

	return summary
}
