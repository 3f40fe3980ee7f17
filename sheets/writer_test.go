package sheets

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/harvesting-media/dataproc/table"
)

var areaExpr = regexp.MustCompile(`(.+?)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]+)?`)

// fakeAPI implements API over an in-memory grid of populated rows per
// worksheet.
type fakeAPI struct {
	grids   map[string][][]interface{}
	updates []string
}

func newFakeAPI(worksheets ...string) *fakeAPI {
	f := fakeAPI{
		grids: map[string][][]interface{}{},
	}

	for _, w := range worksheets {
		f.grids[w] = [][]interface{}{}
	}

	return &f
}

func (f *fakeAPI) Get(ctx context.Context, area string) ([][]interface{}, error) {
	grid, ok := f.grids[area]
	if !ok {
		return nil, fmt.Errorf("unable to retrieve data from worksheet '%s'", area)
	}

	return grid, nil
}

func (f *fakeAPI) Update(ctx context.Context, area string, values [][]interface{}) error {
	match := areaExpr.FindStringSubmatch(area)
	if len(match) < 5 {
		return fmt.Errorf("invalid range '%s'", area)
	}

	name := match[1]
	top, _ := strconv.Atoi(match[3])

	grid, ok := f.grids[name]
	if !ok {
		return fmt.Errorf("unable to identify worksheet '%s'", name)
	}

	for i, row := range values {
		ix := top - 1 + i
		for len(grid) <= ix {
			grid = append(grid, []interface{}{})
		}

		grid[ix] = row
	}

	f.grids[name] = grid
	f.updates = append(f.updates, area)

	return nil
}

func (f *fakeAPI) Clear(ctx context.Context, area string) error {
	if _, ok := f.grids[area]; !ok {
		return fmt.Errorf("unable to identify worksheet '%s'", area)
	}

	f.grids[area] = [][]interface{}{}

	return nil
}

func (f *fakeAPI) VerifyWorksheet(ctx context.Context, name string) error {
	for w := range f.grids {
		if strings.EqualFold(w, name) {
			return nil
		}
	}

	return fmt.Errorf("unable to identify worksheet '%s'", name)
}

func TestOverwrite(t *testing.T) {
	expected := [][]interface{}{
		{"Email", "First Name", "Phone"},
		{"anna@example.com", "Anna", "11 91234-5678"},
		{"bob@example.com", "Bob", ""},
	}

	api := newFakeAPI("Certo_Market")
	api.grids["Certo_Market"] = [][]interface{}{
		{"Email", "First Name", "Phone"},
		{"old1@example.com", "Old", ""},
		{"old2@example.com", "Older", ""},
		{"old3@example.com", "Oldest", ""},
		{"old4@example.com", "Ancient", ""},
	}

	data := table.Table{
		Header: []string{"Email", "First Name", "Phone"},
		Records: [][]string{
			{"anna@example.com", "Anna", "11 91234-5678"},
			{"bob@example.com", "Bob", ""},
		},
	}

	w := NewWriter(api)

	if err := w.Overwrite(context.Background(), "Certo_Market", &data); err != nil {
		t.Fatalf("Unexpected error returned from Overwrite (%v)", err)
	}

	if !reflect.DeepEqual(api.grids["Certo_Market"], expected) {
		t.Errorf("Incorrect worksheet\n   expected: %v\n   got:      %v\n", expected, api.grids["Certo_Market"])
	}

	if expected := []string{"Certo_Market!A1:C3"}; !reflect.DeepEqual(api.updates, expected) {
		t.Errorf("Incorrect update ranges\n   expected: %v\n   got:      %v\n", expected, api.updates)
	}
}

func TestOverwriteWithNoRecords(t *testing.T) {
	expected := [][]interface{}{
		{"Email", "First Name", "Phone"},
	}

	api := newFakeAPI("Ferreira")
	api.grids["Ferreira"] = [][]interface{}{
		{"Email", "First Name", "Phone"},
		{"old@example.com", "Old", ""},
	}

	data := table.Table{
		Header:  []string{"Email", "First Name", "Phone"},
		Records: [][]string{},
	}

	w := NewWriter(api)

	if err := w.Overwrite(context.Background(), "Ferreira", &data); err != nil {
		t.Fatalf("Unexpected error returned from Overwrite (%v)", err)
	}

	if !reflect.DeepEqual(api.grids["Ferreira"], expected) {
		t.Errorf("Incorrect worksheet\n   expected: %v\n   got:      %v\n", expected, api.grids["Ferreira"])
	}
}

func TestOverwriteWithUnknownWorksheet(t *testing.T) {
	api := newFakeAPI("Certo_Market")

	data := table.Table{
		Header: []string{"Email", "First Name", "Phone"},
	}

	w := NewWriter(api)

	if err := w.Overwrite(context.Background(), "Certo_Markt", &data); err == nil {
		t.Fatalf("Expected error return for unknown worksheet, got %v", err)
	}

	if len(api.updates) != 0 {
		t.Errorf("Expected no updates for unknown worksheet, got %v", api.updates)
	}
}

func TestAppend(t *testing.T) {
	expected := [][]interface{}{
		{"Email", "First Name", "Visit Date"},
		{"old1@example.com", "Old", "2024-01-01"},
		{"old2@example.com", "Older", "2024-01-02"},
		{"anna@example.com", "Anna", "2024-03-15"},
		{"bob@example.com", "Bob", "2024-03-16"},
	}

	api := newFakeAPI("Certo_Market_MKT_Report")
	api.grids["Certo_Market_MKT_Report"] = [][]interface{}{
		{"Email", "First Name", "Visit Date"},
		{"old1@example.com", "Old", "2024-01-01"},
		{"old2@example.com", "Older", "2024-01-02"},
	}

	data := table.Table{
		Header: []string{"Email", "First Name", "Visit Date"},
		Records: [][]string{
			{"anna@example.com", "Anna", "2024-03-15"},
			{"bob@example.com", "Bob", "2024-03-16"},
		},
	}

	w := NewWriter(api)

	if err := w.Append(context.Background(), "Certo_Market_MKT_Report", &data); err != nil {
		t.Fatalf("Unexpected error returned from Append (%v)", err)
	}

	if !reflect.DeepEqual(api.grids["Certo_Market_MKT_Report"], expected) {
		t.Errorf("Incorrect worksheet\n   expected: %v\n   got:      %v\n", expected, api.grids["Certo_Market_MKT_Report"])
	}

	if expected := []string{"Certo_Market_MKT_Report!A4:C5"}; !reflect.DeepEqual(api.updates, expected) {
		t.Errorf("Incorrect update ranges\n   expected: %v\n   got:      %v\n", expected, api.updates)
	}
}

func TestAppendToEmptyWorksheet(t *testing.T) {
	expected := [][]interface{}{
		{"anna@example.com", "Anna", "2024-03-15"},
	}

	api := newFakeAPI("Certo_Market_MKT_Report")

	data := table.Table{
		Header: []string{"Email", "First Name", "Visit Date"},
		Records: [][]string{
			{"anna@example.com", "Anna", "2024-03-15"},
		},
	}

	w := NewWriter(api)

	if err := w.Append(context.Background(), "Certo_Market_MKT_Report", &data); err != nil {
		t.Fatalf("Unexpected error returned from Append (%v)", err)
	}

	if !reflect.DeepEqual(api.grids["Certo_Market_MKT_Report"], expected) {
		t.Errorf("Incorrect worksheet\n   expected: %v\n   got:      %v\n", expected, api.grids["Certo_Market_MKT_Report"])
	}
}

func TestAppendWithNoRecords(t *testing.T) {
	expected := [][]interface{}{
		{"Email", "First Name", "Visit Date"},
		{"old@example.com", "Old", "2024-01-01"},
	}

	api := newFakeAPI("Certo_Market_MKT_Report")
	api.grids["Certo_Market_MKT_Report"] = [][]interface{}{
		{"Email", "First Name", "Visit Date"},
		{"old@example.com", "Old", "2024-01-01"},
	}

	data := table.Table{
		Header:  []string{"Email", "First Name", "Visit Date"},
		Records: [][]string{},
	}

	w := NewWriter(api)

	if err := w.Append(context.Background(), "Certo_Market_MKT_Report", &data); err != nil {
		t.Fatalf("Unexpected error returned from Append (%v)", err)
	}

	if !reflect.DeepEqual(api.grids["Certo_Market_MKT_Report"], expected) {
		t.Errorf("Incorrect worksheet\n   expected: %v\n   got:      %v\n", expected, api.grids["Certo_Market_MKT_Report"])
	}

	if len(api.updates) != 0 {
		t.Errorf("Expected no updates for empty table, got %v", api.updates)
	}
}

func TestParseSpreadsheetID(t *testing.T) {
	tests := []struct {
		v        string
		expected string
	}{
		{"1qWLg1vQHvJQG2hFHrUpO8y6bC8_xDdkLG2ErY_aGxkw", "1qWLg1vQHvJQG2hFHrUpO8y6bC8_xDdkLG2ErY_aGxkw"},
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0", "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
	}

	for _, test := range tests {
		id, err := ParseSpreadsheetID(test.v)
		if err != nil {
			t.Fatalf("Unexpected error returned from ParseSpreadsheetID (%v)", err)
		}

		if id != test.expected {
			t.Errorf("ParseSpreadsheetID(%q): expected %q, got %q", test.v, test.expected, id)
		}
	}
}

func TestParseSpreadsheetIDWithInvalidValue(t *testing.T) {
	tests := []string{
		"",
		"not a spreadsheet!",
		"https://docs.google.com/spreadsheets/d/",
	}

	for _, test := range tests {
		if _, err := ParseSpreadsheetID(test); err == nil {
			t.Errorf("ParseSpreadsheetID(%q): expected error, got %v", test, err)
		}
	}
}
