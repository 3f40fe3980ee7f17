package process

import (
	"errors"
	"reflect"
	"testing"

	"github.com/harvesting-media/dataproc/table"
)

func TestLookup(t *testing.T) {
	d, err := Lookup("Certo Market Visits Report")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	if d.Worksheet != "Certo_Market_MKT_Report" {
		t.Errorf("Incorrect worksheet - expected:%v, got:%v", "Certo_Market_MKT_Report", d.Worksheet)
	}

	if d.Mode != Append {
		t.Errorf("Incorrect mode - expected:%v, got:%v", Append, d.Mode)
	}

	columns := []string{}
	for _, f := range d.Fields {
		columns = append(columns, f.Column)
	}

	if expected := []string{"Email", "First Name", "Visit Date"}; !reflect.DeepEqual(columns, expected) {
		t.Errorf("Incorrect columns\n   expected: %v\n   got:      %v\n", expected, columns)
	}
}

func TestLookupWithUnknownProcess(t *testing.T) {
	_, err := Lookup("Certo market")
	if err == nil {
		t.Fatalf("Expected error return for unknown process, got %v", err)
	}

	if !errors.Is(err, ErrUnknownProcess) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrUnknownProcess, err)
	}
}

func TestProcessModes(t *testing.T) {
	expected := map[string]Mode{
		"Certo Market":               Overwrite,
		"Ferreira":                   Overwrite,
		"Certo Market Visits Report": Append,
	}

	for name, mode := range expected {
		d, err := Lookup(name)
		if err != nil {
			t.Fatalf("Unexpected error returned from Lookup (%v)", err)
		}

		if d.Mode != mode {
			t.Errorf("Incorrect mode for '%s' - expected:%v, got:%v", name, mode, d.Mode)
		}
	}
}

func TestApply(t *testing.T) {
	expected := table.Table{
		Header: []string{"Email", "First Name", "Phone"},
		Records: [][]string{
			{"anna@example.com", "Anna Maria", "+55 11 91234-5678"},
			{"bob@example.com", "Bob", "11 90000-0000"},
		},
	}

	src := table.Table{
		Header: []string{"Telefone", "NOME", "E-MAIL", "Extra"},
		Records: [][]string{
			{"+55 11 91234-5678", "ANNA MARIA", "ANNA@EXAMPLE.COM", "x"},
			{" 11 90000-0000 ", "bob", " Bob@Example.com", "y"},
		},
	}

	mapping := map[string]string{
		"email":      "E-MAIL",
		"first_name": "NOME",
		"phone":      "Telefone",
	}

	d, err := Lookup("Certo Market")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	out, err := d.Apply(&src, mapping)
	if err != nil {
		t.Fatalf("Unexpected error returned from Apply (%v)", err)
	}

	if !reflect.DeepEqual(*out, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *out)
	}
}

func TestApplyMatchesColumnsCaseInsensitively(t *testing.T) {
	expected := table.Table{
		Header: []string{"Email", "First Name", "Phone"},
		Records: [][]string{
			{"anna@example.com", "Anna", "11 91234-5678"},
		},
	}

	src := table.Table{
		Header: []string{"EMAIL", "First Name", "Phone"},
		Records: [][]string{
			{"anna@example.com", "Anna", "11 91234-5678"},
		},
	}

	mapping := map[string]string{
		"email":      "email",
		"first_name": "firstname",
		"phone":      "PHONE",
	}

	d, err := Lookup("Ferreira")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	out, err := d.Apply(&src, mapping)
	if err != nil {
		t.Fatalf("Unexpected error returned from Apply (%v)", err)
	}

	if !reflect.DeepEqual(*out, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *out)
	}
}

func TestApplyWithVisitDates(t *testing.T) {
	expected := table.Table{
		Header: []string{"Email", "First Name", "Visit Date"},
		Records: [][]string{
			{"anna@example.com", "Anna", "2024-03-15"},
			{"bob@example.com", "Bob", ""},
		},
	}

	src := table.Table{
		Header: []string{"Email", "Name", "Visited At"},
		Records: [][]string{
			{"anna@example.com", "Anna", "15/03/2024"},
			{"bob@example.com", "Bob", "sometime"},
		},
	}

	mapping := map[string]string{
		"email":      "Email",
		"first_name": "Name",
		"visit_date": "Visited At",
	}

	d, err := Lookup("Certo Market Visits Report")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	out, err := d.Apply(&src, mapping)
	if err != nil {
		t.Fatalf("Unexpected error returned from Apply (%v)", err)
	}

	if !reflect.DeepEqual(*out, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *out)
	}
}

func TestApplyWithUnmappedField(t *testing.T) {
	src := table.Table{
		Header: []string{"Email", "Name", "Phone"},
	}

	mapping := map[string]string{
		"email": "Email",
		"phone": "Phone",
	}

	d, err := Lookup("Certo Market")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	if _, err := d.Apply(&src, mapping); err == nil {
		t.Fatalf("Expected error return for unmapped field, got %v", err)
	}
}

func TestApplyWithUnknownColumn(t *testing.T) {
	src := table.Table{
		Header: []string{"Email", "Name", "Phone"},
	}

	mapping := map[string]string{
		"email":      "Email",
		"first_name": "Nome",
		"phone":      "Phone",
	}

	d, err := Lookup("Certo Market")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	if _, err := d.Apply(&src, mapping); err == nil {
		t.Fatalf("Expected error return for unknown column, got %v", err)
	}
}

func TestApplyWithDuplicateColumns(t *testing.T) {
	src := table.Table{
		Header: []string{"Email", "email", "Name", "Phone"},
	}

	mapping := map[string]string{
		"email":      "Email",
		"first_name": "Name",
		"phone":      "Phone",
	}

	d, err := Lookup("Certo Market")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	if _, err := d.Apply(&src, mapping); err == nil {
		t.Fatalf("Expected error return for duplicate source columns, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	expected := Summary{
		Process:      "Certo Market",
		Worksheet:    "Certo_Market",
		Mode:         Overwrite,
		Rows:         4,
		UniqueEmails: 3,
	}

	out := table.Table{
		Header: []string{"Email", "First Name", "Phone"},
		Records: [][]string{
			{"anna@example.com", "Anna", ""},
			{"anna@example.com", "Anna", ""},
			{"bob@example.com", "Bob", ""},
			{"", "Eve", ""},
		},
	}

	d, err := Lookup("Certo Market")
	if err != nil {
		t.Fatalf("Unexpected error returned from Lookup (%v)", err)
	}

	if summary := d.Summarize(&out); !reflect.DeepEqual(summary, expected) {
		t.Errorf("Incorrect summary\n   expected: %v\n   got:      %v\n", expected, summary)
	}
}
