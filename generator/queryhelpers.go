package generator

import (
	"fmt"
	"strings"

	"tsv2sql/tsv"
)

// columnList joins the column identifiers in field order. The synthetic
// key is left out, the database assigns it.
func columnList(t Table) string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// insertValues escapes the record fields in column order, looking them up
// by their raw header label.
func insertValues(t Table, rec tsv.Record) []string {
	values := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		values[i] = Escape(rec[c.Raw])
	}
	return values
}

// Input: comunidades (numero_do_questionario, nome), ['7', 'Vila Nova']
// Output: INSERT INTO comunidades (numero_do_questionario, nome) VALUES ('7', 'Vila Nova');
func insertQuery(t Table, values []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", t.Name, columnList(t), strings.Join(values, ", "))
}
