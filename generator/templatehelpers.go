package generator

import (
	"fmt"
	"strings"
)

const columnIndent = "    "

// columnDefs renders the body of a CREATE TABLE statement: the synthetic
// key, one line per column and the foreign key clauses last, which SQLite
// requires after every column definition.
func columnDefs(t Table) string {
	var lines []string
	if t.Key != "" {
		lines = append(lines, fmt.Sprintf("%s%s %s PRIMARY KEY AUTOINCREMENT", columnIndent, t.Key, Integer))
	}

	for _, c := range t.Columns {
		line := fmt.Sprintf("%s%s %s", columnIndent, c.Name, c.Type)
		if c.PrimaryKey {
			line += " PRIMARY KEY"
		}
		lines = append(lines, line)
	}

	for _, c := range t.Columns {
		if c.ForeignKey {
			lines = append(lines, fmt.Sprintf("%sFOREIGN KEY (%s) REFERENCES %s(%s)", columnIndent, c.Name, t.RefTable, t.RefColumn))
		}
	}
	return strings.Join(lines, ",\n")
}
