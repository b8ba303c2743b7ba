package generator

import (
	"fmt"
	"strings"
)

// GenerateSchema renders schema.sql: both tables dropped (perfis first,
// it references comunidades) and recreated (comunidades first).
func (g *Generator) GenerateSchema(p Plan) (string, error) {
	var buf strings.Builder
	if err := g.sqlTemplate.ExecuteTemplate(&buf, "schema.tmpl", p); err != nil {
		return "", fmt.Errorf("schema generation failed: %w", err)
	}
	return buf.String(), nil
}

type insertSection struct {
	Name       string
	Statements []string
}

// GenerateInserts renders insert.sql: one INSERT per record, comunidades
// rows first, in file order.
func (g *Generator) GenerateInserts(p Plan) (string, error) {
	data := struct {
		Comunidades insertSection
		Perfis      insertSection
	}{
		Comunidades: g.buildInsertSection(p.Comunidades),
		Perfis:      g.buildInsertSection(p.Perfis),
	}

	var buf strings.Builder
	if err := g.sqlTemplate.ExecuteTemplate(&buf, "insert.tmpl", data); err != nil {
		return "", fmt.Errorf("insert generation failed: %w", err)
	}
	return buf.String(), nil
}

func (g *Generator) buildInsertSection(t Table) insertSection {
	s := insertSection{Name: t.Name, Statements: make([]string, 0, len(t.Records))}
	for _, rec := range t.Records {
		values := insertValues(t, rec)
		for _, v := range values {
			if v == NullLiteral {
				g.metrics.NullValues.WithLabelValues(t.Name).Inc()
			}
		}
		s.Statements = append(s.Statements, insertQuery(t, values))
	}
	g.metrics.Records.WithLabelValues(t.Name).Add(float64(len(t.Records)))
	return s
}
