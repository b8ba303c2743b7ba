package generator

import (
	"errors"
	"fmt"
	"strings"

	"tsv2sql/tsv"
)

const (
	ComunidadesTable = "comunidades"
	PerfisTable      = "perfis"

	// perfilKey is the autoincrement key added in front of the perfis columns.
	perfilKey = "perfil_id"
)

// Column is one source field as it will appear in the database.
type Column struct {
	Raw        string
	Name       string
	Type       SQLType
	PrimaryKey bool
	ForeignKey bool
}

// Table is the planned layout of one dataset.
type Table struct {
	Name string
	// Key is an autoincrement INTEGER PRIMARY KEY not present in the
	// source data, "" when the table has none.
	Key     string
	Columns []Column
	// RefTable and RefColumn are the target of every ForeignKey column.
	RefTable  string
	RefColumn string
	Records   []tsv.Record
}

// PrimaryKey returns the identifier of the first primary key column.
func (t Table) PrimaryKey() (string, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c.Name, true
		}
	}
	return "", false
}

// Plan is both tables plus every adjustment made while naming columns.
type Plan struct {
	Comunidades Table
	Perfis      Table
	Warnings    []string
}

// Plan lays out the comunidades and perfis tables. The perfis foreign key
// points at whatever identifier the comunidades primary key received.
func (g *Generator) Plan(comunidades, perfis tsv.Dataset) (Plan, error) {
	var p Plan
	var errs []string

	com, warnings, err := g.planTable(ComunidadesTable, comunidades, nil)
	if err != nil {
		errs = append(errs, err.Error())
	}
	p.Warnings = append(p.Warnings, warnings...)

	seenKey := false
	for i, c := range com.Columns {
		if !isPrimaryKeyLabel(c.Raw) {
			continue
		}
		if seenKey {
			p.Warnings = append(p.Warnings, fmt.Sprintf("%s: %q also looks like a questionnaire number, only the first one is the primary key", ComunidadesTable, c.Raw))
			continue
		}
		com.Columns[i].PrimaryKey = true
		seenKey = true
	}

	per, warnings, err := g.planTable(PerfisTable, perfis, []string{perfilKey})
	if err != nil {
		errs = append(errs, err.Error())
	}
	p.Warnings = append(p.Warnings, warnings...)
	per.Key = perfilKey

	ref, hasRef := com.PrimaryKey()
	for i, c := range per.Columns {
		if !isForeignKeyLabel(c.Raw) {
			continue
		}
		if !hasRef {
			p.Warnings = append(p.Warnings, fmt.Sprintf("%s: %q references %s, which has no primary key; foreign key left out", PerfisTable, c.Raw, ComunidadesTable))
			continue
		}
		per.Columns[i].ForeignKey = true
		per.RefTable = ComunidadesTable
		per.RefColumn = ref
	}

	if len(errs) > 0 {
		return Plan{}, errors.New(strings.Join(errs, "\n"))
	}

	p.Comunidades, p.Perfis = com, per
	g.metrics.Warnings.Add(float64(len(p.Warnings)))
	g.metrics.Columns.WithLabelValues(com.Name).Set(float64(len(com.Columns)))
	g.metrics.Columns.WithLabelValues(per.Name).Set(float64(len(per.Columns)))
	return p, nil
}

// planTable names and types every field of ds. Identifiers in reserved are
// already used by the table. Empty identifiers become coluna_<n> and
// duplicates get a numeric suffix, unless the generator is strict, in which
// case duplicates are errors.
func (g *Generator) planTable(name string, ds tsv.Dataset, reserved []string) (Table, []string, error) {
	t := Table{Name: name, Records: ds.Records}
	if len(ds.Fields) == 0 {
		return t, nil, fmt.Errorf("%s: no fields", name)
	}

	taken := make(map[string]bool, len(ds.Fields)+len(reserved))
	for _, r := range reserved {
		taken[r] = true
	}

	var warnings, errs []string
	for i, raw := range ds.Fields {
		id := g.normalizer.Normalize(raw)
		if id == "" {
			id = fmt.Sprintf("coluna_%d", i+1)
			warnings = append(warnings, fmt.Sprintf("%s: field %d (%q) has no letters or digits, named %s", name, i+1, raw, id))
		}

		if taken[id] {
			if g.opts.Strict {
				errs = append(errs, fmt.Sprintf("%s: field %q normalizes to duplicate column '%s'", name, raw, id))
				continue
			}
			unique := id
			for n := 2; taken[unique]; n++ {
				unique = fmt.Sprintf("%s_%d", id, n)
			}
			warnings = append(warnings, fmt.Sprintf("%s: field %q normalizes to duplicate column '%s', renamed to %s", name, raw, id, unique))
			id = unique
		}
		taken[id] = true

		t.Columns = append(t.Columns, Column{
			Raw:  raw,
			Name: id,
			Type: g.columnType(raw, ds),
		})
	}

	if len(errs) > 0 {
		return t, warnings, errors.New(strings.Join(errs, "\n"))
	}
	return t, warnings, nil
}

func (g *Generator) columnType(raw string, ds tsv.Dataset) SQLType {
	if g.opts.Types == SampleMode {
		return SampleType(raw, ds.Values(raw))
	}
	return InferType(raw)
}
