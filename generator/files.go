package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// WriteScript writes generated SQL to path, creating missing parent
// directories. An existing file is overwritten.
func WriteScript(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed writing %s: %w", path, err)
	}
	return nil
}

// ManifestRow documents where a TSV header ended up in the database.
type ManifestRow struct {
	Table      string `csv:"tabela"`
	Field      string `csv:"campo_original"`
	Column     string `csv:"coluna"`
	Type       string `csv:"tipo"`
	PrimaryKey bool   `csv:"chave_primaria"`
	References string `csv:"referencia"`
}

// Manifest lists every column of both tables, synthetic key included.
func (p Plan) Manifest() []ManifestRow {
	var rows []ManifestRow
	for _, t := range []Table{p.Comunidades, p.Perfis} {
		if t.Key != "" {
			rows = append(rows, ManifestRow{Table: t.Name, Column: t.Key, Type: string(Integer), PrimaryKey: true})
		}
		for _, c := range t.Columns {
			row := ManifestRow{
				Table:      t.Name,
				Field:      c.Raw,
				Column:     c.Name,
				Type:       string(c.Type),
				PrimaryKey: c.PrimaryKey,
			}
			if c.ForeignKey {
				row.References = fmt.Sprintf("%s(%s)", t.RefTable, t.RefColumn)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteManifest dumps the plan manifest into a CSV file.
func WriteManifest(p Plan, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file(%s): %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed closing %s: %w", path, cerr)
		}
	}()

	rows := p.Manifest()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed writing %s: %w", path, err)
	}
	return nil
}
