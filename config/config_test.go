package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
types: sample
output:
  insert: dados.sql
`))
	require.NoError(t, err)

	assert.Equal(t, "sample", cfg.Types)
	assert.Equal(t, "dados.sql", cfg.Output.Insert)
	assert.Equal(t, "schema.sql", cfg.Output.Schema)
	assert.Equal(t, "Comunidades.tsv", cfg.Input.Comunidades)
	assert.Equal(t, uint32(5), cfg.Load.MaxConsecutiveFailures)
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("TSV2SQL_DATA", "/srv/pesquisa")

	cfg, err := Parse([]byte(`
input:
  comunidades: ${TSV2SQL_DATA}/Comunidades.tsv
database: ${TSV2SQL_DATA}/quilombolas.db
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/pesquisa/Comunidades.tsv", cfg.Input.Comunidades)
	assert.Equal(t, "/srv/pesquisa/quilombolas.db", cfg.Database)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("input: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML parsing failed")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(DefaultFile)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyDirs(t *testing.T) {
	cfg := Default()
	cfg.Input.Perfis = "/abs/Perfis.tsv"
	cfg.MetricsFile = "run.prom"
	cfg.ApplyDirs("in", "out")

	assert.Equal(t, filepath.Join("in", "Comunidades.tsv"), cfg.Input.Comunidades)
	assert.Equal(t, "/abs/Perfis.tsv", cfg.Input.Perfis)
	assert.Equal(t, filepath.Join("out", "schema.sql"), cfg.Output.Schema)
	assert.Equal(t, filepath.Join("out", "insert.sql"), cfg.Output.Insert)
	assert.Equal(t, filepath.Join("out", "colunas.csv"), cfg.Output.Columns)
	assert.Equal(t, filepath.Join("out", "quilombolas.db"), cfg.Database)
	assert.Equal(t, filepath.Join("out", "run.prom"), cfg.MetricsFile)

	unchanged := Default()
	unchanged.ApplyDirs("", "")
	assert.Equal(t, Default(), unchanged)
}
