package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsv2sql/config"
	"tsv2sql/telemetry"
	"tsv2sql/version"
)

const (
	comunidadesTSV = "Numero do Questionario\tNome da Comunidade\tMunicípio\tQuantas familias?\n" +
		"7\tVila Nova\tAlcântara\t32\n" +
		"8\tSão Benedito\tOriximiná\tSem resposta*\n"
	perfisTSV = "ID do Questionario\tNome\tIdade\tTelefone\n" +
		"7\tMaria d'Ajuda\t54\t\n" +
		"8\tJosé\t\t(93) 99999-0000\n"
)

// testConfig writes both TSV inputs to a temporary directory and returns
// the default configuration rooted there.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Comunidades.tsv"), []byte(comunidadesTSV), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Perfis.tsv"), []byte(perfisTSV), 0644))

	cfg := config.Default()
	cfg.ApplyDirs(dir, filepath.Join(dir, "saida"))
	return cfg
}

func TestConvert(t *testing.T) {
	cfg := testConfig(t)
	metrics := telemetry.New()
	var out bytes.Buffer

	require.NoError(t, convert(cfg, metrics, &out))

	assert.Contains(t, out.String(), "✓ Comunidades: 2 records, 4 fields\n")
	assert.Contains(t, out.String(), "✓ Perfis: 2 records, 4 fields\n")
	assert.Contains(t, out.String(), "sqlite3 "+cfg.Database+" < "+cfg.Output.Schema)

	schema, err := os.ReadFile(cfg.Output.Schema)
	require.NoError(t, err)
	assert.Contains(t, string(schema), "CREATE TABLE comunidades (\n"+
		"    numero_do_questionario INTEGER PRIMARY KEY,\n"+
		"    nome_da_comunidade INTEGER,\n"+
		"    municipio TEXT,\n"+
		"    quantas_familias INTEGER\n"+
		");")
	assert.Contains(t, string(schema), "FOREIGN KEY (id_do_questionario) REFERENCES comunidades(numero_do_questionario)")

	inserts, err := os.ReadFile(cfg.Output.Insert)
	require.NoError(t, err)
	assert.Contains(t, string(inserts),
		"INSERT INTO comunidades (numero_do_questionario, nome_da_comunidade, municipio, quantas_familias) VALUES ('8', 'São Benedito', 'Oriximiná', NULL);\n")
	assert.Contains(t, string(inserts),
		"INSERT INTO perfis (id_do_questionario, nome, idade, telefone) VALUES ('7', 'Maria d''Ajuda', '54', NULL);\n")

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Records.WithLabelValues("perfis")))
}

func TestConvertMissingInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.Perfis = filepath.Join(t.TempDir(), "Perfis.tsv")

	err := convert(cfg, telemetry.New(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Perfis.tsv")

	_, statErr := os.Stat(cfg.Output.Schema)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertStrict(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Input.Perfis, []byte("Nome\tNOME\nA\tB\n"), 0644))
	cfg.Strict = true

	err := convert(cfg, telemetry.New(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column 'nome'")
}

func TestConvertThenLoad(t *testing.T) {
	cfg := testConfig(t)
	metrics := telemetry.New()
	require.NoError(t, convert(cfg, metrics, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, loadScripts(context.Background(), cfg, metrics, &out))

	assert.Contains(t, out.String(), "✓ "+cfg.Output.Schema+": 4 statements executed, 0 failed\n")
	assert.Contains(t, out.String(), "✓ "+cfg.Output.Insert+": 4 statements executed, 0 failed\n")
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.Statements.WithLabelValues(cfg.Output.Insert, "ok")))

	_, err := os.Stat(cfg.Database)
	assert.NoError(t, err)
}

func TestLoadWithoutScripts(t *testing.T) {
	cfg := testConfig(t)

	err := loadScripts(context.Background(), cfg, telemetry.New(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed reading script")
}

func TestWriteColumns(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	require.NoError(t, writeColumns(cfg, telemetry.New(), &out))
	assert.Contains(t, out.String(), "✓ Generated manifest: "+cfg.Output.Columns)

	data, err := os.ReadFile(cfg.Output.Columns)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// header + 4 comunidades columns + perfil_id + 4 perfis columns
	assert.Len(t, lines, 10)
	assert.Equal(t, "tabela,campo_original,coluna,tipo,chave_primaria,referencia", lines[0])
}

func TestWriteMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsFile = filepath.Join(t.TempDir(), "tsv2sql.prom")
	metrics := telemetry.New()
	require.NoError(t, convert(cfg, metrics, &bytes.Buffer{}))

	writeMetrics(cfg, metrics)

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tsv2sql_records_total{table="comunidades"} 2`)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "tsv2sql "+version.Version+"\n", out.String())
}
