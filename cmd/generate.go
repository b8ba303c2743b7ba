package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"tsv2sql/config"
	"tsv2sql/generator"
	"tsv2sql/telemetry"
	"tsv2sql/tsv"
)

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schema.sql and insert.sql from the TSV files",
	Long: `This command reads the Comunidades and Perfis TSV files, derives one column
per header and writes the CREATE TABLE statements to schema.sql and one
INSERT statement per row to insert.sql.`,
	Args: cobra.NoArgs,
	Run:  generate,
}

func generate(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	metrics := telemetry.New()

	if err := convert(cfg, metrics, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
	writeMetrics(cfg, metrics)
}

// readDatasets reads both TSV inputs and reports their sizes on out.
func readDatasets(cfg config.Config, out io.Writer) (tsv.Dataset, tsv.Dataset, error) {
	fmt.Fprintln(out, "Reading TSV files...")

	comunidades, err := tsv.Read(cfg.Input.Comunidades)
	if err != nil {
		return tsv.Dataset{}, tsv.Dataset{}, err
	}
	perfis, err := tsv.Read(cfg.Input.Perfis)
	if err != nil {
		return tsv.Dataset{}, tsv.Dataset{}, err
	}

	fmt.Fprintf(out, "✓ Comunidades: %d records, %d fields\n", len(comunidades.Records), len(comunidades.Fields))
	fmt.Fprintf(out, "✓ Perfis: %d records, %d fields\n", len(perfis.Records), len(perfis.Fields))
	return comunidades, perfis, nil
}

// plan builds the generator and lays out both tables, logging every
// column adjustment.
func plan(cfg config.Config, metrics *telemetry.Metrics, comunidades, perfis tsv.Dataset) (*generator.Generator, generator.Plan, error) {
	gen, err := generator.NewGenerator(generator.Options{
		Types:   generator.TypeMode(cfg.Types),
		Strict:  cfg.Strict,
		Metrics: metrics,
	})
	if err != nil {
		return nil, generator.Plan{}, fmt.Errorf("failed creating generator: %w", err)
	}

	p, err := gen.Plan(comunidades, perfis)
	if err != nil {
		return nil, generator.Plan{}, fmt.Errorf("failed planning tables:\n%w", err)
	}
	for _, w := range p.Warnings {
		log.Printf("warning: %s", w)
	}
	return gen, p, nil
}

// convert runs the whole TSV to SQL conversion described by cfg.
func convert(cfg config.Config, metrics *telemetry.Metrics, out io.Writer) error {
	comunidades, perfis, err := readDatasets(cfg, out)
	if err != nil {
		return err
	}

	gen, p, err := plan(cfg, metrics, comunidades, perfis)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nGenerating %s...\n", cfg.Output.Schema)
	schema, err := gen.GenerateSchema(p)
	if err != nil {
		return err
	}
	if err := generator.WriteScript(cfg.Output.Schema, schema); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Generated SQL: %s\n", cfg.Output.Schema)

	fmt.Fprintf(out, "\nGenerating %s...\n", cfg.Output.Insert)
	inserts, err := gen.GenerateInserts(p)
	if err != nil {
		return err
	}
	if err := generator.WriteScript(cfg.Output.Insert, inserts); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Generated SQL: %s\n", cfg.Output.Insert)

	fmt.Fprintln(out, "\n✅ Done! You can now run:")
	fmt.Fprintf(out, "   sqlite3 %s < %s\n", cfg.Database, cfg.Output.Schema)
	fmt.Fprintf(out, "   sqlite3 %s < %s\n", cfg.Database, cfg.Output.Insert)
	fmt.Fprintf(out, "or: tsv2sql load %s\n", cfg.Database)
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
