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
)

// columnsCmd writes the header to column manifest.
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Write a CSV manifest mapping every TSV header to its SQL column",
	Long: `This command plans both tables exactly like 'generate' does and writes
colunas.csv with one line per column: table, original header, identifier,
type, primary key flag and foreign key reference.`,
	Args: cobra.NoArgs,
	Run:  columns,
}

func columns(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	metrics := telemetry.New()

	if err := writeColumns(cfg, metrics, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
	writeMetrics(cfg, metrics)
}

func writeColumns(cfg config.Config, metrics *telemetry.Metrics, out io.Writer) error {
	comunidades, perfis, err := readDatasets(cfg, out)
	if err != nil {
		return err
	}

	_, p, err := plan(cfg, metrics, comunidades, perfis)
	if err != nil {
		return err
	}

	if err := generator.WriteManifest(p, cfg.Output.Columns); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Generated manifest: %s\n", cfg.Output.Columns)
	return nil
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
