package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"tsv2sql/config"
	"tsv2sql/loader"
	"tsv2sql/telemetry"
)

// loadCmd applies the generated scripts to a SQLite database.
var loadCmd = &cobra.Command{
	Use:   "load [database]",
	Short: "Apply schema.sql and insert.sql to a SQLite database",
	Long: `This command runs schema.sql and then insert.sql against the SQLite database
file, quilombolas.db by default. Failing statements are reported and skipped;
a script is rolled back when too many statements fail in a row.`,
	Args: cobra.MaximumNArgs(1),
	Run:  load,
}

func load(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	if len(args) > 0 {
		cfg.Database = args[0]
	}
	metrics := telemetry.New()

	if err := loadScripts(cmd.Context(), cfg, metrics, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
	writeMetrics(cfg, metrics)
}

// loadScripts applies the configured output scripts to cfg.Database.
func loadScripts(ctx context.Context, cfg config.Config, metrics *telemetry.Metrics, out io.Writer) error {
	var scripts []loader.Script
	for _, path := range []string{cfg.Output.Schema, cfg.Output.Insert} {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed reading script: %w", err)
		}
		scripts = append(scripts, loader.Script{Name: path, SQL: string(data)})
	}

	l, err := loader.Open(cfg.Database, loader.Options{
		MaxConsecutiveFailures: cfg.Load.MaxConsecutiveFailures,
		Metrics:                metrics,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	results, err := l.Load(ctx, scripts...)
	for _, r := range results {
		fmt.Fprintf(out, "✓ %s: %d statements executed, %d failed\n", r.Script, r.Executed, r.Failed)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded into %s\n", cfg.Database)
	return nil
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
