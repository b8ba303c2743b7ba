package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"tsv2sql/config"
	"tsv2sql/telemetry"
)

var (
	configPath  string
	inputDir    string
	outputDir   string
	typesFlag   string
	strictFlag  bool
	metricsFile string
)

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&configPath, "config", config.DefaultFile, "YAML configuration file")
	f.StringVar(&inputDir, "input-dir", "", "directory holding the TSV files")
	f.StringVar(&outputDir, "output-dir", "", "directory receiving the generated files")
	f.StringVar(&typesFlag, "types", "name", "column typing: 'name' (header keywords) or 'sample' (column values)")
	f.BoolVar(&strictFlag, "strict", false, "fail when two headers normalize to the same column")
	f.StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics of the run to this file")
}

// loadConfig merges the config file with the flags set on the command line.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed loading configuration: %v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("types") {
		cfg.Types = typesFlag
	}
	if flags.Changed("strict") {
		cfg.Strict = strictFlag
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	cfg.ApplyDirs(inputDir, outputDir)

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration:\n%v", err)
	}
	return cfg
}

func writeMetrics(cfg config.Config, m *telemetry.Metrics) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		log.Fatalf("failed writing metrics to %s: %v", cfg.MetricsFile, err)
	}
}
