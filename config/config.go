// Package config loads the optional tsv2sql.yaml file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = "tsv2sql.yaml"

type Config struct {
	Input       InputConfig  `yaml:"input"`
	Output      OutputConfig `yaml:"output"`
	Database    string       `yaml:"database"`
	Types       string       `yaml:"types"`
	Strict      bool         `yaml:"strict"`
	MetricsFile string       `yaml:"metricsFile"`
	Load        LoadConfig   `yaml:"load"`
}

type InputConfig struct {
	Comunidades string `yaml:"comunidades"`
	Perfis      string `yaml:"perfis"`
}

type OutputConfig struct {
	Schema  string `yaml:"schema"`
	Insert  string `yaml:"insert"`
	Columns string `yaml:"columns"`
}

type LoadConfig struct {
	// MaxConsecutiveFailures trips the load circuit breaker.
	MaxConsecutiveFailures uint32 `yaml:"maxConsecutiveFailures"`
}

// Default reproduces the fixed file names of the survey export.
func Default() Config {
	return Config{
		Input: InputConfig{
			Comunidades: "Comunidades.tsv",
			Perfis:      "Perfis.tsv",
		},
		Output: OutputConfig{
			Schema:  "schema.sql",
			Insert:  "insert.sql",
			Columns: "colunas.csv",
		},
		Database: "quilombolas.db",
		Types:    "name",
		Load: LoadConfig{
			MaxConsecutiveFailures: 5,
		},
	}
}

// Parse reads YAML on top of the defaults. Environment variables such as
// ${DATA_DIR} are expanded before parsing.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("YAML parsing failed: %w", err)
	}
	return cfg, nil
}

// Load reads the config file at path. A missing DefaultFile is not an
// error, the defaults are returned instead.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultFile {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDirs resolves relative input paths against inputDir and relative
// output paths against outputDir. Empty directories leave paths unchanged.
func (c *Config) ApplyDirs(inputDir, outputDir string) {
	c.Input.Comunidades = join(inputDir, c.Input.Comunidades)
	c.Input.Perfis = join(inputDir, c.Input.Perfis)
	c.Output.Schema = join(outputDir, c.Output.Schema)
	c.Output.Insert = join(outputDir, c.Output.Insert)
	c.Output.Columns = join(outputDir, c.Output.Columns)
	c.Database = join(outputDir, c.Database)
	if c.MetricsFile != "" {
		c.MetricsFile = join(outputDir, c.MetricsFile)
	}
}

func join(dir, path string) string {
	if dir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
