package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate calls the smaller validators and joins their messages.
func Validate(c Config) error {
	var errs []string

	errs = append(errs, validateInput(c.Input)...)
	errs = append(errs, validateOutput(c.Output)...)

	if strings.TrimSpace(c.Database) == "" {
		errs = append(errs, "database cannot be empty")
	}

	if c.Types != "name" && c.Types != "sample" {
		errs = append(errs, fmt.Sprintf("types must be 'name' or 'sample', got '%s'", c.Types))
	}

	errs = append(errs, validateLoadConfig(c.Load)...)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "\n"))
	}
	return nil
}

// validateInput requires both TSV paths and refuses to read one file twice.
func validateInput(in InputConfig) []string {
	var errs []string
	if strings.TrimSpace(in.Comunidades) == "" {
		errs = append(errs, "input.comunidades cannot be empty")
	}
	if strings.TrimSpace(in.Perfis) == "" {
		errs = append(errs, "input.perfis cannot be empty")
	}
	if in.Comunidades != "" && filepath.Clean(in.Comunidades) == filepath.Clean(in.Perfis) {
		errs = append(errs, fmt.Sprintf("input.comunidades and input.perfis both point to '%s'", in.Comunidades))
	}
	return errs
}

// validateOutput checks the scripts are .sql files written to distinct paths.
func validateOutput(out OutputConfig) []string {
	var errs []string
	for _, o := range []struct{ key, path string }{
		{"output.schema", out.Schema},
		{"output.insert", out.Insert},
	} {
		if strings.TrimSpace(o.path) == "" {
			errs = append(errs, fmt.Sprintf("%s cannot be empty", o.key))
		} else if filepath.Ext(o.path) != ".sql" {
			errs = append(errs, fmt.Sprintf("%s '%s' should have the .sql extension", o.key, o.path))
		}
	}
	if out.Schema != "" && filepath.Clean(out.Schema) == filepath.Clean(out.Insert) {
		errs = append(errs, fmt.Sprintf("output.schema and output.insert both point to '%s'", out.Schema))
	}
	if strings.TrimSpace(out.Columns) == "" {
		errs = append(errs, "output.columns cannot be empty")
	}
	return errs
}

func validateLoadConfig(l LoadConfig) []string {
	var errs []string
	if l.MaxConsecutiveFailures < 1 {
		errs = append(errs, fmt.Sprintf("maxConsecutiveFailures should be 1 or more. got '%v'", l.MaxConsecutiveFailures))
	}
	return errs
}
