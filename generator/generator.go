package generator

import (
	"embed"
	"fmt"
	"text/template"

	"tsv2sql/telemetry"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Options struct {
	Types  TypeMode
	Strict bool
	// Metrics receives plan and insert counters. A private set is used
	// when nil.
	Metrics *telemetry.Metrics
}

type Generator struct {
	sqlTemplate *template.Template
	normalizer  *Normalizer
	metrics     *telemetry.Metrics
	opts        Options
}

func NewGenerator(opts Options) (*Generator, error) {
	funcMap := template.FuncMap{
		"columnDefs": columnDefs,
	}

	sqlTmpl, err := template.New("sql").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse SQL templates: %w", err)
	}

	if opts.Types == "" {
		opts.Types = NameMode
	}
	if opts.Types != NameMode && opts.Types != SampleMode {
		return nil, fmt.Errorf("unknown type mode '%s'", opts.Types)
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.New()
	}

	return &Generator{
		sqlTemplate: sqlTmpl,
		normalizer:  NewNormalizer(),
		metrics:     metrics,
		opts:        opts,
	}, nil
}
