package generator

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SQLType is the column affinity written to the schema.
type SQLType string

const (
	Integer SQLType = "INTEGER"
	Text    SQLType = "TEXT"
)

// TypeMode selects how column types are decided.
type TypeMode string

const (
	// NameMode infers types from keywords in the header label only.
	NameMode TypeMode = "name"
	// SampleMode looks at the column values and falls back to NameMode
	// when a column holds nothing but NULLs.
	SampleMode TypeMode = "sample"
)

// identifierKeywords mark counters, ages and questionnaire numbers.
var identifierKeywords = []string{"id", "numero", "questionario", "idade", "populacao", "familias"}

// lowerLabel lowercases a raw header label. Accents are kept, so
// "Número" does not contain "numero".
func lowerLabel(raw string) string {
	return cases.Lower(language.Und).String(raw)
}

// InferType maps a raw header label to INTEGER when it contains any of the
// identifier keywords, TEXT otherwise. Matching is by substring, so "id"
// also hits words like "cidade".
func InferType(raw string) SQLType {
	label := lowerLabel(raw)
	for _, kw := range identifierKeywords {
		if strings.Contains(label, kw) {
			return Integer
		}
	}
	return Text
}

// SampleType decides a column type from its values: INTEGER when every
// non-NULL value is a base-10 integer. Columns without any non-NULL value
// get the InferType answer for raw.
func SampleType(raw string, values []string) SQLType {
	seen := false
	for _, v := range values {
		if isNull(v) {
			continue
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
			return Text
		}
		seen = true
	}
	if !seen {
		return InferType(raw)
	}
	return Integer
}

func isPrimaryKeyLabel(raw string) bool {
	label := lowerLabel(raw)
	return strings.Contains(label, "numero") && strings.Contains(label, "questionario")
}

func isForeignKeyLabel(raw string) bool {
	label := lowerLabel(raw)
	return strings.Contains(label, "id") && strings.Contains(label, "questionario")
}
