package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "NULL"},
		{"blank", " \t ", "NULL"},
		{"placeholder", "sem resposta*", "NULL"},
		{"placeholder mixed case", "Sem Resposta*", "NULL"},
		{"placeholder padded", "  SEM RESPOSTA*  ", "NULL"},
		{"placeholder without star", "Sem resposta", "'Sem resposta'"},
		{"placeholder with long s", "\u017fem resposta*", "'\u017fem resposta*'"},
		{"quote", "O'Brien", "'O''Brien'"},
		{"number", "7", "'7'"},
		{"trimmed", "  Vila Nova ", "'Vila Nova'"},
		{"accents", "São João d'Aliança", "'São João d''Aliança'"},
		{"only quotes", "''", "''''''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.value))
		})
	}
}

func TestEscapeAbsentField(t *testing.T) {
	rec := map[string]string{"Nome": "Vila Nova"}
	assert.Equal(t, NullLiteral, Escape(rec["Município"]))
}

func TestEscapeLiteralShape(t *testing.T) {
	for _, v := range []string{"a", "'", "a'b'c", "it''s", " x ", "Sem resposta*", "", "'start", "end'"} {
		got := Escape(v)
		if got == NullLiteral {
			continue
		}

		assert.True(t, strings.HasPrefix(got, "'") && strings.HasSuffix(got, "'"), "%q", got)
		inner := got[1 : len(got)-1]
		assert.NotContains(t, strings.ReplaceAll(inner, "''", ""), "'", "undoubled quote in %q", got)
	}
}
