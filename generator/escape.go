package generator

import "strings"

const (
	NullLiteral = "NULL"

	// unanswered is what the survey export writes for skipped questions.
	unanswered = "sem resposta*"
)

// isNull matches the placeholder after plain lowercasing, not case folding.
func isNull(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.ToLower(v) == unanswered
}

// Escape renders a raw TSV value as a SQL literal. Empty, blank and
// unanswered values become NULL; anything else is trimmed and single-quoted
// with embedded quotes doubled. A field missing from a record is looked up
// as "" and therefore also becomes NULL.
func Escape(value string) string {
	if isNull(value) {
		return NullLiteral
	}
	return "'" + strings.ReplaceAll(strings.TrimSpace(value), "'", "''") + "'"
}
