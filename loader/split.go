package loader

import "strings"

// SplitStatements cuts a script into statements on ";" outside of string
// literals. "--" comments are dropped; quotes inside literals are doubled
// by the escaper, so a lone "'" always toggles the literal state.
func SplitStatements(script string) []string {
	var stmts []string
	var cur strings.Builder
	inLiteral := false

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			stmts = append(stmts, s)
		}
		cur.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			cur.WriteByte(c)
		case inLiteral:
			cur.WriteByte(c)
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			for i < len(script) && script[i] != '\n' {
				i++
			}
			cur.WriteByte('\n')
		case c == ';':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return stmts
}
