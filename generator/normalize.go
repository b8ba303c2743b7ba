package generator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/patrickmn/go-cache"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Normalize turns a raw TSV header label into a SQL identifier:
// accents removed, every run of non-alphanumeric characters collapsed
// into "_", surrounding "_" trimmed, a "q_" prefix when the result starts
// with a digit, and lowercase.
//
// Labels without any letter or digit normalize to "".
func Normalize(raw string) string {
	// Decompose and drop the combining marks, "Questionário" -> "Questionario".
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, _ := transform.String(t, raw)

	id := nonAlphanumeric.ReplaceAllString(folded, "_")
	id = strings.Trim(id, "_")

	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "q_" + id
	}
	return strings.ToLower(id)
}

// Normalizer memoizes Normalize. Header labels are normalized once for the
// schema and again for every INSERT statement, so the cache saves the
// decomposition work on large files.
type Normalizer struct {
	memo *cache.Cache
}

func NewNormalizer() *Normalizer {
	return &Normalizer{memo: cache.New(cache.NoExpiration, 0)}
}

func (n *Normalizer) Normalize(raw string) string {
	if id, ok := n.memo.Get(raw); ok {
		return id.(string)
	}
	id := Normalize(raw)
	n.memo.SetDefault(raw, id)
	return id
}

// Len reports how many distinct labels have been normalized.
func (n *Normalizer) Len() int {
	return n.memo.ItemCount()
}
