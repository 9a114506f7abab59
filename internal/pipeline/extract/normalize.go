// internal/pipeline/extract/normalize.go
package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeAttributeKey folds an attribute key to the catalog convention:
// lowercase, diacritics stripped, đ folded to d, spaces and hyphens as
// underscores. The prompt already demands this shape; normalizing again
// keeps a sloppy completion from missing every catalog key.
func NormalizeAttributeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if stripped, _, err := transform.String(diacriticStripper, key); err == nil {
		key = stripped
	}
	key = strings.ReplaceAll(key, "đ", "d")
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}
