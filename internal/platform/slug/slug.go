// Package slug turns contribution names into stable ASCII codes usable as
// CLI keys and CSV columns.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases name, strips diacritics and joins alphanumeric runs with
// underscores: "Vieillesse plafonnée" becomes "vieillesse_plafonnee".
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pendingSep = false
			continue
		}
		pendingSep = true
	}
	return b.String()
}
