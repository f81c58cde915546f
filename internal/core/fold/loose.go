package fold

import (
	"strings"
	"unicode"
)

// LooseKey projects a name onto its folded letters and digits with repeated
// runes squashed, so OCR noise like "MSC  AURORA." / "msc-aurora" / "MSC AURORRA"
// share one key. An empty key means the name had no letters or digits
func LooseKey(s string) string {
	var b strings.Builder
	last := rune(-1)
	for _, r := range Fold(s) {
		if r == last || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}
