package fold

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what OCR engines leak into recognized text: C0 controls
// other than tab, CR and LF (tesseract's form feed included), DEL, C1
// controls and invalid UTF-8. Clean input is returned as is
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if junk(r) {
			return -1
		}
		return r
	}, s)
}

func junk(r rune) bool {
	switch {
	case r == '\n', r == '\r', r == '\t':
		return false
	case r < 0x20, r >= 0x7f && r <= 0x9f:
		return true
	}
	return r == utf8.RuneError
}
