package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWord covers letters, digits, combining marks and connector punctuation;
// hyphens and other punctuation separate tokens
func isWord(r rune) bool {
	return r != utf8.RuneError && r != 0 &&
		(unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Mn, unicode.Pc))
}

// bounded reports whether s[start:end] has no word rune on either side
func bounded(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWord(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWord(r) {
			return false
		}
	}
	return true
}

// hasToken reports whether kw occurs in s as a whole token ("eta" in "ETA:" but not in "planeta")
func hasToken(s, kw string) bool {
	if kw == "" {
		return false
	}
	for off := 0; off < len(s); {
		i := strings.Index(s[off:], kw)
		if i < 0 {
			return false
		}
		at := off + i
		if bounded(s, at, at+len(kw)) {
			return true
		}
		off = at + 1
	}
	return false
}

// hasAnyToken reports whether any keyword occurs in s as a whole token
func hasAnyToken(s string, kws []string) bool {
	for _, kw := range kws {
		if hasToken(s, kw) {
			return true
		}
	}
	return false
}

// wordSpans returns the [start,end) byte spans of word runs in s
func wordSpans(s string) [][2]int {
	var out [][2]int
	start := -1
	for i, r := range s {
		if isWord(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(s)})
	}
	return out
}
