// Package fold provides the deterministic text projections shared by the extractor and normalizer
// Fold pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Canonical decomposition NFD
// 3 Remove combining marks (accents)
// 4 Case folding
// 5 Width fold fullwidth to ASCII
// 6 Recompose NFC
//
// Folded text is only used for membership tests; values are always cut from the original text
package fold

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)), // strip accents
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			cases.Fold(),
			width.Fold,
			norm.NFC,
		)
	},
}

// casers are not safe for concurrent use, so each goroutine borrows one
var titlePool = sync.Pool{
	New: func() any {
		c := cases.Title(language.Spanish)
		return &c
	},
}

// Fold returns s lowercased with accents removed ("Valparaíso" -> "valparaiso")
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Title upper-cases the first letter of each word and lowercases the rest
func Title(s string) string {
	if s == "" {
		return ""
	}
	c := titlePool.Get().(*cases.Caser)
	out := c.String(s)
	c.Reset()
	titlePool.Put(c)
	return out
}

// Collapse converts every whitespace run, line breaks included, to a single space and trims
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text prepares recognized text for extraction: control bytes are dropped and
// CRLF/CR line endings become LF. Line count and order are preserved
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)
	if strings.IndexByte(s, '\r') >= 0 {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return s
}

// Blank reports whether s is empty, whitespace only, or the literal "None"
// some OCR pipelines emit for a missing value
func Blank(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || t == "None"
}

// collapseLines converts horizontal whitespace runs to a single ASCII space but keeps
// every line break, so line indexes stay stable. Edges of each line are trimmed
func collapseLines(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = Collapse(ln)
	}
	return strings.Join(lines, "\n")
}

// Lines returns the text split on LF with each line whitespace-collapsed
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(collapseLines(s), "\n")
}
