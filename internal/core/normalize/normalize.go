// Package normalize canonicalizes raw extraction output into an always-populated record.
//
// Field normalizers never fail: a value that cannot be canonicalized is either returned
// as-is (dates) or dropped to "" (closed domains). Record assembly then replaces every
// missing required field with the NotFound sentinel
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"itinerary/internal/core/extractor"
	"itinerary/internal/core/fold"
	"itinerary/internal/core/rulepack"
)

// NotFound stands in for a required field that could not be determined
const NotFound = "not found"

var digitRun = regexp.MustCompile(`\d+`)

// Normalizer holds the compiled pack; it is immutable and safe for concurrent use
type Normalizer struct {
	pack   *rulepack.Pack
	engine *extractor.Engine

	monthRe  *regexp.Regexp
	monthNum map[string]int
}

// New builds a Normalizer over a compiled pack
func New(p *rulepack.Pack) *Normalizer {
	n := &Normalizer{
		pack:     p,
		engine:   extractor.New(p),
		monthNum: make(map[string]int, 12),
	}
	months := p.MonthNames("es")
	if len(months) == 12 {
		alts := make([]string, 0, 12)
		for i, m := range months {
			m = fold.Fold(m)
			n.monthNum[m] = i + 1
			alts = append(alts, regexp.QuoteMeta(m))
		}
		n.monthRe = regexp.MustCompile(`(\d{1,2})[ \t]+(?:de[ \t]+)?(` + strings.Join(alts, "|") + `)[ \t]+(?:de[ \t]+)?(\d{4})`)
	}
	return n
}

// POL returns the canonical load port contained in s, or "" for anything else
func (n *Normalizer) POL(s string) string {
	if fold.Blank(s) {
		return ""
	}
	if t, ok := n.pack.LoadPorts.First(fold.Fold(s)); ok {
		return t.Name
	}
	return ""
}

// Port collapses whitespace and title-cases; any destination is accepted
func (n *Normalizer) Port(s string) string {
	if fold.Blank(s) {
		return ""
	}
	return fold.Title(fold.Collapse(s))
}

// Vessel collapses whitespace, title-cases and keeps only letters, digits, spaces and hyphens
func (n *Normalizer) Vessel(s string) string {
	if fold.Blank(s) {
		return ""
	}
	t := fold.Title(fold.Collapse(s))
	t = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			return r
		}
		return -1
	}, t)
	return fold.Collapse(t)
}

// Week returns the first digit run of s when it lies in 1..53
func (n *Normalizer) Week(s string) *int {
	m := digitRun.FindString(s)
	if m == "" {
		return nil
	}
	w, err := strconv.Atoi(m)
	if err != nil || w < 1 || w > 53 {
		return nil
	}
	return &w
}
