package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"itinerary/internal/core/fold"
	"itinerary/internal/core/rulepack"
)

// labelPunct is skipped between a vessel keyword and the name
const labelPunct = ":.#-/ \t"

// mentions collects vessel candidates: keyword pass first, then the two regex passes.
// Candidates are deduplicated in first-seen order
func (e *Engine) mentions(text string, lines []string) []Mention {
	var (
		out  []Mention
		seen = make(map[string]struct{})
	)
	add := func(m Mention) {
		key := m.Name
		if e.looseDedup {
			key = fold.LooseKey(m.Name)
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}

	for i, ln := range lines {
		for _, name := range e.keywordNames(ln) {
			add(Mention{Name: name, Line: i, Context: strings.TrimSpace(ln)})
		}
	}

	for _, f := range []rulepack.Field{rulepack.FieldVesselVoyage, rulepack.FieldVesselLabel} {
		rs := e.pack.Rules(f)
		for _, r := range rs.Rules {
			for _, m := range r.Regexp().FindAllStringSubmatchIndex(text, -1) {
				lo, hi := m[2*r.Group], m[2*r.Group+1]
				if lo < 0 {
					continue
				}
				name := e.collectWords(e.stripKeyword(text[lo:hi]))
				if !e.acceptVessel(name) {
					continue
				}
				add(Mention{
					Name:    name,
					Line:    strings.Count(text[:m[0]], "\n"),
					Context: strings.TrimSpace(text[m[0]:m[1]]),
				})
			}
		}
	}
	return out
}

// keywordNames returns the accepted names following each vessel keyword token in ln
func (e *Engine) keywordNames(ln string) []string {
	var names []string
	for _, sp := range wordSpans(ln) {
		if !e.isVesselKeyword(ln[sp[0]:sp[1]]) {
			continue
		}
		rest := strings.TrimLeft(ln[sp[1]:], labelPunct)
		name := e.collectWords(rest)
		if e.acceptVessel(name) {
			names = append(names, name)
		}
	}
	return names
}

func (e *Engine) isVesselKeyword(word string) bool {
	w := fold.Fold(strings.Trim(word, labelPunct))
	for _, kw := range e.pack.VesselKeywords {
		if w == kw {
			return true
		}
	}
	return false
}

// stripKeyword drops a leading vessel keyword the regex pass swept into its capture
func (e *Engine) stripKeyword(s string) string {
	s = strings.TrimLeft(s, labelPunct)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i > 0 && e.isVesselKeyword(s[:i]) {
		return strings.TrimLeft(s[i:], labelPunct)
	}
	return s
}

// collectWords takes up to the word limit, stopping before a date-shaped word,
// a voyage-shaped word or an over-long word. A field label stops only after the
// first word so names like "SEMANA SANTA EXPRESS" survive
func (e *Engine) collectWords(s string) string {
	lim := e.pack.Limits
	var words []string
	for _, w := range strings.Fields(s) {
		if e.pack.DateLike.MatchString(w) || e.pack.VoyageLike.MatchString(w) {
			break
		}
		if utf8.RuneCountInString(w) > lim.VesselMaxWordLen {
			break
		}
		if len(words) > 0 && e.isStopLabel(w) {
			break
		}
		words = append(words, w)
		if len(words) >= lim.VesselMaxWords {
			break
		}
	}
	return strings.TrimRight(strings.Join(words, " "), ",;:")
}

func (e *Engine) isStopLabel(w string) bool {
	_, ok := e.pack.StopLabels[fold.Fold(strings.Trim(w, labelPunct+",;"))]
	return ok
}

// acceptVessel rejects short names, names without letters and port-like names
func (e *Engine) acceptVessel(name string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < e.pack.Limits.VesselMinLen {
		return false
	}
	if strings.IndexFunc(name, unicode.IsLetter) < 0 {
		return false
	}
	return !e.likelyPort(name)
}

// likelyPort reports whether name contains a port indicator or starts with a port prefix
func (e *Engine) likelyPort(name string) bool {
	f := fold.Fold(name)
	if e.pack.PortIndicators.Contains(f) {
		return true
	}
	for _, p := range e.pack.PortPrefixes {
		if strings.HasPrefix(f, p) {
			return true
		}
	}
	return false
}
