package rulepack

import "strings"

// Term is one closed-list entry: Match is the folded needle, Name the display form
type Term struct {
	Match string `json:"match"`
	Name  string `json:"name"`
}

// Matcher answers substring membership for a closed list of terms in one pass.
// Callers pass text already folded (lowercase, accents removed); list order is
// the priority order, so First returns the earliest listed term present
type Matcher struct {
	ac    *dfa
	terms []Term
}

// NewMatcher builds a Matcher; empty needles are skipped
func NewMatcher(terms []Term) *Matcher {
	m := &Matcher{terms: make([]Term, 0, len(terms))}
	needles := make([]string, 0, len(terms))
	for _, t := range terms {
		t.Match = strings.ToLower(strings.TrimSpace(t.Match))
		if t.Match == "" {
			continue
		}
		if t.Name == "" {
			t.Name = t.Match
		}
		needles = append(needles, t.Match)
		m.terms = append(m.terms, t)
	}
	m.ac = compile(needles)
	return m
}

// First returns the lowest-listed term that occurs in folded
func (m *Matcher) First(folded string) (Term, bool) {
	if m == nil || folded == "" {
		return Term{}, false
	}
	best := -1
	m.ac.scan(folded, func(_ int, id int) bool {
		if best == -1 || id < best {
			best = id
		}
		// id 0 cannot be beaten
		return best != 0
	})
	if best < 0 {
		return Term{}, false
	}
	return m.terms[best], true
}

// Contains reports whether any term occurs in folded
func (m *Matcher) Contains(folded string) bool {
	if m == nil || folded == "" {
		return false
	}
	hit := false
	m.ac.scan(folded, func(int, int) bool {
		hit = true
		return false
	})
	return hit
}

// Found returns every distinct term that occurs in folded, in list order
func (m *Matcher) Found(folded string) []Term {
	if m == nil || folded == "" {
		return nil
	}
	seen := make([]bool, len(m.terms))
	m.ac.scan(folded, func(_ int, id int) bool {
		seen[id] = true
		return true
	})
	var out []Term
	for i, ok := range seen {
		if ok {
			out = append(out, m.terms[i])
		}
	}
	return out
}

// Terms returns the list in priority order
func (m *Matcher) Terms() []Term {
	if m == nil {
		return nil
	}
	return m.terms
}

// Len returns the number of terms
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.terms)
}
