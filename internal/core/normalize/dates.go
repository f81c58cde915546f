package normalize

import (
	"fmt"
	"strings"
	"time"

	"itinerary/internal/core/fold"
)

// ISODate is the output layout of Date
const ISODate = "2006-01-02"

// dateLayouts are tried in order against the whole trimmed input.
// Two-digit years pivot at 69 (69..99 -> 19xx)
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006/1/2",
	"2006-1-2",
	"2/1/06",
	"2-1-06",
	"06/1/2",
	"06-1-2",
}

// Date returns s as YYYY-MM-DD when it parses, otherwise s unchanged
func (n *Normalizer) Date(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return d.Format(ISODate)
		}
	}
	if iso, ok := n.textualDate(t); ok {
		return iso
	}
	return s
}

// textualDate finds "15 enero 2024" or "15 de enero de 2024" anywhere in s
func (n *Normalizer) textualDate(s string) (string, bool) {
	if n.monthRe == nil {
		return "", false
	}
	m := n.monthRe.FindStringSubmatch(fold.Fold(s))
	if m == nil {
		return "", false
	}
	iso := fmt.Sprintf("%s-%02d-%s", m[3], n.monthNum[m[2]], zeroPad(m[1]))
	if _, err := time.Parse(ISODate, iso); err != nil {
		return "", false
	}
	return iso, true
}

func zeroPad(d string) string {
	if len(d) == 1 {
		return "0" + d
	}
	return d
}
