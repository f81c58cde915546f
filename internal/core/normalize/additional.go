package normalize

import (
	"itinerary/internal/core/extractor"
	"itinerary/internal/core/fold"
	"itinerary/internal/core/rulepack"
)

// AdditionalFields are mined from the full text independently of the primary extraction
type AdditionalFields struct {
	Ports        []string `json:"ports,omitempty"`
	VoyageNumber string   `json:"voyage_number,omitempty"`
}

// ExtractAdditionalFields lists the ports mentioned in text and its voyage number.
// Known ports come first in list order, then labeled port mentions in text order
func (n *Normalizer) ExtractAdditionalFields(text string) AdditionalFields {
	text = fold.Text(text)
	var add AdditionalFields
	if text == "" {
		return add
	}

	seen := make(map[string]struct{})
	push := func(p string) {
		if p == "" {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		add.Ports = append(add.Ports, p)
	}

	for _, t := range n.pack.CommonPorts.Found(fold.Fold(text)) {
		push(fold.Title(t.Name))
	}

	rs := n.pack.Rules(rulepack.FieldPortMention)
	rs.Each(text, func(_ rulepack.Rule, raw string, _ int) bool {
		v, ok := rs.Clean(raw)
		if !ok {
			return false
		}
		if rs.Title {
			v = fold.Title(v)
		}
		push(v)
		return false
	})

	add.VoyageNumber = n.engine.Field(extractor.FieldVoyageNumber, text)
	return add
}
