package extractor

import (
	"itinerary/internal/core/fold"
	"itinerary/internal/core/rulepack"
)

// Strategy is one fallback tier: it returns the field value found in text or ""
type Strategy func(text string) string

// Cascade is an ordered strategy list; the first non-empty result wins
type Cascade []Strategy

// Run tries each strategy in order
func (c Cascade) Run(text string) string {
	if text == "" {
		return ""
	}
	for _, s := range c {
		if v := s(text); v != "" {
			return v
		}
	}
	return ""
}

func (e *Engine) buildCascades() map[Field]Cascade {
	p := e.pack

	loadPorts := e.closedList(p.LoadPorts)
	podRules := e.rules(rulepack.FieldPOD)
	dischargePorts := e.closedList(p.DischargePorts)
	departure := e.proximity(p.DepartureKeywords)
	arrival := e.proximity(p.ArrivalKeywords)

	return map[Field]Cascade{
		FieldCarrier: {e.closedList(p.Carriers)},
		FieldPOL:     {loadPorts},
		FieldPOD:     {podRules, dischargePorts},
		FieldETD: {
			e.rules(rulepack.FieldETD),
			e.rules(rulepack.FieldDeparture),
			departure,
		},
		FieldETA: {
			e.rules(rulepack.FieldETA),
			e.rules(rulepack.FieldArrival),
			arrival,
		},
		FieldDate:            {e.rules(rulepack.FieldDate)},
		FieldDepartureDate:   {e.rules(rulepack.FieldDeparture), departure},
		FieldArrivalDate:     {e.rules(rulepack.FieldArrival), arrival},
		FieldWeek:            {e.rules(rulepack.FieldWeek)},
		FieldOriginPort:      {loadPorts, e.rules(rulepack.FieldOrigin)},
		FieldDestinationPort: {podRules, dischargePorts, e.rules(rulepack.FieldDestination)},
		FieldContainerNumber: {e.rules(rulepack.FieldContainer)},
		FieldBookingNumber:   {e.rules(rulepack.FieldBooking)},
		FieldVoyageNumber:    {e.rules(rulepack.FieldVoyage)},
	}
}

// rules scans a field's rule set in order and returns the first accepted capture
func (e *Engine) rules(f rulepack.Field) Strategy {
	rs := e.pack.Rules(f)
	return func(text string) string {
		var out string
		rs.Each(text, func(_ rulepack.Rule, raw string, _ int) bool {
			v, ok := rs.Clean(raw)
			if !ok {
				return false
			}
			if rs.RejectLoadPorts && e.pack.LoadPorts.Contains(fold.Fold(v)) {
				return false
			}
			if rs.Title {
				v = fold.Title(v)
			}
			out = v
			return true
		})
		return out
	}
}

// closedList returns the display name of the first listed term contained in text
func (e *Engine) closedList(m *rulepack.Matcher) Strategy {
	return func(text string) string {
		if t, ok := m.First(fold.Fold(text)); ok {
			return t.Name
		}
		return ""
	}
}

// proximity finds lines holding one of keywords as a whole token and looks for a
// date-shaped token on that line, then on the lines at the configured offsets
func (e *Engine) proximity(keywords []string) Strategy {
	date := e.rules(rulepack.FieldDate)
	offsets := e.pack.Limits.ProximityOffsets
	return func(text string) string {
		lines := fold.Lines(text)
		for i, ln := range lines {
			if !hasAnyToken(fold.Fold(ln), keywords) {
				continue
			}
			if v := date(ln); v != "" {
				return v
			}
			for _, off := range offsets {
				j := i + off
				if j < 0 || j >= len(lines) {
					continue
				}
				if v := date(lines[j]); v != "" {
					return v
				}
			}
		}
		return ""
	}
}
