package extractor

import "strings"

// vesselFields are re-run inside each vessel's context window
var vesselFields = []Field{
	FieldCarrier, FieldETD, FieldETA, FieldDate, FieldDepartureDate, FieldArrivalDate,
	FieldWeek, FieldOriginPort, FieldDestinationPort, FieldContainerNumber, FieldBookingNumber,
}

// window joins lines[line-before : line+after], clamped to the text bounds
func window(lines []string, line, before, after int) string {
	lo := max(0, line-before)
	hi := min(len(lines), line+after)
	if lo >= hi {
		return ""
	}
	return strings.Join(lines[lo:hi], "\n")
}

// vessel resolves one vessel's fields: window value first, document value second.
// POL and POD come from a tighter window around the vessel line
func (e *Engine) vessel(lines []string, m Mention, doc Fields) VesselFields {
	lim := e.pack.Limits
	ctx := window(lines, m.Line, lim.WindowBefore, lim.WindowAfter)
	near := window(lines, m.Line, lim.PortWindowBefore, lim.PortWindowAfter)

	v := VesselFields{NameOriginal: m.Name}
	v.VesselName = m.Name

	for _, f := range vesselFields {
		v.Set(f, e.cascades[f].Run(ctx))
	}
	v.POL = e.cascades[FieldPOL].Run(near)
	v.POD = e.cascades[FieldPOD].Run(near)
	v.VoyageNumber = e.cascades[FieldVoyageNumber].Run(ctx)

	for _, f := range documentFields {
		if v.Get(f) == "" {
			v.Set(f, doc.Get(f))
		}
	}
	return v
}
