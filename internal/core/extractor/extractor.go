// Package extractor locates itinerary fields inside OCR-recognized text.
//
// Every field is resolved by an ordered list of strategies; the first strategy that
// yields a non-empty value wins. Extraction is total: gaps come back as empty strings,
// never as errors or panics. Documents naming two or more distinct vessels are split
// into per-vessel context windows and the cascades re-run inside each window
package extractor

import (
	"github.com/rs/zerolog"

	"itinerary/internal/core/fold"
	"itinerary/internal/core/rulepack"
)

// Field names one extracted value
type Field string

// Fields produced by the engine
const (
	FieldCarrier         Field = "carrier"
	FieldVesselName      Field = "vessel_name"
	FieldPOL             Field = "pol"
	FieldPOD             Field = "pod"
	FieldETD             Field = "etd"
	FieldETA             Field = "eta"
	FieldDate            Field = "date"
	FieldDepartureDate   Field = "departure_date"
	FieldArrivalDate     Field = "arrival_date"
	FieldWeek            Field = "week"
	FieldOriginPort      Field = "origin_port"
	FieldDestinationPort Field = "destination_port"
	FieldContainerNumber Field = "container_number"
	FieldBookingNumber   Field = "booking_number"
	FieldVoyageNumber    Field = "voyage_number"
)

// documentFields run over the whole text, in this order
var documentFields = []Field{
	FieldCarrier, FieldPOL, FieldPOD, FieldETD, FieldETA,
	FieldDate, FieldDepartureDate, FieldArrivalDate, FieldWeek,
	FieldOriginPort, FieldDestinationPort, FieldContainerNumber, FieldBookingNumber,
}

// requiredFields are logged when the cascade comes back empty
var requiredFields = map[Field]bool{
	FieldCarrier: true, FieldPOL: true, FieldPOD: true, FieldETD: true, FieldETA: true,
}

// Fields holds the scalar values of one document or one vessel; "" means not found
type Fields struct {
	Carrier         string `json:"carrier,omitempty"`
	VesselName      string `json:"vessel_name,omitempty"`
	POL             string `json:"pol,omitempty"`
	POD             string `json:"pod,omitempty"`
	ETD             string `json:"etd,omitempty"`
	ETA             string `json:"eta,omitempty"`
	Date            string `json:"date,omitempty"`
	DepartureDate   string `json:"departure_date,omitempty"`
	ArrivalDate     string `json:"arrival_date,omitempty"`
	Week            string `json:"week,omitempty"`
	OriginPort      string `json:"origin_port,omitempty"`
	DestinationPort string `json:"destination_port,omitempty"`
	ContainerNumber string `json:"container_number,omitempty"`
	BookingNumber   string `json:"booking_number,omitempty"`
}

// Get returns the value stored for f
func (fs Fields) Get(f Field) string {
	if p := fs.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set stores v for f; unknown fields are ignored
func (fs *Fields) Set(f Field, v string) {
	if p := fs.slot(f); p != nil {
		*p = v
	}
}

func (fs *Fields) slot(f Field) *string {
	switch f {
	case FieldCarrier:
		return &fs.Carrier
	case FieldVesselName:
		return &fs.VesselName
	case FieldPOL:
		return &fs.POL
	case FieldPOD:
		return &fs.POD
	case FieldETD:
		return &fs.ETD
	case FieldETA:
		return &fs.ETA
	case FieldDate:
		return &fs.Date
	case FieldDepartureDate:
		return &fs.DepartureDate
	case FieldArrivalDate:
		return &fs.ArrivalDate
	case FieldWeek:
		return &fs.Week
	case FieldOriginPort:
		return &fs.OriginPort
	case FieldDestinationPort:
		return &fs.DestinationPort
	case FieldContainerNumber:
		return &fs.ContainerNumber
	case FieldBookingNumber:
		return &fs.BookingNumber
	}
	return nil
}

// VesselFields is the per-vessel view of a multi-vessel document
type VesselFields struct {
	Fields
	VoyageNumber string `json:"voyage_number,omitempty"`
	NameOriginal string `json:"name_original,omitempty"`
}

// Result is the raw extraction output
type Result struct {
	Text        string `json:"-"`
	MultiVessel bool   `json:"multi_vessel"`
	VesselCount int    `json:"vessel_count"`
	Fields
	Vessels []VesselFields `json:"vessels,omitempty"`
}

// Mention is a vessel-name candidate with the line it was found on
type Mention struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Context string `json:"context"`
}

// Option configures an Engine
type Option func(*Engine)

// WithLooseDedup keys vessel candidates on their folded letters and digits so
// OCR-noised spellings of one vessel do not count as two
func WithLooseDedup(on bool) Option {
	return func(e *Engine) { e.looseDedup = on }
}

// WithLogger sets the logger used for debug-level gap reporting
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = *l
		}
	}
}

// WithStrategy appends a fallback tier to the cascade of f
func WithStrategy(f Field, s Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.extra[f] = append(e.extra[f], s)
		}
	}
}

// Engine runs the field cascades. It holds no per-document state and is safe for concurrent use
type Engine struct {
	pack       *rulepack.Pack
	log        zerolog.Logger
	looseDedup bool

	cascades map[Field]Cascade
	extra    map[Field][]Strategy
}

// New builds an Engine over a compiled pack
func New(p *rulepack.Pack, opts ...Option) *Engine {
	e := &Engine{
		pack:  p,
		log:   zerolog.Nop(),
		extra: make(map[Field][]Strategy),
	}
	for _, o := range opts {
		o(e)
	}
	e.cascades = e.buildCascades()
	for f, ss := range e.extra {
		e.cascades[f] = append(e.cascades[f], ss...)
	}
	return e
}

// Field runs the cascade of a single field over text
func (e *Engine) Field(f Field, text string) string {
	return e.cascades[f].Run(fold.Text(text))
}

// Mentions returns the deduplicated vessel candidates of text in first-seen order
func (e *Engine) Mentions(text string) []Mention {
	text = fold.Text(text)
	return e.mentions(text, fold.Lines(text))
}

// Extract runs every cascade over text and, when two or more vessels are named,
// over each vessel's context window
func (e *Engine) Extract(text string) Result {
	text = fold.Text(text)
	lines := fold.Lines(text)

	res := Result{Text: text}
	res.Fields = e.document(text)

	mentions := e.mentions(text, lines)
	if len(mentions) < 2 {
		if len(mentions) == 1 {
			res.VesselName = mentions[0].Name
		}
		if res.VesselName == "" {
			e.log.Debug().Str("field", string(FieldVesselName)).Msg("extract: field not found")
		}
		return res
	}

	res.MultiVessel = true
	res.Vessels = make([]VesselFields, 0, len(mentions))
	for _, m := range mentions {
		res.Vessels = append(res.Vessels, e.vessel(lines, m, res.Fields))
	}
	res.VesselCount = len(res.Vessels)
	e.log.Debug().Int("vessels", res.VesselCount).Msg("extract: multi-vessel document")
	return res
}

// document resolves every document-level field over the full text
func (e *Engine) document(text string) Fields {
	var fs Fields
	for _, f := range documentFields {
		v := e.cascades[f].Run(text)
		if v == "" && requiredFields[f] {
			e.log.Debug().Str("field", string(f)).Msg("extract: field not found")
		}
		fs.Set(f, v)
	}
	return fs
}
