package normalize

import (
	"strings"

	"itinerary/internal/core/extractor"
	"itinerary/internal/core/fold"
	"itinerary/internal/core/langhint"
)

// DateField keeps the canonical value next to the raw string it came from
type DateField struct {
	Normalized string `json:"normalized,omitempty"`
	Original   string `json:"original,omitempty"`
}

// Record is the normalized document. Carrier, POL, POD, ETD and ETA are never empty,
// nor is VesselName on single-vessel records
type Record struct {
	MultiVessel bool            `json:"multi_vessel"`
	VesselCount int             `json:"vessel_count,omitempty"`
	Locale      langhint.Locale `json:"locale"`

	Carrier        string `json:"carrier"`
	VesselName     string `json:"vessel_name,omitempty"`
	VesselOriginal string `json:"vessel_original,omitempty"`
	POL            string `json:"pol"`
	POD            string `json:"pod"`
	ETD            string `json:"etd"`
	ETA            string `json:"eta"`
	ETDOriginal    string `json:"etd_original,omitempty"`
	ETAOriginal    string `json:"eta_original,omitempty"`

	Date          DateField `json:"date"`
	DepartureDate DateField `json:"departure_date"`
	ArrivalDate   DateField `json:"arrival_date"`
	Week          *int      `json:"week,omitempty"`
	WeekOriginal  string    `json:"week_original,omitempty"`

	OriginPort      string   `json:"origin_port,omitempty"`
	DestinationPort string   `json:"destination_port,omitempty"`
	ContainerNumber string   `json:"container_number,omitempty"`
	BookingNumber   string   `json:"booking_number,omitempty"`
	VoyageNumber    string   `json:"voyage_number,omitempty"`
	Ports           []string `json:"ports,omitempty"`

	Vessels []VesselRecord `json:"vessels,omitempty"`

	Text string `json:"text,omitempty"`
}

// VesselRecord is one vessel of a multi-vessel record; required fields are never empty
type VesselRecord struct {
	Name         string    `json:"name"`
	NameOriginal string    `json:"name_original"`
	Carrier      string    `json:"carrier"`
	POL          string    `json:"pol"`
	POD          string    `json:"pod"`
	ETD          string    `json:"etd"`
	ETA          string    `json:"eta"`
	Date         DateField `json:"date"`
	Week         *int      `json:"week,omitempty"`

	VoyageNumber    string `json:"voyage_number,omitempty"`
	ContainerNumber string `json:"container_number,omitempty"`
	BookingNumber   string `json:"booking_number,omitempty"`
}

// Normalize applies the field normalizers and the sentinel defaults
func (n *Normalizer) Normalize(res extractor.Result) Record {
	etdRaw := firstValue(res.ETD, res.DepartureDate)
	etaRaw := firstValue(res.ETA, res.ArrivalDate)

	r := Record{
		MultiVessel: res.MultiVessel,
		Locale:      langhint.Detect(res.Text),
		Text:        res.Text,

		Carrier: coalesce(res.Carrier),
		POL:     coalesce(n.POL(res.POL)),
		POD:     coalesce(n.Port(res.POD)),
		ETD:     coalesce(n.Date(etdRaw)),
		ETA:     coalesce(n.Date(etaRaw)),

		ETDOriginal: etdRaw,
		ETAOriginal: etaRaw,

		Date:          n.dateField(res.Date),
		DepartureDate: n.dateField(res.DepartureDate),
		ArrivalDate:   n.dateField(res.ArrivalDate),
		Week:          n.Week(res.Week),
		WeekOriginal:  value(res.Week),

		OriginPort:      n.Port(res.OriginPort),
		DestinationPort: n.Port(res.DestinationPort),
		ContainerNumber: value(res.ContainerNumber),
		BookingNumber:   value(res.BookingNumber),
	}

	if !res.MultiVessel {
		r.VesselName = coalesce(n.Vessel(res.VesselName))
		r.VesselOriginal = coalesce(res.VesselName)
		return r
	}

	r.VesselCount = len(res.Vessels)
	r.Vessels = make([]VesselRecord, 0, len(res.Vessels))
	for _, v := range res.Vessels {
		r.Vessels = append(r.Vessels, n.vessel(v, r))
	}
	return r
}

// vessel normalizes one vessel: vessel value, else document value, else NotFound
func (n *Normalizer) vessel(v extractor.VesselFields, doc Record) VesselRecord {
	week := n.Week(v.Week)
	if week == nil {
		week = doc.Week
	}
	return VesselRecord{
		Name:         coalesce(n.Vessel(v.VesselName)),
		NameOriginal: coalesce(v.NameOriginal, v.VesselName),
		Carrier:      coalesce(v.Carrier, doc.Carrier),
		POL:          coalesce(n.POL(v.POL), doc.POL),
		POD:          coalesce(n.Port(v.POD), doc.POD),
		ETD:          coalesce(n.Date(firstValue(v.ETD, v.DepartureDate)), doc.ETD),
		ETA:          coalesce(n.Date(firstValue(v.ETA, v.ArrivalDate)), doc.ETA),
		Date:         n.dateField(v.Date),
		Week:         week,

		VoyageNumber:    value(v.VoyageNumber),
		ContainerNumber: value(v.ContainerNumber),
		BookingNumber:   value(v.BookingNumber),
	}
}

// Merge layers additional fields on top of r; an additional voyage number overrides
func (r Record) Merge(add AdditionalFields) Record {
	if len(add.Ports) > 0 {
		r.Ports = append([]string(nil), add.Ports...)
	}
	if add.VoyageNumber != "" {
		r.VoyageNumber = add.VoyageNumber
	}
	return r
}

func (n *Normalizer) dateField(raw string) DateField {
	raw = value(raw)
	if raw == "" {
		return DateField{}
	}
	return DateField{Normalized: n.Date(raw), Original: raw}
}

// coalesce returns the first usable value, else NotFound.
// Blank strings, the literal "None" and the sentinel itself are skipped
func coalesce(vals ...string) string {
	for _, v := range vals {
		if v = value(v); v != "" && v != NotFound {
			return v
		}
	}
	return NotFound
}

// firstValue returns the first non-blank value or ""
func firstValue(vals ...string) string {
	for _, v := range vals {
		if v = value(v); v != "" {
			return v
		}
	}
	return ""
}

// value trims s and maps blank or "None" to ""
func value(s string) string {
	if fold.Blank(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
