// Package export lays a normalized record out as a table that the xlsx and pdf
// writers render. Labels follow the record's locale
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"itinerary/internal/core/langhint"
	"itinerary/internal/core/normalize"
)

// Writer renders a record into w
type Writer func(w io.Writer, r normalize.Record) error

// Format binds a Writer to its file naming and media type
type Format struct {
	Name        string
	Ext         string
	ContentType string
	Write       Writer
}

// Table is a header row plus data rows; every row has len(Headers) cells
type Table struct {
	Headers []string
	Rows    [][]string
}

// Document is everything a writer needs to render a record
type Document struct {
	Sheet       string
	Title       string
	Table       Table
	TextHeading string
	Text        string
	MultiVessel bool
}

// Labels are the locale dependent strings of a Document
type Labels struct {
	SingleSheet string
	MultiSheet  string
	Title       string
	TitleMulti  string // takes the vessel count
	Field       string
	Value       string
	TextHeading string

	Carrier   string
	Vessel    string
	POL       string
	POD       string
	ETD       string
	ETA       string
	Date      string
	Week      string
	Voyage    string
	Container string
	Booking   string
	Ports     string
}

var labels = map[langhint.Locale]Labels{
	langhint.ES: {
		SingleSheet: "Datos Extraídos",
		MultiSheet:  "Itinerarios",
		Title:       "Itinerario de Naviera",
		TitleMulti:  "Itinerarios de Naviera (%d registros)",
		Field:       "Campo",
		Value:       "Valor",
		TextHeading: "Texto Extraído Completo",
		Carrier:     "Naviera",
		Vessel:      "Nave",
		POL:         "POL",
		POD:         "POD",
		ETD:         "ETD",
		ETA:         "ETA",
		Date:        "Fecha",
		Week:        "Semana",
		Voyage:      "Número de Viaje",
		Container:   "Número de Contenedor",
		Booking:     "Número de Booking",
		Ports:       "Puertos",
	},
	langhint.EN: {
		SingleSheet: "Extracted Data",
		MultiSheet:  "Itineraries",
		Title:       "Carrier Itinerary",
		TitleMulti:  "Carrier Itineraries (%d records)",
		Field:       "Field",
		Value:       "Value",
		TextHeading: "Full Extracted Text",
		Carrier:     "Carrier",
		Vessel:      "Vessel",
		POL:         "POL",
		POD:         "POD",
		ETD:         "ETD",
		ETA:         "ETA",
		Date:        "Date",
		Week:        "Week",
		Voyage:      "Voyage Number",
		Container:   "Container Number",
		Booking:     "Booking Number",
		Ports:       "Ports",
	},
}

// LabelsFor returns the labels of loc; unknown locales get Spanish
func LabelsFor(loc langhint.Locale) Labels {
	if l, ok := labels[loc]; ok {
		return l
	}
	return labels[langhint.ES]
}

// Build lays r out: a Field/Value table for a single vessel, one row per vessel otherwise
func Build(r normalize.Record) Document {
	l := LabelsFor(r.Locale)
	doc := Document{
		TextHeading: l.TextHeading,
		Text:        r.Text,
		MultiVessel: r.MultiVessel && len(r.Vessels) > 0,
	}
	if doc.MultiVessel {
		doc.Sheet = l.MultiSheet
		doc.Title = fmt.Sprintf(l.TitleMulti, len(r.Vessels))
		doc.Table = vesselTable(l, r)
		return doc
	}
	doc.Sheet = l.SingleSheet
	doc.Title = l.Title
	doc.Table = fieldTable(l, r)
	return doc
}

func fieldTable(l Labels, r normalize.Record) Table {
	t := Table{Headers: []string{l.Field, l.Value}}
	add := func(label, v string) {
		if v == "" {
			return
		}
		t.Rows = append(t.Rows, []string{label, v})
	}
	add(l.Carrier, r.Carrier)
	add(l.Vessel, r.VesselName)
	add(l.POL, r.POL)
	add(l.POD, r.POD)
	add(l.ETD, r.ETD)
	add(l.ETA, r.ETA)
	add(l.Date, r.Date.Normalized)
	add(l.Week, week(r.Week))
	add(l.Container, r.ContainerNumber)
	add(l.Booking, r.BookingNumber)
	add(l.Voyage, r.VoyageNumber)
	add(l.Ports, strings.Join(r.Ports, ", "))
	return t
}

func vesselTable(l Labels, r normalize.Record) Table {
	t := Table{Headers: []string{
		l.Carrier, l.Vessel, l.POL, l.POD, l.ETD, l.ETA,
		l.Date, l.Week, l.Voyage, l.Container, l.Booking,
	}}
	for _, v := range r.Vessels {
		t.Rows = append(t.Rows, []string{
			v.Carrier, v.Name, v.POL, v.POD, v.ETD, v.ETA,
			v.Date.Normalized, week(v.Week), v.VoyageNumber, v.ContainerNumber, v.BookingNumber,
		})
	}
	return t
}

func week(w *int) string {
	if w == nil {
		return ""
	}
	return strconv.Itoa(*w)
}
