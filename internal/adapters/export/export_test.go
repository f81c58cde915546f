package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/core/langhint"
	"itinerary/internal/core/normalize"
)

func intp(v int) *int { return &v }

func singleRecord() normalize.Record {
	return normalize.Record{
		Locale:       langhint.ES,
		Carrier:      "MAERSK",
		VesselName:   "Pacific Star",
		POL:          "San Antonio",
		POD:          "Callao",
		ETD:          "2024-03-05",
		ETA:          normalize.NotFound,
		Date:         normalize.DateField{Normalized: "2024-03-05", Original: "05/03/2024"},
		Week:         intp(10),
		VoyageNumber: "301W",
		Ports:        []string{"San Antonio", "Callao"},
		Text:         "NAVIERA MAERSK",
	}
}

func TestBuild_Single(t *testing.T) {
	doc := Build(singleRecord())

	assert.False(t, doc.MultiVessel)
	assert.Equal(t, "Datos Extraídos", doc.Sheet)
	assert.Equal(t, "Itinerario de Naviera", doc.Title)
	assert.Equal(t, "Texto Extraído Completo", doc.TextHeading)
	assert.Equal(t, "NAVIERA MAERSK", doc.Text)
	assert.Equal(t, []string{"Campo", "Valor"}, doc.Table.Headers)
	assert.Equal(t, [][]string{
		{"Naviera", "MAERSK"},
		{"Nave", "Pacific Star"},
		{"POL", "San Antonio"},
		{"POD", "Callao"},
		{"ETD", "2024-03-05"},
		{"ETA", normalize.NotFound},
		{"Fecha", "2024-03-05"},
		{"Semana", "10"},
		{"Número de Viaje", "301W"},
		{"Puertos", "San Antonio, Callao"},
	}, doc.Table.Rows, "empty optional fields are left out")
}

func TestBuild_EnglishLabels(t *testing.T) {
	r := singleRecord()
	r.Locale = langhint.EN
	doc := Build(r)

	assert.Equal(t, "Extracted Data", doc.Sheet)
	assert.Equal(t, "Carrier Itinerary", doc.Title)
	assert.Equal(t, []string{"Field", "Value"}, doc.Table.Headers)
	assert.Equal(t, []string{"Carrier", "MAERSK"}, doc.Table.Rows[0])
}

func TestBuild_MultiVessel(t *testing.T) {
	r := normalize.Record{
		Locale:      langhint.ES,
		MultiVessel: true,
		VesselCount: 2,
		Vessels: []normalize.VesselRecord{
			{Name: "Msc Aurora", Carrier: "MSC", POL: "San Antonio", POD: "Callao", ETD: "2024-03-10", ETA: "2024-03-20", Week: intp(11), VoyageNumber: "301W"},
			{Name: "Ever Given", Carrier: "MSC", POL: "Valparaíso", POD: normalize.NotFound, ETD: "2024-03-12", ETA: normalize.NotFound},
		},
	}
	doc := Build(r)

	require.True(t, doc.MultiVessel)
	assert.Equal(t, "Itinerarios", doc.Sheet)
	assert.Equal(t, "Itinerarios de Naviera (2 registros)", doc.Title)
	assert.Len(t, doc.Table.Headers, 11)
	require.Len(t, doc.Table.Rows, 2)
	for _, row := range doc.Table.Rows {
		assert.Len(t, row, len(doc.Table.Headers))
	}
	assert.Equal(t, []string{"MSC", "Msc Aurora", "San Antonio", "Callao", "2024-03-10", "2024-03-20", "", "11", "301W", "", ""}, doc.Table.Rows[0])
	assert.Equal(t, normalize.NotFound, doc.Table.Rows[1][3])
}

func TestBuild_MultiWithoutVesselsFallsBackToFields(t *testing.T) {
	r := singleRecord()
	r.MultiVessel = true
	doc := Build(r)
	assert.False(t, doc.MultiVessel)
	assert.Equal(t, []string{"Campo", "Valor"}, doc.Table.Headers)
}

func TestLabelsFor_Unknown(t *testing.T) {
	assert.Equal(t, LabelsFor(langhint.ES), LabelsFor("fr"))
}
