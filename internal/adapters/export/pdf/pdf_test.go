package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/adapters/export"
	"itinerary/internal/core/langhint"
	"itinerary/internal/core/normalize"
)

func render(t *testing.T, r normalize.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))
	return buf.Bytes()
}

func TestWrite_Single(t *testing.T) {
	out := render(t, normalize.Record{
		Locale:     langhint.ES,
		Carrier:    "MAERSK",
		VesselName: "Pacific Star",
		POL:        "Valparaíso",
		POD:        "Callao",
		ETD:        "2024-03-05",
		ETA:        normalize.NotFound,
		Text:       "NAVIERA MAERSK\nNAVE: PACIFIC STAR\n" + strings.Repeat("linea de relleno\n", 200),
	})
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out[len(out)-16:]), "%%EOF")
}

func TestWrite_MultiVesselWithoutText(t *testing.T) {
	vessels := make([]normalize.VesselRecord, 0, 40)
	for range 40 {
		vessels = append(vessels, normalize.VesselRecord{
			Name: "Ever Given", Carrier: "EVERGREEN", POL: "San Antonio", POD: "Buenos Aires",
			ETD: "2024-03-12", ETA: normalize.NotFound, BookingNumber: strings.Repeat("BK", 30),
		})
	}
	out := render(t, normalize.Record{Locale: langhint.EN, MultiVessel: true, VesselCount: len(vessels), Vessels: vessels})
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestColumnWidths(t *testing.T) {
	single := export.Document{Table: export.Table{Headers: []string{"Campo", "Valor"}}}
	assert.Equal(t, []float64{60, 120}, columnWidths(single, 180))

	multi := export.Document{MultiVessel: true, Table: export.Table{Headers: make([]string, 4)}}
	assert.Equal(t, []float64{25, 25, 25, 25}, columnWidths(multi, 100))
}

func TestClip(t *testing.T) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetFont(font, "", 10)

	assert.Equal(t, "POL", clip(p, "POL", 40))

	long := strings.Repeat("W", 80)
	got := clip(p, long, 30)
	require.True(t, strings.HasSuffix(got, "..."))
	assert.Less(t, len(got), len(long))
	assert.LessOrEqual(t, p.GetStringWidth(got), 30-2*p.GetCellMargin())
}
