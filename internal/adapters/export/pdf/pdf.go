// Package pdf renders itinerary records as PDF documents
package pdf

import (
	"io"

	"github.com/go-pdf/fpdf"

	"itinerary/internal/adapters/export"
	"itinerary/internal/core/normalize"
	perr "itinerary/internal/platform/errors"
)

// ContentType is the media type of the produced document
const ContentType = "application/pdf"

// Format registers the writer with the export pipeline
var Format = export.Format{
	Name:        "pdf",
	Ext:         ".pdf",
	ContentType: ContentType,
	Write:       Write,
}

const (
	font      = "Helvetica"
	rowHeight = 7.0
	margin    = 10.0
)

// header color #366092
var accent = [3]int{0x36, 0x60, 0x92}

// Write renders the title, the field table (one row per vessel when there are
// several) and a page with the full recognized text
func Write(w io.Writer, r normalize.Record) error {
	doc := export.Build(r)

	orientation := "P"
	if doc.MultiVessel {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("itinerary", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(font, "B", 18)
	pdf.SetTextColor(accent[0], accent[1], accent[2])
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pageW, _ := pdf.GetPageSize()
	widths := columnWidths(doc, pageW-2*margin)
	fontSize := 10.0
	if doc.MultiVessel {
		fontSize = 7
	}
	table(pdf, tr, doc.Table, widths, fontSize)

	if doc.Text != "" {
		pdf.AddPage()
		pdf.SetFont(font, "B", 12)
		pdf.SetTextColor(accent[0], accent[1], accent[2])
		pdf.CellFormat(0, 8, tr(doc.TextHeading), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont(font, "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 4.5, tr(doc.Text), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStorage, "pdf: write document")
	}
	return nil
}

// columnWidths splits usable into a 1:2 field/value pair or equal vessel columns
func columnWidths(doc export.Document, usable float64) []float64 {
	n := len(doc.Table.Headers)
	widths := make([]float64, n)
	if !doc.MultiVessel && n == 2 {
		widths[0], widths[1] = usable/3, usable*2/3
		return widths
	}
	for i := range widths {
		widths[i] = usable / float64(n)
	}
	return widths
}

func table(pdf *fpdf.Fpdf, tr func(string) string, t export.Table, widths []float64, size float64) {
	pdf.SetFont(font, "B", size+1)
	pdf.SetFillColor(accent[0], accent[1], accent[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	for i, h := range t.Headers {
		pdf.CellFormat(widths[i], rowHeight+1, clip(pdf, tr(h), widths[i]), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", size)
	pdf.SetTextColor(0, 0, 0)
	for n, row := range t.Rows {
		if n%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(230, 230, 230)
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], rowHeight, clip(pdf, tr(v), widths[i]), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// clip shortens s with an ellipsis until it fits a cell of width w.
// s is already in the single-byte font encoding, so cutting bytes is safe
func clip(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > limit {
		s = s[:len(s)-1]
	}
	return s + "..."
}
