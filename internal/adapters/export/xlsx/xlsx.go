// Package xlsx renders itinerary records as spreadsheets
package xlsx

import (
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"itinerary/internal/adapters/export"
	"itinerary/internal/core/normalize"
	perr "itinerary/internal/platform/errors"
)

// ContentType is the media type of the produced workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Format registers the writer with the export pipeline
var Format = export.Format{
	Name:        "xlsx",
	Ext:         ".xlsx",
	ContentType: ContentType,
	Write:       Write,
}

const (
	headerFill = "366092"
	maxWidth   = 50
)

// Write renders r as a single-sheet workbook
func Write(w io.Writer, r normalize.Record) error {
	doc := export.Build(r)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := doc.Sheet
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: name sheet")
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: header style")
	}

	if err := writeRow(f, sheet, 1, doc.Table.Headers); err != nil {
		return err
	}
	for i, row := range doc.Table.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(doc.Table.Headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: apply header style")
	}

	if err := setWidths(f, sheet, doc); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStorage, "xlsx: write workbook")
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: cell name")
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "xlsx: set %s", cell)
		}
	}
	return nil
}

// setWidths uses 25/40 for the field table and content-sized columns (capped) otherwise
func setWidths(f *excelize.File, sheet string, doc export.Document) error {
	if !doc.MultiVessel {
		if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: width")
		}
		return perr.WrapIf(f.SetColWidth(sheet, "B", "B", 40), perr.ErrorCodeUnknown, "xlsx: width")
	}
	for col, h := range doc.Table.Headers {
		width := utf8.RuneCountInString(h)
		for _, row := range doc.Table.Rows {
			width = max(width, utf8.RuneCountInString(row[col]))
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: column name")
		}
		if err := f.SetColWidth(sheet, name, name, float64(min(width+2, maxWidth))); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "xlsx: width")
		}
	}
	return nil
}
