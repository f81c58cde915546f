package ocr

import (
	"strconv"
	"strings"
)

// tesseract TSV columns
const (
	colLevel = iota
	colPage
	colBlock
	colPar
	colLine
	colWord
	colLeft
	colTop
	colWidth
	colHeight
	colConf
	colText
	tsvCols
)

const wordLevel = "5"

type lineKey struct{ page, block, par, line string }

type lineAcc struct {
	words []string
	sum   float64
	n     int
}

// parseTSV groups word rows into lines in the order they first appear.
// A line's confidence is the mean of its word confidences scaled to 0..1
func parseTSV(out []byte) []Fragment {
	var (
		order []lineKey
		lines = make(map[lineKey]*lineAcc)
	)
	for i, row := range strings.Split(string(out), "\n") {
		if i == 0 || row == "" {
			continue
		}
		cols := strings.Split(strings.TrimRight(row, "\r"), "\t")
		if len(cols) < tsvCols || cols[colLevel] != wordLevel {
			continue
		}
		text := strings.TrimSpace(cols[colText])
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(cols[colConf], 64)
		if err != nil || conf < 0 {
			continue
		}

		k := lineKey{cols[colPage], cols[colBlock], cols[colPar], cols[colLine]}
		acc, ok := lines[k]
		if !ok {
			acc = &lineAcc{}
			lines[k] = acc
			order = append(order, k)
		}
		acc.words = append(acc.words, text)
		acc.sum += conf
		acc.n++
	}

	frags := make([]Fragment, 0, len(order))
	for _, k := range order {
		acc := lines[k]
		frags = append(frags, Fragment{
			Text:       strings.Join(acc.words, " "),
			Confidence: acc.sum / float64(acc.n) / 100,
		})
	}
	return frags
}
