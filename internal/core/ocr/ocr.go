// Package ocr turns an itinerary image into recognized text fragments.
//
// Recognition runs the tesseract CLI behind a stubbable Runner; fragments below a
// confidence threshold are dropped and the rest are joined in reading order
package ocr

import (
	"context"
	"path/filepath"
	"strings"
)

// DefaultThreshold is the minimum fragment confidence kept by JoinFragments
const DefaultThreshold = 0.3

// Fragment is one recognized line with its confidence in 0..1
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognizer reads the image at path and returns its fragments in reading order
type Recognizer interface {
	Recognize(ctx context.Context, path string) ([]Fragment, error)
}

// Extensions are the accepted image types, lower case without the dot
var Extensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "tiff"}

// Allowed reports whether name carries one of Extensions, case-insensitively
func Allowed(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// JoinFragments keeps fragments with Confidence >= threshold and joins their text
// with newlines in the order given. Blank fragments are skipped
func JoinFragments(frags []Fragment, threshold float64) string {
	var b strings.Builder
	for _, f := range frags {
		if f.Confidence < threshold {
			continue
		}
		t := strings.TrimSpace(f.Text)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t)
	}
	return b.String()
}
