package module

import (
	"time"

	"itinerary/internal/platform/config"
	"itinerary/internal/services/api/itineraries/domain"
)

// Options controls OCR, extraction and request limits
type Options struct {
	// OCR engine
	OCRBin        string
	OCRLang       string
	OCRThreshold  float64
	OCRPreprocess bool
	OCRTimeout    time.Duration
	OCRWorkers    int

	// Extraction
	LooseDedup bool

	// Requests
	UploadMaxBytes int64
	TextMaxBytes   int64
	TempDir        string

	// APIBase is the versioned mount point used to build artifact links
	APIBase string
}

// FromConfig reads OCR_*, EXTRACT_* and UPLOAD_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	oc := cfg.Prefix("OCR_")
	ec := cfg.Prefix("EXTRACT_")
	uc := cfg.Prefix("UPLOAD_")
	return Options{
		OCRBin:         oc.MayString("BIN", "tesseract"),
		OCRLang:        oc.MayString("LANG", "spa+eng"),
		OCRThreshold:   oc.MayUnit("THRESHOLD", 0.3),
		OCRPreprocess:  oc.MayBool("PREPROCESS", false),
		OCRTimeout:     oc.MayDuration("TIMEOUT", 60*time.Second),
		OCRWorkers:     oc.MayInt("WORKERS", 4),
		LooseDedup:     ec.MayBool("LOOSE_DEDUP", false),
		UploadMaxBytes: uc.MayBytes("MAX_BYTES", 16<<20),
		TextMaxBytes:   int64(2 * domain.MaxTextBytes),
		TempDir:        uc.MayString("TMP_DIR", ""),
		APIBase:        "/api/v1",
	}
}
