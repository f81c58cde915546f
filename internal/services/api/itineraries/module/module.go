// Package module wires itinerary extraction into the API using modkit
package module

import (
	"itinerary/internal/adapters/export"
	"itinerary/internal/adapters/export/pdf"
	"itinerary/internal/adapters/export/xlsx"
	"itinerary/internal/core/ocr"
	"itinerary/internal/core/pipeline"
	"itinerary/internal/core/rulepack"
	"itinerary/internal/modkit"
	"itinerary/internal/modkit/httpkit"
	"itinerary/internal/platform/logger"
	ithttp "itinerary/internal/services/api/itineraries/http"
	itsvc "itinerary/internal/services/api/itineraries/service"
)

// Module serves extraction from scans and text plus artifact downloads
type Module struct {
	modkit.Base
	svc itsvc.Service
	lim ithttp.Limits
}

// New constructs the itineraries module over a compiled rule pack.
// rec may be nil to use tesseract as configured in o
func New(deps modkit.Deps, pack *rulepack.Pack, rec ocr.Recognizer, o Options, opts ...modkit.Option) *Module {
	base := modkit.NewBase("itineraries", "/itineraries", opts...)

	log := logger.Named(base.Name())
	if rec == nil {
		rec = ocr.NewTesseract(
			ocr.WithBinary(o.OCRBin),
			ocr.WithLanguages(o.OCRLang),
			ocr.WithTimeout(o.OCRTimeout),
			ocr.WithPreprocess(o.OCRPreprocess),
			ocr.WithTempDir(o.TempDir),
			ocr.WithLogger(log),
		)
	}
	pipe := pipeline.New(pack,
		pipeline.WithRecognizer(rec),
		pipeline.WithThreshold(o.OCRThreshold),
		pipeline.WithLooseDedup(o.LooseDedup),
		pipeline.WithLogger(log),
	)
	return &Module{
		Base: base,
		svc: itsvc.New(pipe, deps.Artifacts, itsvc.Config{
			TempDir:      o.TempDir,
			ArtifactBase: o.APIBase + base.Prefix() + "/artifacts/",
			Formats:      []export.Format{xlsx.Format, pdf.Format},
		}),
		lim: ithttp.Limits{
			UploadBytes: o.UploadMaxBytes,
			TextBytes:   o.TextMaxBytes,
			OCRWorkers:  o.OCRWorkers,
			OCRWait:     o.OCRTimeout,
		},
	}
}

// MountRoutes mounts upload, text and artifact routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(sub httpkit.Router) { ithttp.Register(sub, m.svc, m.lim) })
}

// Ports exposes the extraction service to other modules
func (m *Module) Ports() any { return Ports{Extractor: m.svc} }
