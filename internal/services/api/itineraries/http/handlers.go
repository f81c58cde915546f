// Package http provides http transport for itinerary extraction
package http

import (
	stdhttp "net/http"
	"time"

	"itinerary/internal/core/ocr"
	"itinerary/internal/modkit/httpkit"
	"itinerary/internal/platform/net/http/bind"
	"itinerary/internal/platform/net/middleware"
	"itinerary/internal/services/api/itineraries/domain"
	svc "itinerary/internal/services/api/itineraries/service"
)

// Limits bounds request bodies and OCR concurrency
type Limits struct {
	UploadBytes int64
	TextBytes   int64
	// OCRWorkers caps concurrent uploads, 0 means unlimited
	OCRWorkers int
	// OCRWait is how long a queued upload waits for a worker before 429
	OCRWait time.Duration
}

// queuePerWorker sizes the upload backlog relative to OCRWorkers
const queuePerWorker = 4

// Register mounts itinerary endpoints on the given router
func Register(r httpkit.Router, s svc.Service, lim Limits) {
	h := &handlers{svc: s, lim: lim}

	// scan upload through OCR
	r.Group(func(g httpkit.Router) {
		g.Use(middleware.AllowContentType("multipart/form-data"))
		if lim.OCRWorkers > 0 {
			wait := lim.OCRWait
			if wait <= 0 {
				wait = time.Minute
			}
			g.Use(middleware.ThrottleBacklog(lim.OCRWorkers, lim.OCRWorkers*queuePerWorker, wait))
		}
		httpkit.Post(g, "/upload", h.upload)
	})

	// recognized text, no OCR
	r.Group(func(g httpkit.Router) {
		g.Use(middleware.AllowContentType("application/json"))
		httpkit.PostJSON[domain.TextInput](g, "/text", lim.TextBytes, h.text)
	})

	// rendered exports
	httpkit.GetFile(r, "/artifacts/{id}", h.artifact)
}

type handlers struct {
	svc svc.Service
	lim Limits
}

// swagger:route POST /itineraries/upload Itineraries itinerariesUpload
// @Summary Extract an itinerary from a scanned image
// @Tags Itineraries
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "png, jpg, jpeg, gif, bmp or tiff"
// @Success 200 {object} domain.Result "ok"
// @Failure 413 {object} httpkit.Envelope "upload too large"
// @Failure 415 {object} httpkit.Envelope "file type not allowed"
// @Failure 422 {object} httpkit.Envelope "unreadable image"
// @Router /itineraries/upload [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	up, err := bind.ParseFile(nil, r, bind.FileOptions{
		Field:    "file",
		MaxBytes: h.lim.UploadBytes,
		Allowed:  ocr.Extensions,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = up.Close() }()
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	return h.svc.FromImage(r.Context(), domain.ImageInput{Name: up.Name, Body: up.File})
}

// swagger:route POST /itineraries/text Itineraries itinerariesText
// @Summary Extract an itinerary from recognized text
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param payload body domain.TextInput true "Recognized text"
// @Success 200 {object} domain.Result "ok"
// @Failure 400 {object} httpkit.Envelope "malformed or invalid payload"
// @Failure 413 {object} httpkit.Envelope "payload too large"
// @Failure 415 {object} httpkit.Envelope "not application/json"
// @Router /itineraries/text [post]
func (h *handlers) text(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.FromText(r.Context(), in)
}

// swagger:route GET /itineraries/artifacts/{id} Itineraries itinerariesArtifact
// @Summary Download a rendered spreadsheet or document
// @Tags Itineraries
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param id path string true "Artifact id"
// @Success 200 {file} file "artifact"
// @Failure 404 {object} httpkit.Envelope "unknown artifact"
// @Router /itineraries/artifacts/{id} [get]
func (h *handlers) artifact(r *stdhttp.Request) (httpkit.File, error) {
	a, rc, err := h.svc.Artifact(r.Context(), httpkit.Param(r, "id"))
	if err != nil {
		return httpkit.File{}, err
	}
	return httpkit.File{Name: a.Name, ContentType: a.ContentType, Size: a.Size, Body: rc}, nil
}
