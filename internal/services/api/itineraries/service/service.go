// Package service contains the itinerary extraction workflow
package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"itinerary/internal/adapters/export"
	"itinerary/internal/core/normalize"
	"itinerary/internal/core/ocr"
	"itinerary/internal/core/pipeline"
	perr "itinerary/internal/platform/errors"
	"itinerary/internal/platform/logger"
	pnet "itinerary/internal/platform/net"
	"itinerary/internal/platform/store"
	"itinerary/internal/services/api/itineraries/domain"
)

// DefaultStem names artifacts when the caller gives no name
const DefaultStem = "itinerario"

// Service defines the itinerary service contract
type Service interface {
	domain.ServicePort
}

// Config for the itinerary service
type Config struct {
	// TempDir receives uploads while OCR runs; empty means os.TempDir
	TempDir string
	// ArtifactBase prefixes artifact ids to form download links
	ArtifactBase string
	// Formats are rendered and stored for every record, in order
	Formats []export.Format
}

// Svc implements the itinerary service
type Svc struct {
	Pipe  *pipeline.Pipeline
	Blobs store.Blobs
	Cfg   Config
}

// New constructs an itinerary service; blobs may be nil to skip artifacts
func New(pipe *pipeline.Pipeline, blobs store.Blobs, cfg Config) *Svc {
	if pipe == nil {
		panic("itineraries.Service requires a non nil pipeline")
	}
	return &Svc{Pipe: pipe, Blobs: blobs, Cfg: cfg}
}

// FromImage spools the upload to disk, recognizes it and publishes the record
func (s *Svc) FromImage(ctx context.Context, in domain.ImageInput) (domain.Result, error) {
	if !ocr.Allowed(in.Name) {
		return domain.Result{}, perr.UnsupportedMediaf("file type not allowed, use one of %s", strings.Join(ocr.Extensions, ", "))
	}
	if in.Body == nil {
		return domain.Result{}, perr.InvalidArgf("empty upload")
	}

	path, cleanup, err := s.spool(in)
	if err != nil {
		return domain.Result{}, err
	}
	defer cleanup()

	start := time.Now()
	rec, err := s.Pipe.FromImage(ctx, path)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("name", in.Name).Msg("itinerary: ocr failed")
		return domain.Result{}, err
	}
	logger.C(ctx).Info().
		Str("name", in.Name).
		Bool("multi_vessel", rec.MultiVessel).
		Dur("elapsed", time.Since(start)).
		Msg("itinerary: image extracted")

	return s.publish(ctx, Stem(in.Name), "image", rec)
}

// FromText runs the pipeline over text submitted directly
func (s *Svc) FromText(ctx context.Context, in domain.TextInput) (domain.Result, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.Result{}, perr.WithField(perr.InvalidArgf("text is empty"), "text")
	}
	rec := s.Pipe.FromText(in.Text)
	logger.C(ctx).Info().
		Int("chars", len(in.Text)).
		Bool("multi_vessel", rec.MultiVessel).
		Msg("itinerary: text extracted")
	return s.publish(ctx, Stem(in.Name), "text", rec)
}

// Artifact opens a stored export
func (s *Svc) Artifact(ctx context.Context, id string) (store.Artifact, io.ReadCloser, error) {
	if s.Blobs == nil {
		return store.Artifact{}, nil, perr.NotFoundf("artifact %q not found", id)
	}
	return s.Blobs.Get(ctx, id)
}

// publish renders every configured format and stores it
func (s *Svc) publish(ctx context.Context, stem, source string, rec normalize.Record) (domain.Result, error) {
	res := domain.Result{
		JobID:     pnet.JobID(ctx),
		Source:    source,
		Record:    rec,
		Artifacts: map[string]domain.ArtifactRef{},
	}
	if s.Blobs == nil {
		return res, nil
	}

	for _, f := range s.Cfg.Formats {
		var buf bytes.Buffer
		if err := f.Write(&buf, rec); err != nil {
			return domain.Result{}, perr.WithOp(err, "render "+f.Name)
		}
		a, err := s.Blobs.Put(ctx, store.PutInput{
			Name:        f.FileName(stem),
			ContentType: f.ContentType,
			RequestID:   pnet.RequestID(ctx),
		}, &buf)
		if err != nil {
			return domain.Result{}, perr.WithOp(err, "store "+f.Name)
		}
		res.Artifacts[f.Name] = domain.ArtifactRef{
			ID:          a.ID,
			Name:        a.Name,
			ContentType: a.ContentType,
			Size:        a.Size,
			Href:        s.Cfg.ArtifactBase + a.ID,
		}
	}
	return res, nil
}

// spool copies the upload to a temp file keeping its extension for the OCR engine
func (s *Svc) spool(in domain.ImageInput) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(in.Name))
	tmp, err := os.CreateTemp(s.Cfg.TempDir, "upload-*"+ext)
	if err != nil {
		return "", nil, perr.Wrap(err, perr.ErrorCodeStorage, "spool upload")
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	if _, err := io.Copy(tmp, in.Body); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, perr.Wrap(err, perr.ErrorCodeStorage, "spool upload")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, perr.Wrap(err, perr.ErrorCodeStorage, "spool upload")
	}
	return tmp.Name(), cleanup, nil
}

// Stem turns a client file name into a safe artifact prefix
func Stem(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteByte('_')
		}
	}
	if s := strings.Trim(b.String(), "_"); s != "" {
		return s
	}
	return DefaultStem
}
