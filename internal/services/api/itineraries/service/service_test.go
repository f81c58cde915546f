package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/adapters/export"
	"itinerary/internal/core/normalize"
	"itinerary/internal/core/ocr"
	"itinerary/internal/core/pipeline"
	"itinerary/internal/core/rulepack"
	perr "itinerary/internal/platform/errors"
	pnet "itinerary/internal/platform/net"
	"itinerary/internal/platform/store"
	"itinerary/internal/services/api/itineraries/domain"
)

const itinerary = "NAVIERA MAERSK\nNAVE: PACIFIC STAR\nPOL: San Antonio\nPOD: Callao\nETD: 05/03/2024\nETA: 20/03/2024"

var carrierFormat = export.Format{
	Name:        "txt",
	Ext:         ".txt",
	ContentType: "text/plain",
	Write: func(w io.Writer, r normalize.Record) error {
		_, err := fmt.Fprint(w, r.Carrier)
		return err
	},
}

type stubRecognizer struct {
	lines []string
	err   error
	seen  string
}

func (s *stubRecognizer) Recognize(_ context.Context, path string) ([]ocr.Fragment, error) {
	s.seen = path
	if s.err != nil {
		return nil, s.err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	out := make([]ocr.Fragment, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, ocr.Fragment{Text: l, Confidence: 0.95})
	}
	return out, nil
}

func newSvc(t *testing.T, rec ocr.Recognizer, withStore bool) *Svc {
	t.Helper()
	p, err := rulepack.Load()
	require.NoError(t, err)

	var blobs store.Blobs
	if withStore {
		fs, err := store.NewFS(t.TempDir(), nil)
		require.NoError(t, err)
		blobs = fs
	}
	return New(pipeline.New(p, pipeline.WithRecognizer(rec)), blobs, Config{
		TempDir:      t.TempDir(),
		ArtifactBase: "/api/v1/itineraries/artifacts/",
		Formats:      []export.Format{carrierFormat},
	})
}

func TestNew_NilPipelinePanics(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil, Config{}) })
}

func TestFromText_PublishesArtifacts(t *testing.T) {
	svc := newSvc(t, nil, true)
	ctx := pnet.WithRequest(context.Background(), "req-1", "job-1")

	res, err := svc.FromText(ctx, domain.TextInput{Text: itinerary, Name: "booking 301W.txt"})
	require.NoError(t, err)

	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, "text", res.Source)
	assert.Equal(t, "MAERSK", res.Record.Carrier)
	require.Contains(t, res.Artifacts, "txt")

	ref := res.Artifacts["txt"]
	assert.Equal(t, "booking_301W_datos.txt", ref.Name)
	assert.Equal(t, "/api/v1/itineraries/artifacts/"+ref.ID, ref.Href)
	assert.EqualValues(t, len("MAERSK"), ref.Size)

	a, rc, err := svc.Artifact(ctx, ref.ID)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "MAERSK", string(body))
	assert.Equal(t, "req-1", a.RequestID)
}

func TestFromText_Blank(t *testing.T) {
	_, err := newSvc(t, nil, true).FromText(context.Background(), domain.TextInput{Text: "  \n "})
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
}

func TestFromText_WithoutStore(t *testing.T) {
	res, err := newSvc(t, nil, false).FromText(context.Background(), domain.TextInput{Text: itinerary})
	require.NoError(t, err)
	assert.Empty(t, res.Artifacts)
	assert.Equal(t, "Pacific Star", res.Record.VesselName)
}

func TestFromImage(t *testing.T) {
	rec := &stubRecognizer{lines: strings.Split(itinerary, "\n")}
	svc := newSvc(t, rec, true)

	res, err := svc.FromImage(context.Background(), domain.ImageInput{Name: "Scan.JPG", Body: strings.NewReader("jpeg bytes")})
	require.NoError(t, err)

	assert.Equal(t, "image", res.Source)
	assert.Equal(t, "San Antonio", res.Record.POL)
	assert.Equal(t, "Scan_datos.txt", res.Artifacts["txt"].Name)
	assert.True(t, strings.HasSuffix(rec.seen, ".jpg"), rec.seen)

	_, err = os.Stat(rec.seen)
	assert.True(t, errors.Is(err, os.ErrNotExist), "spooled upload is removed")
}

func TestFromImage_Errors(t *testing.T) {
	t.Run("extension", func(t *testing.T) {
		_, err := newSvc(t, &stubRecognizer{}, true).FromImage(context.Background(), domain.ImageInput{Name: "notes.pdf", Body: strings.NewReader("x")})
		assert.Equal(t, perr.ErrorCodeUnsupportedMedia, perr.CodeOf(err))
	})
	t.Run("nil body", func(t *testing.T) {
		_, err := newSvc(t, &stubRecognizer{}, true).FromImage(context.Background(), domain.ImageInput{Name: "a.png"})
		assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
	})
	t.Run("ocr failure", func(t *testing.T) {
		rec := &stubRecognizer{err: perr.Unprocessablef("corrupt image")}
		_, err := newSvc(t, rec, true).FromImage(context.Background(), domain.ImageInput{Name: "a.png", Body: strings.NewReader("x")})
		assert.Equal(t, perr.ErrorCodeUnprocessable, perr.CodeOf(err))
	})
}

func TestArtifact_NotFound(t *testing.T) {
	_, _, err := newSvc(t, nil, true).Artifact(context.Background(), "missing")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	_, _, err = newSvc(t, nil, false).Artifact(context.Background(), "missing")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"scan.png":           "scan",
		"booking 301W.txt":   "booking_301W",
		"../../etc/passwd":   "passwd",
		"":                   DefaultStem,
		"ñandú.jpg":          "and",
		"itinerario.v2.tiff": "itinerario_v2",
		"   .png":            DefaultStem,
	}
	for in, want := range tests {
		assert.Equal(t, want, Stem(in), in)
	}
}
