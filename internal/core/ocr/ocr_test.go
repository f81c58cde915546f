package ocr

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "itinerary/internal/platform/errors"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t800\t600\t-1\t\n" +
	"4\t1\t1\t1\t1\t0\t10\t10\t300\t20\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t10\t10\t80\t20\t96.5\tNAVIERA\n" +
	"5\t1\t1\t1\t1\t2\t95\t10\t80\t20\t93.5\tMAERSK\n" +
	"5\t1\t1\t1\t2\t1\t10\t40\t60\t20\t90\tNAVE:\n" +
	"5\t1\t1\t1\t2\t2\t75\t40\t80\t20\t80\tPACIFIC\n" +
	"5\t1\t1\t1\t2\t3\t160\t40\t60\t20\t70\tSTAR\n" +
	"5\t1\t1\t1\t2\t4\t230\t40\t10\t20\t-1\t \n" +
	"5\t1\t2\t1\t1\t1\t10\t90\t40\t20\t12\t~%\n"

type stubRunner struct {
	name string
	args []string
	out  []byte
	errb []byte
	err  error
	run  func(ctx context.Context) error
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name, s.args = name, args
	if s.run != nil {
		return nil, nil, s.run(ctx)
	}
	return s.out, s.errb, s.err
}

func tempImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, h/2, color.Black)
	}
	path := filepath.Join(t.TempDir(), "itinerary.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.png", "scan.JPG", "b.jpeg", "x.gif", "y.BMP", "z.tiff"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"a.pdf", "noext", "tiff", "a.png.exe", ""} {
		assert.False(t, Allowed(name), name)
	}
}

func TestJoinFragments(t *testing.T) {
	frags := []Fragment{
		{Text: "NAVIERA MAERSK", Confidence: 0.95},
		{Text: "~%", Confidence: 0.12},
		{Text: "  ", Confidence: 0.99},
		{Text: " ETD: 05/03/2024 ", Confidence: 0.3},
	}
	assert.Equal(t, "NAVIERA MAERSK\nETD: 05/03/2024", JoinFragments(frags, DefaultThreshold))
	assert.Equal(t, "NAVIERA MAERSK", JoinFragments(frags, 0.5))
	assert.Equal(t, "", JoinFragments(nil, DefaultThreshold))
}

func TestParseTSV(t *testing.T) {
	frags := parseTSV([]byte(sampleTSV))
	require.Len(t, frags, 3)

	assert.Equal(t, "NAVIERA MAERSK", frags[0].Text)
	assert.InDelta(t, 0.95, frags[0].Confidence, 1e-9)
	assert.Equal(t, "NAVE: PACIFIC STAR", frags[1].Text)
	assert.InDelta(t, 0.8, frags[1].Confidence, 1e-9)
	assert.Equal(t, "~%", frags[2].Text)
	assert.InDelta(t, 0.12, frags[2].Confidence, 1e-9)

	assert.Equal(t, "NAVIERA MAERSK\nNAVE: PACIFIC STAR", JoinFragments(frags, DefaultThreshold))
	assert.Empty(t, parseTSV(nil))
	assert.Empty(t, parseTSV([]byte("garbage\nmore garbage\n")))
}

func TestTesseract_Recognize(t *testing.T) {
	path := tempImage(t, 40, 20)
	r := &stubRunner{out: []byte(sampleTSV)}
	tess := NewTesseract(WithRunner(r), WithBinary("/opt/tess"), WithLanguages("spa"))

	frags, err := tess.Recognize(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, frags, 3)
	assert.Equal(t, "/opt/tess", r.name)
	assert.Equal(t, []string{path, "stdout", "-l", "spa", "tsv"}, r.args)
}

func TestTesseract_Errors(t *testing.T) {
	path := tempImage(t, 40, 20)

	t.Run("missing file", func(t *testing.T) {
		tess := NewTesseract(WithRunner(&stubRunner{}))
		_, err := tess.Recognize(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
		assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
	})

	t.Run("directory", func(t *testing.T) {
		tess := NewTesseract(WithRunner(&stubRunner{}))
		_, err := tess.Recognize(context.Background(), t.TempDir())
		assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))
	})

	t.Run("engine rejects image", func(t *testing.T) {
		r := &stubRunner{err: &exec.ExitError{}, errb: []byte("Error in pixReadStream: Unknown format")}
		_, err := NewTesseract(WithRunner(r)).Recognize(context.Background(), path)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeUnprocessable))
		e, ok := perr.As(err)
		require.True(t, ok)
		assert.Equal(t, "Error in pixReadStream: Unknown format", e.ToWire().Message)
	})

	t.Run("engine missing", func(t *testing.T) {
		r := &stubRunner{err: fmt.Errorf("exec: %w", exec.ErrNotFound)}
		_, err := NewTesseract(WithRunner(r)).Recognize(context.Background(), path)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
		assert.True(t, perr.Retryable(err))
	})

	t.Run("timeout", func(t *testing.T) {
		r := &stubRunner{run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}}
		_, err := NewTesseract(WithRunner(r), WithTimeout(10*time.Millisecond)).Recognize(context.Background(), path)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
	})
}

func TestTesseract_PreprocessFeedsRunner(t *testing.T) {
	path := tempImage(t, 40, 20)
	tmp := t.TempDir()
	r := &stubRunner{run: func(context.Context) error { return nil }}
	tess := NewTesseract(WithRunner(r), WithPreprocess(true), WithTempDir(tmp))

	_, err := tess.Recognize(context.Background(), path)
	require.NoError(t, err)
	require.NotEmpty(t, r.args)
	seen := r.args[0]
	assert.Equal(t, tmp, filepath.Dir(seen))
	_, statErr := os.Stat(seen)
	assert.True(t, os.IsNotExist(statErr), "preprocessed file is removed after recognition")
}

func TestPreprocess(t *testing.T) {
	t.Run("fits large images", func(t *testing.T) {
		src := tempImage(t, 2600, 100)
		out, cleanup, err := Preprocess(src, t.TempDir())
		require.NoError(t, err)
		defer cleanup()

		img, err := imaging.Open(out)
		require.NoError(t, err)
		assert.Equal(t, MaxSide, img.Bounds().Dx())
		assert.Equal(t, ".png", filepath.Ext(out))
	})

	t.Run("keeps small images", func(t *testing.T) {
		src := tempImage(t, 120, 60)
		out, cleanup, err := Preprocess(src, t.TempDir())
		require.NoError(t, err)
		img, err := imaging.Open(out)
		require.NoError(t, err)
		assert.Equal(t, 120, img.Bounds().Dx())
		cleanup()
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("corrupt input", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.png")
		require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o600))
		_, cleanup, err := Preprocess(bad, t.TempDir())
		cleanup()
		assert.True(t, perr.IsCode(err, perr.ErrorCodeUnprocessable))
	})
}
