package ocr

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	perr "itinerary/internal/platform/errors"
)

// Tesseract recognizes images with the tesseract CLI in TSV mode.
// It holds no per-call state; build it once and share it
type Tesseract struct {
	bin        string
	lang       string
	timeout    time.Duration
	preprocess bool
	tmpDir     string
	runner     Runner
	log        zerolog.Logger
}

// Option configures a Tesseract
type Option func(*Tesseract)

// WithBinary sets the tesseract executable
func WithBinary(bin string) Option {
	return func(t *Tesseract) {
		if bin != "" {
			t.bin = bin
		}
	}
}

// WithLanguages sets the -l argument, e.g. "spa+eng"
func WithLanguages(lang string) Option {
	return func(t *Tesseract) {
		if lang != "" {
			t.lang = lang
		}
	}
}

// WithTimeout bounds a single recognition; zero disables the bound
func WithTimeout(d time.Duration) Option { return func(t *Tesseract) { t.timeout = d } }

// WithPreprocess enables the imaging pass before recognition
func WithPreprocess(on bool) Option { return func(t *Tesseract) { t.preprocess = on } }

// WithTempDir sets where preprocessed images are written
func WithTempDir(dir string) Option { return func(t *Tesseract) { t.tmpDir = dir } }

// WithRunner swaps the command runner
func WithRunner(r Runner) Option {
	return func(t *Tesseract) {
		if r != nil {
			t.runner = r
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zerolog.Logger) Option {
	return func(t *Tesseract) {
		if l != nil {
			t.log = *l
		}
	}
}

// NewTesseract builds a recognizer; defaults are "tesseract" with spa+eng
func NewTesseract(opts ...Option) *Tesseract {
	t := &Tesseract{
		bin:  "tesseract",
		lang: "spa+eng",
		log:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(t)
	}
	if t.runner == nil {
		t.runner = ExecRunner{Log: t.log}
	}
	return t
}

// Recognize runs tesseract over the image at path.
// A missing file is NotFound, an image tesseract cannot read is Unprocessable and an
// engine that cannot be started (or times out) is Unavailable
func (t *Tesseract) Recognize(ctx context.Context, path string) ([]Fragment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, perr.NotFoundf("image %s not found", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnprocessable, "stat %s", path)
	}
	if fi.IsDir() {
		return nil, perr.InvalidArgf("%s is a directory", path)
	}

	if t.preprocess {
		pp, cleanup, err := Preprocess(path, t.tmpDir)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = pp
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	out, stderr, err := t.runner.Run(ctx, t.bin, path, "stdout", "-l", t.lang, "tsv")
	if err != nil {
		return nil, t.classify(ctx, err, stderr)
	}

	frags := parseTSV(out)
	t.log.Debug().Str("path", path).Int("fragments", len(frags)).Msg("recognized")
	return frags, nil
}

func (t *Tesseract) classify(ctx context.Context, err error, stderr []byte) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return perr.Wrap(ctxErr, perr.ErrorCodeUnavailable, "ocr engine timed out")
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = "ocr engine could not read the image"
		}
		return perr.Wrap(err, perr.ErrorCodeUnprocessable, truncate(msg, 512))
	}
	return perr.Wrapf(err, perr.ErrorCodeUnavailable, "start %s", t.bin)
}
