// Package pipeline runs recognized text through extraction, normalization and the
// additional-field pass. Images go through an ocr.Recognizer first
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"itinerary/internal/core/extractor"
	"itinerary/internal/core/normalize"
	"itinerary/internal/core/ocr"
	"itinerary/internal/core/rulepack"
	perr "itinerary/internal/platform/errors"
)

// Pipeline is immutable after New and safe for concurrent use
type Pipeline struct {
	rec       ocr.Recognizer
	engine    *extractor.Engine
	norm      *normalize.Normalizer
	threshold float64
	log       zerolog.Logger
}

// Option configures a Pipeline
type Option func(*config)

type config struct {
	rec        ocr.Recognizer
	threshold  float64
	looseDedup bool
	log        zerolog.Logger
}

// WithRecognizer sets the OCR engine used by FromImage
func WithRecognizer(r ocr.Recognizer) Option { return func(c *config) { c.rec = r } }

// WithThreshold sets the minimum fragment confidence kept from OCR
func WithThreshold(t float64) Option { return func(c *config) { c.threshold = t } }

// WithLooseDedup merges vessel mentions that differ only by OCR noise
func WithLooseDedup(on bool) Option { return func(c *config) { c.looseDedup = on } }

// WithLogger sets the pipeline logger; the extraction engine logs gaps through it at debug
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = *l
		}
	}
}

// New builds a pipeline over a compiled pack
func New(p *rulepack.Pack, opts ...Option) *Pipeline {
	if p == nil {
		panic("pipeline requires a non nil rule pack")
	}
	c := config{threshold: ocr.DefaultThreshold, log: zerolog.Nop()}
	for _, o := range opts {
		o(&c)
	}
	return &Pipeline{
		rec:       c.rec,
		engine:    extractor.New(p, extractor.WithLooseDedup(c.looseDedup), extractor.WithLogger(&c.log)),
		norm:      normalize.New(p),
		threshold: c.threshold,
		log:       c.log,
	}
}

// FromText extracts and normalizes text. It never fails; gaps become sentinels
func (p *Pipeline) FromText(text string) normalize.Record {
	res := p.engine.Extract(text)
	rec := p.norm.Normalize(res)
	return rec.Merge(p.norm.ExtractAdditionalFields(res.Text))
}

// FromImage recognizes the image at path and runs FromText over the kept fragments.
// Only input access and OCR failures are errors
func (p *Pipeline) FromImage(ctx context.Context, path string) (normalize.Record, error) {
	text, err := p.Recognize(ctx, path)
	if err != nil {
		return normalize.Record{}, err
	}
	return p.FromText(text), nil
}

// Recognize returns the newline-joined text of every fragment at or above the threshold
func (p *Pipeline) Recognize(ctx context.Context, path string) (string, error) {
	if p.rec == nil {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "ocr engine not configured")
	}
	start := time.Now()
	frags, err := p.rec.Recognize(ctx, path)
	if err != nil {
		return "", err
	}
	text := ocr.JoinFragments(frags, p.threshold)
	p.log.Debug().
		Str("path", path).
		Int("fragments", len(frags)).
		Int("chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("ocr done")
	return text, nil
}

// Item is one input of a batch run
type Item struct {
	Path string
	Text bool // Path holds recognized text rather than an image
}

// Outcome pairs a batch item with its record or error
type Outcome struct {
	Item   Item
	Record normalize.Record
	Err    error
}

// Run processes items with up to workers goroutines.
// Outcomes keep input order; per item failures do not stop the batch
func (p *Pipeline) Run(ctx context.Context, items []Item, workers int, read func(string) (string, error)) []Outcome {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Outcome, len(items))

	sem := make(chan struct{}, workers)
	wg := sync.WaitGroup{}
	for i := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			it := items[i]
			out[i].Item = it
			if err := ctx.Err(); err != nil {
				out[i].Err = perr.Wrap(err, perr.ErrorCodeUnavailable, "batch cancelled")
				return
			}
			if !it.Text {
				out[i].Record, out[i].Err = p.FromImage(ctx, it.Path)
				return
			}
			text, err := read(it.Path)
			if err != nil {
				out[i].Err = err
				return
			}
			out[i].Record = p.FromText(text)
		}(i)
	}
	wg.Wait()
	return out
}
