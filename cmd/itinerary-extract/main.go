// Command itinerary-extract reads itinerary images (or already recognized text)
// and writes <name>_datos.xlsx and <name>_datos.pdf for each input
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"itinerary/internal/adapters/export"
	"itinerary/internal/adapters/export/pdf"
	"itinerary/internal/adapters/export/xlsx"
	"itinerary/internal/core/normalize"
	"itinerary/internal/core/ocr"
	"itinerary/internal/core/pipeline"
	"itinerary/internal/core/rulepack"
	"itinerary/internal/platform/config"
	"itinerary/internal/platform/logger"

	itmod "itinerary/internal/services/api/itineraries/module"
	itsvc "itinerary/internal/services/api/itineraries/service"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	_ = godotenv.Load()

	// stdout carries records; logs go to stderr
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	if lo.Level == "" {
		lo.Level = "warn"
	}
	logger.Init(lo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nil))
}

// run is main without the process globals; rec overrides tesseract when non nil
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, rec ocr.Recognizer) int {
	o := itmod.FromConfig(config.New().Prefix("CORE_"))

	fs := flag.NewFlagSet("itinerary-extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		outDir     = fs.String("o", config.New().Prefix("CORE_").MayString("OUTPUT_DIR", "output"), "output directory")
		asText     = fs.Bool("text", false, "inputs are text files (\"-\" reads stdin) instead of images")
		threshold  = fs.Float64("threshold", o.OCRThreshold, "minimum OCR confidence (0..1) for a line to be kept")
		preprocess = fs.Bool("preprocess", o.OCRPreprocess, "grayscale, sharpen and upscale images before OCR")
		lang       = fs.String("lang", o.OCRLang, "tesseract language list")
		workers    = fs.Int("workers", o.OCRWorkers, "inputs processed concurrently (>=1)")
		asJSON     = fs.Bool("json", false, "print each normalized record as JSON instead of a summary")
		noExport   = fs.Bool("no-export", false, "skip writing xlsx/pdf files")
	)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "usage: itinerary-extract [flags] <image|text file>...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	if *threshold < 0 || *threshold > 1 {
		_, _ = fmt.Fprintln(stderr, "-threshold must be within 0..1")
		return exitUsage
	}

	log := logger.Named("extract")

	pack, err := rulepack.Load()
	if err != nil {
		log.Error().Err(err).Msg("rulepack load failed")
		return exitFail
	}

	if rec == nil {
		rec = ocr.NewTesseract(
			ocr.WithBinary(o.OCRBin),
			ocr.WithLanguages(*lang),
			ocr.WithTimeout(o.OCRTimeout),
			ocr.WithPreprocess(*preprocess),
			ocr.WithTempDir(o.TempDir),
			ocr.WithLogger(log),
		)
	}
	pipe := pipeline.New(pack,
		pipeline.WithRecognizer(rec),
		pipeline.WithThreshold(*threshold),
		pipeline.WithLooseDedup(o.LooseDedup),
		pipeline.WithLogger(log),
	)

	items := make([]pipeline.Item, 0, fs.NArg())
	for _, a := range fs.Args() {
		if !*asText && !ocr.Allowed(a) {
			_, _ = fmt.Fprintf(stderr, "%s: unsupported image type (allowed: %v)\n", a, ocr.Extensions)
			return exitUsage
		}
		items = append(items, pipeline.Item{Path: a, Text: *asText})
	}

	read := func(path string) (string, error) {
		if path == "-" {
			b, err := io.ReadAll(stdin)
			return string(b), err
		}
		b, err := os.ReadFile(path)
		return string(b), err
	}

	names := stems(items)
	code := exitOK
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	for i, res := range pipe.Run(ctx, items, *workers, read) {
		if res.Err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", res.Item.Path, res.Err)
			code = exitFail
			continue
		}

		var written []string
		if !*noExport {
			for _, f := range []export.Format{xlsx.Format, pdf.Format} {
				path, err := export.WriteFile(*outDir, names[i], f, res.Record)
				if err != nil {
					_, _ = fmt.Fprintf(stderr, "%s: %v\n", res.Item.Path, err)
					code = exitFail
					continue
				}
				written = append(written, path)
			}
		}

		if *asJSON {
			_ = enc.Encode(res.Record)
			continue
		}
		summary(stdout, res.Item.Path, res.Record, written)
	}
	return code
}

// stems names each input's exports. Inputs sharing a base name get _2, _3 and
// so on in input order so no export overwrites another
func stems(items []pipeline.Item) []string {
	out := make([]string, len(items))
	taken := make(map[string]struct{}, len(items))
	for i, it := range items {
		base := itsvc.DefaultStem
		if it.Path != "-" {
			base = itsvc.Stem(it.Path)
		}
		s := base
		for n := 2; ; n++ {
			if _, dup := taken[s]; !dup {
				break
			}
			s = fmt.Sprintf("%s_%d", base, n)
		}
		taken[s] = struct{}{}
		out[i] = s
	}
	return out
}

func summary(w io.Writer, name string, r normalize.Record, written []string) {
	_, _ = fmt.Fprintf(w, "== %s\n", name)
	if r.MultiVessel && len(r.Vessels) > 0 {
		_, _ = fmt.Fprintf(w, "vessels: %d\n", len(r.Vessels))
		for i, v := range r.Vessels {
			_, _ = fmt.Fprintf(w, "  %d. %s | %s | %s -> %s | ETD %s | ETA %s\n",
				i+1, v.Name, v.Carrier, v.POL, v.POD, v.ETD, v.ETA)
		}
	} else {
		_, _ = fmt.Fprintf(w, "carrier: %s\nvessel:  %s\npol:     %s\npod:     %s\netd:     %s\neta:     %s\n",
			r.Carrier, r.VesselName, r.POL, r.POD, r.ETD, r.ETA)
	}
	for _, p := range written {
		_, _ = fmt.Fprintf(w, "wrote %s\n", p)
	}
}
