package ocr

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	perr "itinerary/internal/platform/errors"
)

// MaxSide bounds the preprocessed image; larger inputs are scaled down to fit
const MaxSide = 2000

// Preprocess writes a grayscale, contrast-boosted, sharpened copy of src into dir
// as PNG and returns its path with a cleanup func that removes it
func Preprocess(src, dir string) (string, func(), error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", func() {}, perr.Wrapf(err, perr.ErrorCodeUnprocessable, "open image %s", filepath.Base(src))
	}

	img = imaging.Grayscale(img)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	if b := img.Bounds(); b.Dx() > MaxSide || b.Dy() > MaxSide {
		img = imaging.Fit(img, MaxSide, MaxSide, imaging.Lanczos)
	}

	f, err := os.CreateTemp(dir, "ocr-*.png")
	if err != nil {
		return "", func() {}, perr.Wrap(err, perr.ErrorCodeStorage, "create preprocess file")
	}
	path := f.Name()
	_ = f.Close()
	cleanup := func() { _ = os.Remove(path) }

	if err := imaging.Save(img, path); err != nil {
		cleanup()
		return "", func() {}, perr.Wrap(err, perr.ErrorCodeStorage, "save preprocessed image")
	}
	return path, cleanup, nil
}
