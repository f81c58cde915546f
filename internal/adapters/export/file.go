package export

import (
	"os"
	"path/filepath"

	"itinerary/internal/core/normalize"
	perr "itinerary/internal/platform/errors"
)

// FileSuffix joins the input stem and the format extension in output names
const FileSuffix = "_datos"

// FileName is the output name of stem rendered as f, e.g. booking_datos.xlsx
func (f Format) FileName(stem string) string { return stem + FileSuffix + f.Ext }

// WriteFile renders r as f into dir and returns the written path.
// The file appears under its final name only once fully written
func WriteFile(dir, stem string, f Format, r normalize.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeStorage, "create output dir %s", dir)
	}
	path := filepath.Join(dir, f.FileName(stem))
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeStorage, "create export")
	}
	tmpName := tmp.Name()
	if err := f.Write(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", perr.WithOp(err, "render "+f.Name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", perr.Wrap(err, perr.ErrorCodeStorage, "close export")
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", perr.Wrap(err, perr.ErrorCodeStorage, "publish export")
	}
	return path, nil
}
