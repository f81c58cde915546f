package bind

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	perr "itinerary/internal/platform/errors"
)

// FileOptions controls multipart file parsing
type FileOptions struct {
	Field     string   // form field, default "file"
	MaxBytes  int64    // whole request limit, default 16MiB
	MaxMemory int64    // parts above this spill to disk, default 8MiB
	Allowed   []string // lower case extensions without the dot, empty allows any
}

func (o FileOptions) withDefaults() FileOptions {
	if o.Field == "" {
		o.Field = "file"
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 16 << 20
	}
	if o.MaxMemory <= 0 {
		o.MaxMemory = 8 << 20
	}
	return o
}

// Upload is a single parsed file part; the caller closes File
type Upload struct {
	File     multipart.File
	Name     string
	Ext      string
	Size     int64
	MimeType string
}

// Close releases the part and any temp files the form spilled to disk
func (u *Upload) Close() error {
	if u == nil || u.File == nil {
		return nil
	}
	return u.File.Close()
}

// ParseFile reads one file part from a multipart request.
// Oversized bodies are TooLarge, a missing or unnamed part is InvalidArg and a
// disallowed extension is UnsupportedMedia
func ParseFile(w http.ResponseWriter, r *http.Request, opts ...FileOptions) (*Upload, error) {
	o := FileOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	o = o.withDefaults()

	r.Body = http.MaxBytesReader(w, r.Body, o.MaxBytes)
	if err := r.ParseMultipartForm(o.MaxMemory); err != nil {
		var tooBig *http.MaxBytesError
		// multipart does not wrap every read error
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return nil, perr.TooLargef("upload exceeds %d bytes", o.MaxBytes)
		}
		return nil, perr.InvalidArgf("invalid multipart form: %v", err)
	}

	f, hdr, err := r.FormFile(o.Field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, perr.WithField(perr.InvalidArgf("no file part"), o.Field)
		}
		return nil, perr.InvalidArgf("read %s: %v", o.Field, err)
	}

	name := filepath.Base(strings.TrimSpace(hdr.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		_ = f.Close()
		return nil, perr.WithField(perr.InvalidArgf("no selected file"), o.Field)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if len(o.Allowed) > 0 && !allowed(ext, o.Allowed) {
		_ = f.Close()
		return nil, perr.UnsupportedMediaf("file type %q not allowed, use one of %s", ext, strings.Join(o.Allowed, ", "))
	}

	return &Upload{
		File:     f,
		Name:     name,
		Ext:      ext,
		Size:     hdr.Size,
		MimeType: hdr.Header.Get("Content-Type"),
	}, nil
}

func allowed(ext string, list []string) bool {
	for _, a := range list {
		if a == ext {
			return true
		}
	}
	return false
}
