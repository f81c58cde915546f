package httpkit

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"itinerary/internal/platform/logger"
	phttp "itinerary/internal/platform/net/http"
)

// File is a streamed download; Body is closed once written
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// Download adapts a handler that returns a file; errors still use the JSON envelope
func Download(fn func(*http.Request) (File, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := fn(r)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		defer func() { _ = f.Body.Close() }()

		h := w.Header()
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		if f.Name != "" {
			h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
		}
		if f.Size > 0 {
			h.Set("Content-Length", strconv.FormatInt(f.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, f.Body); err != nil {
			logger.C(r.Context()).Warn().Err(err).Str("name", f.Name).Msg("download interrupted")
		}
	}
}

// GetFile mounts a download handler under GET
func GetFile(r Router, path string, h func(*http.Request) (File, error)) {
	r.Get(path, Download(h))
}
