package httpkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	phttp "itinerary/internal/platform/net/http"
)

// Get mounts a handler that reads no body. A returned Response is written as
// is; any other value becomes the data of a 200 envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Call(h))
}

// Post is Get for POST routes that parse their own body (multipart uploads)
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.Call(h))
}

// PostJSON mounts a handler fed a decoded and validated T of at most
// maxBytes (bind.DefaultMaxJSON when <= 0)
func PostJSON[T any](r Router, path string, maxBytes int64, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(maxBytes, h))
}

// Param returns a chi path parameter
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
