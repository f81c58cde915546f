// Package middleware holds the HTTP middleware the API stacks are built from.
// chi's middleware is re-exported here so modules never import chi directly
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Stateless chi middleware
var (
	RequestID    = chimw.RequestID
	RealIP       = chimw.RealIP
	NoCache      = chimw.NoCache
	StripSlashes = chimw.StripSlashes
)

// Timeout cancels the request context after d; handlers see ctx.Err
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Compress encodes text responses (JSON envelopes, not the binary exports)
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level, "application/json", "text/plain").Handler
}

// Heartbeat answers GET/HEAD path with 200 "." ahead of routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// AllowContentType answers 415 unless the body is one of ct
func AllowContentType(ct ...string) func(http.Handler) http.Handler {
	return chimw.AllowContentType(ct...)
}

// ThrottleBacklog runs at most limit requests at once, queues backlog more for
// up to wait, and answers 429 beyond that
func ThrottleBacklog(limit, backlog int, wait time.Duration) func(http.Handler) http.Handler {
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// CORS allows the given origins (any when empty) to call the API and read the
// job id and download name headers
func CORS(origins ...string) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", JobHeader},
		ExposedHeaders: []string{JobHeader, "Content-Disposition"},
		MaxAge:         600,
	})
}
