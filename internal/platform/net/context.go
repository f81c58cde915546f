// Package net carries per request ids through contexts and renders the
// response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type jobKey struct{}

// WithRequest stores the request id under chi's key, so chimw.GetReqID and
// RequestID agree, and the extraction job id under ours. Empty ids are skipped
func WithRequest(ctx context.Context, reqID, jobID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if jobID != "" {
		ctx = context.WithValue(ctx, jobKey{}, jobID)
	}
	return ctx
}

// RequestID is the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// JobID is the extraction job id on ctx, or ""
func JobID(ctx context.Context) string {
	id, _ := ctx.Value(jobKey{}).(string)
	return id
}
