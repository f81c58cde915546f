// Package httpkit is what service modules import for routing and responses,
// so they never reach into internal/platform/net/http
package httpkit

import phttp "itinerary/internal/platform/net/http"

type (
	// Router is the module routing surface
	Router = phttp.Router
	// Handler is a plain route function
	Handler = phttp.Handler
	// Response is a return-style handler result
	Response = phttp.Response
	// Envelope documents the JSON body in swagger annotations
	Envelope = phttp.Envelope
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Error renders err with its mapped status
func Error(err error) Response { return phttp.Error(err) }
