// Package http adapts chi to the project router and renders handler results
// inside the shared JSON envelope
package http

import (
	stdhttp "net/http"

	pnet "itinerary/internal/platform/net"
)

// Envelope is the JSON body shape of every response
type Envelope = pnet.Envelope

// Response is what return-style handlers produce.
// An error Body is rendered as an error envelope with the mapped status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error renders err with the status its code maps to
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning function
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

// RespondError writes err as an envelope outside a return-style handler
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	Error(err).write(w, r)
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	ctx := r.Context()
	reqID, jobID := pnet.RequestID(ctx), pnet.JobID(ctx)

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Failure(err, reqID, jobID)
		pnet.WriteJSON(w, status, env)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	pnet.WriteJSON(w, status, pnet.Reply(status, resp.Body, reqID, jobID))
}
