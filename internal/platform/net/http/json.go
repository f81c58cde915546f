package http

import (
	"net/http"

	"itinerary/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates a T from the body (at most maxBytes,
// bind.DefaultMaxJSON when <= 0) before calling fn
func JSONHandler[T any](maxBytes int64, fn func(*http.Request, T) (any, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := bind.ParseJSON[T](w, r, maxBytes)
		if err != nil {
			Error(err).write(w, r)
			return
		}
		result(fn(r, in)).write(w, r)
	}
}

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return result(fn(r)) })
}

// result passes a Response through untouched and wraps anything else in OK
func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
