package middleware

import (
	"net/http"
	"runtime/debug"

	perr "itinerary/internal/platform/errors"
	"itinerary/internal/platform/logger"
	pnet "itinerary/internal/platform/net"
)

// Recover turns a handler panic into a logged 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			ctx := r.Context()
			logger.C(ctx).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("handler panic")

			status, env := pnet.Failure(perr.PanicErrf("internal error"), pnet.RequestID(ctx), pnet.JobID(ctx))
			pnet.WriteJSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
