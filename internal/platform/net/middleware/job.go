package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"itinerary/internal/platform/logger"
	pnet "itinerary/internal/platform/net"
)

// JobHeader carries the extraction job id in both directions
const JobHeader = "X-Job-ID"

// Job stamps every request with an extraction job id.
// A caller supplied uuid in JobHeader is reused, anything else gets a fresh one.
// The id is echoed back and attached to the request scoped logger
func Job() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(JobHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(JobHeader, id)

			ctx := r.Context()
			reqID := pnet.RequestID(ctx)
			ctx = pnet.WithRequest(ctx, reqID, id)
			ctx = logger.WithRequest(ctx, reqID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
