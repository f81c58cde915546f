package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"itinerary/internal/platform/net/middleware"
)

// RequestTimeout bounds one API request; OCR on a large scan is the slow path
const RequestTimeout = 2 * time.Minute

// CommonStack is the middleware every /api scope runs, outermost first.
// origins restricts CORS; none allows any origin
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Job(),
		middleware.Recover,
		middleware.AccessLog(5 * time.Second),
		middleware.NoCache,
		middleware.CORS(origins...),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes,
		middleware.Timeout(RequestTimeout),
	}
}
