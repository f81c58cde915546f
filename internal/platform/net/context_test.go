package net_test

import (
	"context"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	pnet "itinerary/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()
	cases := []struct {
		name, req, job string
	}{
		{"both", "req-123", "job-abc"},
		{"request only", "r-only", ""},
		{"job only", "", "j-only"},
		{"neither", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, tc.req, tc.job)
			if got := pnet.RequestID(ctx); got != tc.req {
				t.Fatalf("RequestID = %q, want %q", got, tc.req)
			}
			if got := pnet.JobID(ctx); got != tc.job {
				t.Fatalf("JobID = %q, want %q", got, tc.job)
			}
			if got := chimw.GetReqID(ctx); got != tc.req {
				t.Fatalf("chi sees %q, want %q", got, tc.req)
			}
		})
	}
	if pnet.WithRequest(base, "", "") != base {
		t.Fatal("empty ids must leave ctx untouched")
	}
}
