// Package domain defines Nightshift core ports and types
package domain

import (
	"context"
	"time"
)

// RunnerPort is the public entrypoint exposed by the module.
// The API process runs Run in the background; operators can trigger SweepOnce
type RunnerPort interface {
	// SweepOnce removes every artifact older than the configured max age
	SweepOnce(ctx context.Context) (SweepReport, error)

	// Run sweeps every interval until ctx is done
	Run(ctx context.Context) error
}

// Sweeper is the storage action Nightshift performs; store.Blobs satisfies it
type Sweeper interface {
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

// SweepReport captures the outcome of one pass
type SweepReport struct {
	Cutoff  time.Time
	Removed int
	Took    time.Duration
	Skipped bool // another pass held the lease
}
