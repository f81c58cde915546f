// Package guardrails keeps nightshift passes from overlapping
package guardrails

import (
	"context"
	"errors"
	"sync"
)

// ErrLeaseHeld signals another pass owns the lease already
var ErrLeaseHeld = errors.New("nightshift: sweep lease already held")

// Lease is an in-process try-lock around a pass
type Lease struct {
	mu sync.Mutex
}

// Do runs do if the lease is free, otherwise returns ErrLeaseHeld without waiting
func (l *Lease) Do(ctx context.Context, do func(context.Context) error) error {
	if !l.mu.TryLock() {
		return ErrLeaseHeld
	}
	defer l.mu.Unlock()
	return do(ctx)
}
