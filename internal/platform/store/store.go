// Package store holds rendered exports. The filesystem backend is the only
// one; Store wires it from config and closes it on shutdown
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"itinerary/internal/platform/logger"
)

// Artifact describes one stored export
type Artifact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	RequestID   string    `json:"request_id,omitempty"`
}

// PutInput is what a caller knows about an artifact before it is stored
type PutInput struct {
	Name        string
	ContentType string
	RequestID   string
}

// Blobs is the artifact seam
type Blobs interface {
	// Put stores the bytes read from r and returns the assigned metadata
	Put(ctx context.Context, in PutInput, r io.Reader) (Artifact, error)
	// Get opens a stored artifact; the caller closes the reader
	Get(ctx context.Context, id string) (Artifact, io.ReadCloser, error)
	// Sweep removes artifacts created before cutoff and reports how many went
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Config selects and configures backends
type Config struct {
	Artifacts ArtifactsConfig
}

// ArtifactsConfig configures the filesystem backend
type ArtifactsConfig struct {
	Enabled bool
	Dir     string
	// MaxAge drops older artifacts on open; zero keeps everything
	MaxAge time.Duration
}

// Option adjusts a Store during Open
type Option func(*Store)

// WithLogger sets the logger backends report through
func WithLogger(log logger.Logger) Option { return func(s *Store) { s.Log = log } }

// WithClock replaces the time source used to stamp and expire artifacts
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store owns the configured backends. Artifacts is nil when disabled
type Store struct {
	Log       logger.Logger
	Artifacts Blobs

	now func() time.Time
}

// Open builds the backends enabled in cfg. The artifact directory must be
// writable; with MaxAge set, expired artifacts are removed before returning
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if !cfg.Artifacts.Enabled {
		return s, nil
	}

	fs, err := NewFS(cfg.Artifacts.Dir, s.now)
	if err != nil {
		return nil, err
	}
	if err := fs.Ping(ctx); err != nil {
		return nil, err
	}
	if age := cfg.Artifacts.MaxAge; age > 0 {
		switch n, err := fs.Sweep(ctx, s.now().Add(-age)); {
		case err != nil:
			s.Log.Warn().Err(err).Msg("artifact sweep failed")
		case n > 0:
			s.Log.Info().Int("removed", n).Dur("max_age", age).Msg("expired artifacts removed")
		}
	}
	s.Log.Debug().Str("dir", fs.Dir()).Msg("artifact store ready")
	s.Artifacts = fs
	return s, nil
}

// Ping checks every backend that can be probed
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("store: not opened")
	}
	if p, ok := s.Artifacts.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("artifacts: %w", err)
		}
	}
	return nil
}

// Close releases backends that hold resources
func (s *Store) Close() error {
	if c, ok := s.Artifacts.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
