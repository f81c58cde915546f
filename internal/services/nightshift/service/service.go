// Package service provides the Nightshift implementation
package service

import (
	"context"
	"errors"
	"time"

	"itinerary/internal/platform/logger"
	nsdom "itinerary/internal/services/nightshift/domain"
	"itinerary/internal/services/nightshift/guardrails"
)

// Config controls retention and cadence
type Config struct {
	// MaxAge is how long an artifact lives; zero disables sweeping
	MaxAge time.Duration

	// Interval between passes in Run
	Interval time.Duration
}

// Service runs retention passes over the artifact store
type Service struct {
	Store nsdom.Sweeper
	Cfg   Config

	lease guardrails.Lease
	now   func() time.Time
}

// New constructs the Nightshift service; a nil store disables it
func New(st nsdom.Sweeper, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Service{Store: st, Cfg: cfg, now: time.Now}
}

// SweepOnce runs one retention pass (idempotent)
func (s *Service) SweepOnce(ctx context.Context) (nsdom.SweepReport, error) {
	if s.Store == nil || s.Cfg.MaxAge <= 0 {
		return nsdom.SweepReport{}, nil
	}
	l := logger.C(ctx).With().Str("mod", "nightshift").Logger()

	rep := nsdom.SweepReport{Cutoff: s.now().Add(-s.Cfg.MaxAge).UTC()}
	err := s.lease.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		n, err := s.Store.Sweep(ctx, rep.Cutoff)
		rep.Removed, rep.Took = n, time.Since(start)
		return err
	})
	if errors.Is(err, guardrails.ErrLeaseHeld) {
		l.Debug().Msg("nightshift: pass already running; clean skip")
		rep.Skipped = true
		return rep, nil
	}
	if err != nil {
		l.Error().Err(err).Int("removed", rep.Removed).Msg("nightshift: sweep failed")
		return rep, err
	}
	if rep.Removed > 0 {
		l.Info().Int("removed", rep.Removed).Time("cutoff", rep.Cutoff).Dur("took", rep.Took).Msg("nightshift: expired artifacts removed")
	}
	return rep, nil
}

// Run sweeps every Cfg.Interval until ctx is done. Pass failures are logged, not fatal
func (s *Service) Run(ctx context.Context) error {
	if s.Store == nil || s.Cfg.MaxAge <= 0 {
		<-ctx.Done()
		return nil
	}
	t := time.NewTicker(s.Cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			_, _ = s.SweepOnce(ctx)
		}
	}
}
