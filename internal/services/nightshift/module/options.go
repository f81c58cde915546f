package module

import (
	"time"

	"itinerary/internal/platform/config"
)

// Options for Nightshift module
type Options struct {
	MaxAge   time.Duration
	Interval time.Duration
}

// FromConfig fills options from environment
// CORE_ARTIFACTS_MAX_AGE (default 0, keep everything) is how long a rendered export is kept
// CORE_ARTIFACTS_SWEEP_EVERY (default 1h) is the pause between retention passes
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("CORE_ARTIFACTS_")
	return Options{
		MaxAge:   n.MayDuration("MAX_AGE", 0),
		Interval: n.MayDuration("SWEEP_EVERY", time.Hour),
	}
}
