// Package config reads process settings from environment variables.
// Every getter falls back to its default when the variable is unset; malformed
// values are logged once per read and also fall back
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"itinerary/internal/platform/logger"
)

// Conf is a view over the environment scoped by a key prefix such as "CORE_OCR_"
type Conf struct{ prefix string }

// New returns the unscoped view
func New() Conf { return Conf{} }

// Prefix narrows the view; prefixes accumulate
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the full variable name for k under this view
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// parsed reads key through parse, returning def when the value is unset or
// rejected. Rejections are logged with want naming the expected form
func parsed[T any](c Conf, key, want string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Named("config").Warn().
			Str("key", c.Key(key)).
			Str("value", s).
			Str("want", want).
			Str("default", fmt.Sprint(def)).
			Msg("invalid setting, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	return parsed(c, key, "string", def, func(s string) (string, error) { return s, nil })
}

// MayInt parses a base 10 integer
func (c Conf) MayInt(key string, def int) int {
	return parsed(c, key, "int", def, strconv.Atoi)
}

func float(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// MayFloat64 parses a float
func (c Conf) MayFloat64(key string, def float64) float64 {
	return parsed(c, key, "float", def, float)
}

// MayUnit parses a float within 0..1, used for confidence thresholds
func (c Conf) MayUnit(key string, def float64) float64 {
	return parsed(c, key, "0..1", def, func(s string) (float64, error) {
		v, err := float(s)
		if err == nil && (v < 0 || v > 1) {
			err = fmt.Errorf("%v out of range", v)
		}
		return v, err
	})
}

// MayBool accepts anything strconv.ParseBool does
func (c Conf) MayBool(key string, def bool) bool {
	return parsed(c, key, "bool", def, strconv.ParseBool)
}

// MayDuration parses Go durations such as 90s or 24h
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, "duration", def, time.ParseDuration)
}

// MaxBytes caps MayBytes
const MaxBytes = 1 << 40

// MayBytes parses a size such as 16MiB, 2 MB or a bare byte count within 1..MaxBytes
func (c Conf) MayBytes(key string, def int64) int64 {
	return parsed(c, key, "size", def, func(s string) (int64, error) {
		n, err := humanize.ParseBytes(s)
		if err == nil && (n == 0 || n > MaxBytes) {
			err = fmt.Errorf("%d out of range", n)
		}
		return int64(n), err
	})
}

// MayCSV splits on commas and drops blank items; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for p := range strings.SplitSeq(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
