// Package logger owns the process zerolog root and the request scoped children
// handed to handlers and workers
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the type passed around the codebase
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string // trace..panic, "warning" accepted; anything else is debug
	Format  string // console or json
	Service string
	Writer  io.Writer // defaults to stdout
	Caller  bool
	Fields  map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER.
// It reads the environment directly since config logs through this package
func FromEnv() Options {
	caller, _ := strconv.ParseBool(env("LOG_CALLER"))
	return Options{
		Level:   env("LOG_LEVEL"),
		Format:  strings.ToLower(or(env("LOG_FORMAT"), "console")),
		Service: env("LOG_SERVICE"),
		Caller:  caller,
	}
}

func env(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root logger; only the first call has an effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format != "json" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			c = c.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			c = c.Str("service", opt.Service)
		}
		for k, v := range opt.Fields {
			c = c.Str(k, v)
		}
		if opt.Caller {
			c = c.Caller()
		}
		l := c.Logger()
		root.Store(&l)
	})
}

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyJobID
)

// WithRequest stores the request and job ids that C attaches to every line
func WithRequest(ctx context.Context, reqID, jobID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if jobID != "" {
		ctx = context.WithValue(ctx, keyJobID, jobID)
	}
	return ctx
}

// C returns the root logger tagged with the ids carried by ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyJobID).(string); s != "" {
		b = b.Str("job_id", s)
	}
	l := b.Logger()
	return &l
}

// Named tags the root logger with a component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
