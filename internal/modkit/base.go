package modkit

import (
	"net/http"
	"strings"

	"itinerary/internal/modkit/httpkit"
)

// Option adjusts a module's Base
type Option func(*Base)

// WithName overrides the module name used in logs and the port registry
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix overrides the route prefix
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares adds middleware scoped to the module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mw = append(b.mw, mw...) }
}

// WithRegister adds routes after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}

// Base carries what every HTTP module shares; modules embed it
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	extra  []func(httpkit.Router)
}

// NewBase applies opts over the module's defaults.
// It panics on an empty name or a prefix that normalizes to "/"
func NewBase(name, prefix string, opts ...Option) Base {
	b := Base{name: name, prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	if strings.TrimSpace(b.name) == "" {
		panic("modkit: module name is required")
	}
	b.prefix = "/" + strings.Trim(strings.TrimSpace(b.prefix), "/")
	if b.prefix == "/" {
		panic("modkit: module " + b.name + " needs a route prefix")
	}
	return b
}

// Name is the module name
func (b Base) Name() string { return b.name }

// Prefix is the normalized route prefix, e.g. /itineraries
func (b Base) Prefix() string { return b.prefix }

// Middlewares are the module scoped middleware in order
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mw }

// Mount registers routes, then any WithRegister extras, under the prefix
func (b Base) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	r.Route(b.prefix, func(sub httpkit.Router) {
		if len(b.mw) > 0 {
			sub.Use(b.mw...)
		}
		routes(sub)
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}
