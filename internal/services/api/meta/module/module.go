// Package module wires the meta endpoints into the API
package module

import (
	"time"

	"itinerary/internal/core/rulepack"
	"itinerary/internal/core/version"
	"itinerary/internal/modkit"
	"itinerary/internal/modkit/httpkit"
	metahttp "itinerary/internal/services/api/meta/http"
)

// Module serves version, health and engine details
type Module struct {
	modkit.Base
	deps metahttp.Deps
}

// New constructs the meta module. pack may be nil, the engine endpoint then
// reports an unloaded pack
func New(deps modkit.Deps, pack *rulepack.Pack, opts ...modkit.Option) *Module {
	return &Module{
		Base: modkit.NewBase("meta", "/meta", opts...),
		deps: metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   time.Now(),
			Artifacts:   deps.Artifacts,
			Pack:        pack,
		},
	}
}

// MountRoutes mounts the meta routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}

// Ports is nil; meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }
