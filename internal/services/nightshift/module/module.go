// Package module exposes artifact retention as a background module with no
// routes. Other modules reach it through its port set
package module

import (
	"itinerary/internal/modkit"
	"itinerary/internal/modkit/httpkit"
	modreg "itinerary/internal/modkit/module"
	nsdom "itinerary/internal/services/nightshift/domain"
	nsservice "itinerary/internal/services/nightshift/service"
)

// Name is the module and registry name
const Name = "nightshift"

// Ports is the nightshift port set
type Ports struct {
	Runner nsdom.RunnerPort
}

// Module runs retention passes over the artifact store
type Module struct {
	ports Ports
}

// New reads CORE_ARTIFACTS_* from the root config view. Without an artifact
// store the runner does nothing
func New(deps modkit.Deps) *Module {
	o := FromConfig(deps.Cfg)
	var sw nsdom.Sweeper
	if deps.Artifacts != nil {
		sw = deps.Artifacts
	}
	svc := nsservice.New(sw, nsservice.Config{MaxAge: o.MaxAge, Interval: o.Interval})
	return &Module{ports: Ports{Runner: svc}}
}

func (m *Module) Name() string { return Name }

func (m *Module) Ports() any { return m.ports }

// MountRoutes does nothing; nightshift serves no HTTP
func (m *Module) MountRoutes(httpkit.Router) {}

// Register builds the module and publishes its ports
func Register(deps modkit.Deps) *Module {
	m := New(deps)
	modreg.Register(Name, m.Ports())
	return m
}
