// Package http serves the meta endpoints: liveness, readiness, build info and
// a summary of the loaded rule pack
package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"itinerary/internal/core/rulepack"
	"itinerary/internal/core/version"
	"itinerary/internal/modkit/httpkit"
	"itinerary/internal/platform/store"
)

// ReadyTimeout bounds the dependency checks behind /ready
const ReadyTimeout = 2 * time.Second

// Deps are the handler dependencies. Artifacts is probed for readiness when
// it implements store.Pinger; Pack may be nil
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Artifacts   any
	Pack        *rulepack.Pack
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"itinerary-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is one probed dependency; Status is ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"artifacts"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"artifact dir not writable"`
}

// ReadyResponse is ok, degraded or fail overall
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse reports uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"itinerary-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// EngineResponse describes the loaded rule pack
type EngineResponse struct {
	Loaded      bool              `json:"loaded"       example:"true"`
	PackVersion int               `json:"pack_version" example:"1"`
	Locales     []string          `json:"locales"      example:"es"`
	Rules       map[string]int    `json:"rules"`
	Vocabulary  map[string]int    `json:"vocabulary"`
	Build       version.BuildInfo `json:"build"`
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/engine", h.engine)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	c := probe(ctx, "artifacts", h.Artifacts)
	overall := "degraded"
	switch c.Status {
	case "ok", "fail":
		overall = c.Status
	}
	return ReadyResponse{Status: overall, Checks: []ReadyCheck{c}, Now: stamp(time.Now())}, nil
}

func probe(ctx context.Context, name string, dep any) ReadyCheck {
	if dep == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := dep.(store.Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Rule pack version, locales and rule counts
// @Tags Meta
// @Produce json
// @Success 200 {object} EngineResponse
// @Router /meta/engine [get]
func (h handlers) engine(*http.Request) (any, error) {
	out := EngineResponse{Build: version.Info()}
	p := h.Pack
	if p == nil {
		return out, nil
	}
	out.Loaded = true
	out.PackVersion = p.Version
	out.Rules = make(map[string]int, len(p.Fields))
	for f, rs := range p.Fields {
		out.Rules[string(f)] = len(rs.Rules)
	}
	for loc := range p.Months {
		out.Locales = append(out.Locales, loc)
	}
	slices.Sort(out.Locales)
	out.Vocabulary = map[string]int{
		"carriers":        p.Carriers.Len(),
		"load_ports":      p.LoadPorts.Len(),
		"discharge_ports": p.DischargePorts.Len(),
		"common_ports":    p.CommonPorts.Len(),
		"port_indicators": p.PortIndicators.Len(),
		"vessel_keywords": len(p.VesselKeywords),
	}
	return out, nil
}
