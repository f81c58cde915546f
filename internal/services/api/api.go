// Package api assembles the HTTP surface: the versioned module routes, the
// shared middleware stack, the swagger UI and the optional profiler
package api

import (
	"itinerary/internal/core/ocr"
	"itinerary/internal/core/rulepack"
	"itinerary/internal/modkit"
	"itinerary/internal/modkit/httpkit"
	"itinerary/internal/modkit/module"
	"itinerary/internal/modkit/swaggerkit"
	"itinerary/internal/platform/config"
	"itinerary/internal/platform/logger"
	phttp "itinerary/internal/platform/net/http"
	"itinerary/internal/platform/store"
	itmod "itinerary/internal/services/api/itineraries/module"
	metamod "itinerary/internal/services/api/meta/module"
)

// Options configure Mount
type Options struct {
	// Config is the CORE_API_ view
	Config config.Conf
	// Core is the CORE_ view modules read their own keys from
	Core  config.Conf
	Store *store.Store
	Pack  *rulepack.Pack
	// Logger defaults to the root logger
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Recognizer replaces the tesseract engine built from Core
	Recognizer ocr.Recognizer
}

// Mount builds the modules and mounts them under /api/v1
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Log: *logger.Get(), Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	// a nil *FS must not become a non nil Blobs
	if opt.Store != nil && opt.Store.Artifacts != nil {
		deps.Artifacts = opt.Store.Artifacts
	}

	mods := []modkit.Module{
		metamod.New(deps, opt.Pack),
		itmod.New(deps, opt.Pack, opt.Recognizer, itmod.FromConfig(opt.Core)),
	}

	swaggerkit.Mount(r, opt.Config, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(opt.Config.MayCSV("CORS_ORIGINS", nil)...)
	httpkit.MountAPIV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
		}
	})
}
