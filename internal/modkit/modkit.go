// Package modkit is the wiring kit API modules are assembled from: shared
// deps, naming and prefix options, and route mounting under a prefix
package modkit

import (
	"itinerary/internal/modkit/module"
	"itinerary/internal/platform/config"
	"itinerary/internal/platform/logger"
	"itinerary/internal/platform/store"
)

// Module is the contract every module satisfies
type Module = module.Module

// Deps are the process wide dependencies handed to every module.
// Artifacts is nil when the artifact store is disabled
type Deps struct {
	Log       logger.Logger
	Cfg       config.Conf
	Artifacts store.Blobs
}
