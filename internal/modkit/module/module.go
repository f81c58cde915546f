// Package module is the module contract plus a small registry used to share
// port sets between modules during bootstrap
package module

import phttp "itinerary/internal/platform/net/http"

// Module is implemented by every API and background module
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	// Ports is the module's port set, usually a struct of interfaces
	Ports() any
}
