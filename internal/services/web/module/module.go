// Package module holds the contract every site area (home, media, register)
// satisfies so the app package can mount it.
package module

import "net/http"

// Mount pairs a path prefix with the handler that owns it.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is one mountable area of the site.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is implemented by modules that call a remote endpoint. A
// module reports false when it was built without a working gateway, and /up
// lists it as degraded.
type HealthReporter interface {
	Healthy() bool
}
