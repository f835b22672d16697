package home

import (
	"net/http"

	"github.com/firehorseusa/firehorse/internal/services/web/module"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// Option configures a home module.
type Option func(*Module)

// WithBase sets the shared handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module serves the home and about pages and sends every unknown path back
// to the home page.
type Module struct {
	base modulehandler.Base
}

// New returns a home module configured by the given options.
func New(opts ...Option) Module {
	m := Module{}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "home" }

// Mount wires home route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(), m.base))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
