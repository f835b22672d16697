package media

import (
	"net/http"

	"github.com/firehorseusa/firehorse/internal/services/web/module"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// Option configures a media module.
type Option func(*Module)

// WithGateway sets the image gateway.
func WithGateway(g ImageGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithLedger sets the optional upload ledger.
func WithLedger(l Ledger) Option {
	return func(m *Module) { m.ledger = l }
}

// WithBase sets the shared handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithMaxBytes overrides the per-image size cap.
func WithMaxBytes(n int64) Option {
	return func(m *Module) {
		if n > 0 {
			m.maxBytes = n
		}
	}
}

// Module provides the image upload page.
type Module struct {
	gateway  ImageGateway
	ledger   Ledger
	base     modulehandler.Base
	maxBytes int64
}

// New returns a media module configured by the given options.
func New(opts ...Option) Module {
	m := Module{maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "media" }

// Healthy reports whether the media module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires media route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway, m.ledger), m.base, m.maxBytes)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.MediaPrefix, Handler: mux}, nil
}
