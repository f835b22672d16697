package register

import (
	"net/http"
	"strings"
	"time"

	"github.com/firehorseusa/firehorse/internal/platform/timeouts"
	"github.com/firehorseusa/firehorse/internal/services/web/module"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// Option configures a register module.
type Option func(*Module)

// WithGateway sets the account gateway.
func WithGateway(g AccountGateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithBase sets the shared handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// WithLoginPath sets where a successful registration redirects.
func WithLoginPath(path string) Option {
	return func(m *Module) {
		if path = strings.TrimSpace(path); path != "" {
			m.loginPath = path
		}
	}
}

// WithRedirectAfter sets the delay before the post-success redirect.
func WithRedirectAfter(d time.Duration) Option {
	return func(m *Module) { m.redirectAfter = d }
}

// Module provides the registration form and alias check routes.
type Module struct {
	gateway       AccountGateway
	base          modulehandler.Base
	loginPath     string
	redirectAfter time.Duration
	refocus       time.Duration
}

// New returns a register module configured by the given options.
// Without a gateway the module starts in degraded mode.
func New(opts ...Option) Module {
	m := Module{
		loginPath:     routepath.Login,
		redirectAfter: timeouts.RegisterRedirect,
		refocus:       timeouts.AliasRefocus,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "register" }

// Healthy reports whether the register module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires register route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	gateway := m.gateway
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	forms := newFormStates(gateway, m.refocus, m.redirectAfter)
	h := newHandlers(newService(gateway, forms), m.base, m.loginPath, m.refocus)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.RegisterPrefix, Handler: mux}, nil
}
