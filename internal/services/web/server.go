package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/firehorseusa/firehorse/internal/platform/timeouts"
	"github.com/firehorseusa/firehorse/internal/services/web/app"
	"github.com/firehorseusa/firehorse/internal/services/web/i18n"
	"github.com/firehorseusa/firehorse/internal/services/web/identity"
	"github.com/firehorseusa/firehorse/internal/services/web/integration/cmsapi"
	"github.com/firehorseusa/firehorse/internal/services/web/integration/uploadledger"
	"github.com/firehorseusa/firehorse/internal/services/web/module"
	"github.com/firehorseusa/firehorse/internal/services/web/modules"
	"github.com/firehorseusa/firehorse/internal/services/web/modules/media"
	"github.com/firehorseusa/firehorse/internal/services/web/modules/register"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/metrics"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/observability"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
	"github.com/firehorseusa/firehorse/internal/services/web/static"
	websqlite "github.com/firehorseusa/firehorse/internal/services/web/storage/sqlite"
	"github.com/prometheus/client_golang/prometheus"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// APIBaseURL is the CMS REST root for registration and alias checks.
	APIBaseURL string
	// UploadURL is the image upload endpoint. Empty derives it from APIBaseURL.
	UploadURL string
	// LoginPath is where a successful registration sends the browser.
	LoginPath      string
	RequestTimeout time.Duration
	// UploadLedgerPath is the SQLite file for the upload ledger. Empty
	// disables the ledger.
	UploadLedgerPath    string
	TrustForwardedProto bool
	// Registerer receives the Prometheus collectors. Nil uses the default
	// registry.
	Registerer prometheus.Registerer
	HTTPClient *http.Client
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	ledger     *websqlite.Store
}

// healthResponse is the /up body.
type healthResponse struct {
	Status   string   `json:"status"`
	Degraded []string `json:"degraded,omitempty"`
}

// NewHandler builds the root handler with every module, the health and
// metrics endpoints, static assets, and the shared middleware chain.
// ledger may be nil.
func NewHandler(config Config, ledger media.Ledger) (http.Handler, error) {
	collectors, err := metrics.New(metrics.Options{Registerer: config.Registerer})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	client, err := cmsapi.New(cmsapi.Config{
		BaseURL:    config.APIBaseURL,
		UploadURL:  config.UploadURL,
		Timeout:    config.RequestTimeout,
		HTTPClient: config.HTTPClient,
		Observer:   collectors,
	})
	if err != nil {
		return nil, fmt.Errorf("init cms client: %w", err)
	}

	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	features := modules.DefaultModules(modules.Dependencies{
		Base:           modulehandler.NewBase(policy),
		AccountGateway: register.NewHTTPGateway(client),
		LoginPath:      config.LoginPath,
		ImageGateway:   media.NewHTTPGateway(client),
		UploadLedger:   ledger,
	})
	root, err := app.BuildRootHandler(app.Config{Modules: features, RequestSchemePolicy: policy})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, healthHandler(features))
	mux.Handle(http.MethodGet+" "+routepath.Metrics, collectors.Handler())
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))
	mux.Handle(routepath.Root, root)

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		collectors.Middleware(routeLabel),
		i18n.PersistSelection,
		identity.Middleware(),
		observability.RequestLogger(log.Default()),
	), nil
}

func healthHandler(features []module.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := healthResponse{Status: "ok"}
		for _, feature := range features {
			if reporter, ok := feature.(module.HealthReporter); ok && !reporter.Healthy() {
				resp.Degraded = append(resp.Degraded, feature.ID())
			}
		}
		_ = httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// routeLabel maps a request onto a bounded metrics label.
func routeLabel(r *http.Request) string {
	path := r.URL.Path
	switch {
	case path == routepath.Root,
		path == routepath.Health,
		path == routepath.Metrics,
		path == routepath.RegisterAliasCheck:
		return path
	case strings.HasPrefix(path, routepath.StaticPrefix):
		return routepath.StaticPrefix
	}
	for _, page := range []string{routepath.About, routepath.Media, routepath.Register} {
		if path == page || path == page+"/" {
			return page
		}
	}
	return "other"
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(config.APIBaseURL) == "" {
		return nil, errors.New("api base url is required")
	}

	store, err := uploadledger.OpenStore(config.UploadLedgerPath)
	if err != nil {
		return nil, err
	}
	var ledger media.Ledger
	if store != nil {
		ledger = store
	}

	handler, err := NewHandler(config, ledger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		ledger: store,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the upload ledger.
func (s *Server) Close() {
	if s == nil || s.ledger == nil {
		return
	}
	if err := s.ledger.Close(); err != nil {
		log.Printf("close upload ledger: %v", err)
	}
}
