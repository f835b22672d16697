// Package web wires the web command: configuration from environment and
// flags, then the server run loop under telemetry.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/firehorseusa/firehorse/internal/platform/cmd"
	"github.com/firehorseusa/firehorse/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL          string        `env:"WEB_API_BASE_URL" envDefault:"https://rapidcmsdemo.com/api/RapidCMS"`
	UploadURL           string        `env:"WEB_UPLOAD_URL" envDefault:"https://rapidcmsdemo.com/api/RapidCMS/CMSDemoImageLoad"`
	LoginPath           string        `env:"WEB_LOGIN_PATH" envDefault:"/login"`
	RequestTimeout      time.Duration `env:"WEB_REQUEST_TIMEOUT" envDefault:"10s"`
	UploadLedgerPath    string        `env:"WEB_UPLOAD_LEDGER_PATH"`
	TrustForwardedProto bool          `env:"WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig loads FIREHORSE_WEB_* defaults and then applies flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "CMS REST API base URL")
	fs.StringVar(&cfg.UploadURL, "upload-url", cfg.UploadURL, "CMS image upload URL")
	fs.StringVar(&cfg.LoginPath, "login-path", cfg.LoginPath, "Path to redirect to after registration")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Timeout for each CMS call")
	fs.StringVar(&cfg.UploadLedgerPath, "upload-ledger-path", cfg.UploadLedgerPath, "SQLite path for the upload ledger (empty disables it)")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when deciding cookie security")
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIBaseURL,
			UploadURL:           cfg.UploadURL,
			LoginPath:           cfg.LoginPath,
			RequestTimeout:      cfg.RequestTimeout,
			UploadLedgerPath:    cfg.UploadLedgerPath,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
