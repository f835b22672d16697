// Package cmsapi is the HTTP client for the remote RapidCMS REST API that
// owns FireHorse accounts and media.
package cmsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/firehorseusa/firehorse/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/firehorseusa/firehorse/internal/services/web/integration/cmsapi"

	createAccountPath = "/login/create"
	checkAliasPath    = "/login/check-alias"

	maxResponseBytes = 1 << 20
)

// Operation names used for spans and metrics.
const (
	OpCreateAccount = "create_account"
	OpCheckAlias    = "check_alias"
	OpUploadImage   = "upload_image"
)

// Observer receives one observation per remote call.
type Observer interface {
	ObserveRemote(operation string, outcome string, elapsed time.Duration)
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. https://rapidcmsdemo.com/api/RapidCMS.
	BaseURL string
	// UploadURL is the full image upload endpoint. Empty derives it from BaseURL.
	UploadURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
}

// Client calls the CMS REST endpoints.
type Client struct {
	baseURL   string
	uploadURL string
	timeout   time.Duration
	http      *http.Client
	observer  Observer
	tracer    trace.Tracer
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := validateURL(base); err != nil {
		return nil, fmt.Errorf("cms base url: %w", err)
	}
	upload := strings.TrimSpace(cfg.UploadURL)
	if upload == "" {
		upload = base + "/CMSDemoImageLoad"
	}
	if err := validateURL(upload); err != nil {
		return nil, fmt.Errorf("cms upload url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.RemoteRequest
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL:   base,
		uploadURL: upload,
		timeout:   timeout,
		http:      client,
		observer:  cfg.Observer,
		tracer:    otel.Tracer(tracerName),
	}, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("scheme %q is not http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

// AccountRequest is the registration body. Optional fields are omitted
// when empty.
type AccountRequest struct {
	FirstName     string `json:"FirstName"`
	MiddleInitial string `json:"MiddleInitial,omitempty"`
	LastName      string `json:"LastName"`
	Email         string `json:"Email"`
	UserAlias     string `json:"UserAlias"`
	Password      string `json:"Password"`
	Zip           string `json:"Zip,omitempty"`
	PhoneNum      string `json:"PhoneNum,omitempty"`
}

// AliasAvailability is the alias check response.
type AliasAvailability struct {
	OK      bool   `json:"ok"`
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

// ImageUpload is the media upload body.
type ImageUpload struct {
	UserID        int64  `json:"userId"`
	UserAlias     string `json:"userAlias"`
	ImageBase64   string `json:"imageBase64"`
	ImageFileName string `json:"imageFileName"`
	ImageMimeType string `json:"imageMimeType"`
}

// StatusError reports a non-2xx response. Body holds the raw response so
// callers can decode the CMS error shapes.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cms %s returned status %d", e.Operation, e.StatusCode)
}

// CreateAccount registers a new account. Any 2xx is success and the body
// is ignored.
func (c *Client) CreateAccount(ctx context.Context, req AccountRequest) error {
	_, err := c.postJSON(ctx, OpCreateAccount, c.baseURL+createAccountPath, req)
	return err
}

// CheckAlias asks whether alias is already taken.
func (c *Client) CheckAlias(ctx context.Context, alias string) (AliasAvailability, error) {
	body, err := c.postJSON(ctx, OpCheckAlias, c.baseURL+checkAliasPath, struct {
		Alias string `json:"Alias"`
	}{Alias: alias})
	if err != nil {
		return AliasAvailability{}, err
	}
	var result AliasAvailability
	if err := json.Unmarshal(body, &result); err != nil {
		return AliasAvailability{}, fmt.Errorf("decode %s response: %w", OpCheckAlias, err)
	}
	return result, nil
}

// UploadImage sends one base64 encoded image.
func (c *Client) UploadImage(ctx context.Context, upload ImageUpload) error {
	_, err := c.postJSON(ctx, OpUploadImage, c.uploadURL, upload)
	return err
}

func (c *Client) postJSON(ctx context.Context, operation string, endpoint string, payload any) (body []byte, err error) {
	if c == nil {
		return nil, errors.New("cms client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "cms."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		if c.observer != nil {
			c.observer.ObserveRemote(operation, outcome, time.Since(start))
		}
	}()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", operation, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", operation, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
