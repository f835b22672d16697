package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// cmsStub answers the CMS endpoints and records request bodies by path.
type cmsStub struct {
	mu     sync.Mutex
	bodies map[string][]string
}

func newCMSStub(t *testing.T) (*cmsStub, *httptest.Server) {
	t.Helper()
	stub := &cmsStub{bodies: map[string][]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.bodies[r.URL.Path] = append(stub.bodies[r.URL.Path], string(body))
		stub.mu.Unlock()
		switch r.URL.Path {
		case "/api/login/check-alias":
			_, _ = io.WriteString(w, `{"ok":true,"exists":false,"message":"Alias is available."}`)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)
	return stub, srv
}

func (s *cmsStub) calls(path string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies[path]...)
}

func newTestHandler(t *testing.T, apiBase string) http.Handler {
	t.Helper()
	h, err := NewHandler(Config{
		APIBaseURL: apiBase,
		Registerer: prometheus.NewRegistry(),
	}, nil)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func TestNewHandlerRequiresValidAPIBase(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{APIBaseURL: "ftp://cms", Registerer: prometheus.NewRegistry()}, nil); err == nil {
		t.Fatal("expected error for non-http api base")
	}
}

func TestHandlerServesPages(t *testing.T) {
	t.Parallel()

	_, cms := newCMSStub(t)
	h := newTestHandler(t, cms.URL+"/api")

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/", wantStatus: http.StatusOK, wantBody: "Welcome to FireHorse USA"},
		{path: "/about", wantStatus: http.StatusOK, wantBody: "About FireHorse USA"},
		{path: "/media", wantStatus: http.StatusOK, wantBody: "Upload an image"},
		{path: "/register", wantStatus: http.StatusOK, wantBody: "Create your account"},
		{path: "/static/site.css", wantStatus: http.StatusOK, wantBody: "--fh-red"},
		{path: "/up", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.wantStatus {
			t.Fatalf("GET %s status = %d, want %d", tc.path, rr.Code, tc.wantStatus)
		}
		if !strings.Contains(rr.Body.String(), tc.wantBody) {
			t.Fatalf("GET %s body missing %q", tc.path, tc.wantBody)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("GET %s missing request id", tc.path)
		}
	}
}

func TestHandlerRedirectsUnknownRoutesHome(t *testing.T) {
	t.Parallel()

	_, cms := newCMSStub(t)
	h := newTestHandler(t, cms.URL+"/api")
	for _, path := range []string{"/login", "/nope", "/a/b/c"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusFound {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusFound)
		}
		if got := rr.Header().Get("Location"); got != "/" {
			t.Fatalf("GET %s Location = %q, want /", path, got)
		}
	}
}

func TestHandlerShowsIdentityFromCookies(t *testing.T) {
	t.Parallel()

	_, cms := newCMSStub(t)
	h := newTestHandler(t, cms.URL+"/api")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "fhUserAuth", Value: url.QueryEscape(`{"userId":42}`)})
	req.AddCookie(&http.Cookie{Name: "useralias", Value: "BOBBYT"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if !strings.Contains(rr.Body.String(), "BOBBYT") {
		t.Fatal("expected signed-in alias in page chrome")
	}
}

func TestHandlerAliasCheckReachesCMS(t *testing.T) {
	t.Parallel()

	stub, cms := newCMSStub(t)
	h := newTestHandler(t, cms.URL+"/api")

	req := httptest.NewRequest(http.MethodPost, "/register/alias-check", strings.NewReader(`{"alias":"validalias99","seq":3}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp struct {
		Seq   uint64 `json:"seq"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Seq != 3 || resp.State != "available" {
		t.Fatalf("response = %+v", resp)
	}
	calls := stub.calls("/api/login/check-alias")
	if len(calls) != 1 || !strings.Contains(calls[0], `"Alias":"VALIDALIAS99"`) {
		t.Fatalf("check-alias calls = %v", calls)
	}
}

func TestHandlerRejectsCrossSiteUploadWithIdentityCookie(t *testing.T) {
	t.Parallel()

	_, cms := newCMSStub(t)
	h := newTestHandler(t, cms.URL+"/api")
	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	req.Header.Set("Origin", "https://evil.example.test")
	req.AddCookie(&http.Cookie{Name: "fhUserAuth", Value: url.QueryEscape(`{"userId":42}`)})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	_, cms := newCMSStub(t)
	h := newTestHandler(t, cms.URL+"/api")
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/about", nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `firehorse_http_requests_total{method="GET",route="/about",status="200"}`) {
		t.Fatalf("metrics missing about request:\n%s", rr.Body.String())
	}
}

func TestRouteLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/":                     "/",
		"/about/":               "/about",
		"/media":                "/media",
		"/register":             "/register",
		"/register/alias-check": "/register/alias-check",
		"/static/site.js":       "/static/",
		"/wp-admin":             "other",
	}
	for path, want := range tests {
		if got := routeLabel(httptest.NewRequest(http.MethodGet, path, nil)); got != want {
			t.Fatalf("routeLabel(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNewServerValidatesConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Config{APIBaseURL: "https://cms.example.test"}); err == nil {
		t.Fatal("expected error without http address")
	}
	if _, err := NewServer(Config{HTTPAddr: "localhost:0"}); err == nil {
		t.Fatal("expected error without api base url")
	}
}

func TestNewServerOpensLedger(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr:         "localhost:0",
		APIBaseURL:       "https://cms.example.test/api",
		UploadLedgerPath: filepath.Join(t.TempDir(), "ledger", "uploads.db"),
		Registerer:       prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()
	if server.ledger == nil {
		t.Fatal("expected ledger to be opened")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr:   "127.0.0.1:0",
		APIBaseURL: "https://cms.example.test/api",
		Registerer: prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := server.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

func TestNilServer(t *testing.T) {
	t.Parallel()

	var server *Server
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
	server.Close()
}
