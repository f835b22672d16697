package pagerender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/firehorseusa/firehorse/internal/services/web/identity"
	flashnotice "github.com/firehorseusa/firehorse/internal/services/web/platform/flash"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

func TestWritePageRendersLayoutWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")
	req = req.WithContext(identity.WithIdentity(req.Context(), identity.Identity{UserID: "42", UserAlias: "BOBBYT"}))
	rec := httptest.NewRecorder()

	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p id="body">content</p>`)
		return err
	})
	if err := WritePage(rec, req, requestmeta.SchemePolicy{}, Page{Title: "About", StatusCode: http.StatusTeapot, Body: body}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	html := rec.Body.String()
	for _, want := range []string{
		`<p id="body">content</p>`,
		`data-device="iOS"`,
		"BOBBYT",
		"About | FireHorse USA",
		strconv.Itoa(time.Now().Year()),
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("body missing %q: %s", want, html)
		}
	}
}

func TestWritePageConsumesFlashNotice(t *testing.T) {
	t.Parallel()

	seed := httptest.NewRecorder()
	flashnotice.Write(seed, httptest.NewRequest(http.MethodPost, "/media", nil), flashnotice.Success("pages.media.uploaded"), requestmeta.SchemePolicy{})

	req := httptest.NewRequest(http.MethodGet, "/media", nil)
	for _, cookie := range seed.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	if err := WritePage(rec, req, requestmeta.SchemePolicy{}, Page{Title: "Media"}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}

	if !strings.Contains(rec.Body.String(), "Image uploaded successfully.") {
		t.Fatalf("expected localized flash notice, got %s", rec.Body.String())
	}
	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == flashnotice.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected flash cookie to be cleared")
	}
}

func TestWritePageExplicitNoticeWins(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/register?lang=es", nil)
	rec := httptest.NewRecorder()
	notice := &webtemplates.Notice{Kind: "error", Message: "Registration failed. Please try again."}
	if err := WritePage(rec, req, requestmeta.SchemePolicy{}, Page{Title: "Registro", Notice: notice}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	html := rec.Body.String()
	if !strings.Contains(html, `lang="es"`) {
		t.Fatalf("expected spanish document, got %s", html)
	}
	if !strings.Contains(html, "Registration failed. Please try again.") {
		t.Fatalf("expected notice, got %s", html)
	}
}

func TestWritePageReturnsRenderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	body := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })
	rec := httptest.NewRecorder()
	err := WritePage(rec, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{}, Page{Body: body})
	if !errors.Is(err, boom) {
		t.Fatalf("WritePage() error = %v, want %v", err, boom)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", rec.Body.String())
	}
}

func TestWritePageNilWriter(t *testing.T) {
	t.Parallel()

	if err := WritePage(nil, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{}, Page{}); err != nil {
		t.Fatalf("WritePage(nil) error = %v", err)
	}
}
