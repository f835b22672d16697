package weberror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/firehorseusa/firehorse/internal/services/web/i18n"
	apperrors "github.com/firehorseusa/firehorse/internal/services/web/platform/errors"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
)

func TestWriteModuleErrorRendersErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/media/missing", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), requestmeta.SchemePolicy{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if body := rr.Body.String(); !strings.Contains(body, `id="error-state"`) {
		t.Fatalf("body missing error state marker: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), requestmeta.SchemePolicy{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("body = %q, want generic bad-request message", body)
	}
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorWritesJSONForJSONRequests(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/register/alias-check", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindUnavailable, "gateway down"), requestmeta.SchemePolicy{})
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != http.StatusText(http.StatusServiceUnavailable) {
		t.Fatalf("error = %q", payload["error"])
	}
}

func TestWriteErrorPageCoercesNonErrorStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteErrorPage(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, requestmeta.SchemePolicy{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := i18n.Printer(i18n.Default())
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "localized key", err: apperrors.EK(apperrors.KindNotFound, "core.error.not_found", "raw"), want: "The page you requested could not be found."},
		{name: "unknown key falls back to status", err: apperrors.EK(apperrors.KindUpstream, "missing.key", "raw"), want: http.StatusText(http.StatusBadGateway)},
		{name: "untyped", err: errors.New("secret"), want: http.StatusText(http.StatusInternalServerError)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PublicMessage(loc, tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
