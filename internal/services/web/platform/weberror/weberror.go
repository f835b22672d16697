// Package weberror renders shared error responses for web modules.
package weberror

import (
	"log"
	"net/http"
	"strings"

	"github.com/firehorseusa/firehorse/internal/services/web/i18n"
	apperrors "github.com/firehorseusa/firehorse/internal/services/web/platform/errors"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/pagerender"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status should use the error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteErrorPage writes a localized full-page error response.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := i18n.ResolveLocalizer(r)
	err := pagerender.WritePage(w, r, policy, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(loc),
		StatusCode: statusCode,
		Body:       webtemplates.ErrorState(statusCode, loc),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response. JSON
// callers get a JSON body; browsers get the error page or plain text.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		log.Printf("module error method=%s path=%s request_id=%s err=%v", requestMethod(r), requestPath(r), httpx.RequestIDFrom(r), err)
	}
	loc, _ := i18n.ResolveLocalizer(r)
	if httpx.IsJSONRequest(r) {
		_ = httpx.WriteJSONError(w, statusCode, PublicMessage(loc, err))
		return
	}
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode, policy)
		return
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}

func requestMethod(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Method
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
