// Package modulehandler provides a composable base for web module handlers.
//
// Modules share request-scoped helpers for localization, identity, page
// rendering, flash notices, and error handling. Handlers embed Base rather
// than duplicating that scaffold.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/firehorseusa/firehorse/internal/services/web/i18n"
	"github.com/firehorseusa/firehorse/internal/services/web/identity"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/device"
	flashnotice "github.com/firehorseusa/firehorse/internal/services/web/platform/flash"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/pagerender"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/weberror"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

// Base carries the request policy shared by module handlers.
type Base struct {
	policy requestmeta.SchemePolicy
}

// NewBase builds a handler base for the given scheme policy.
func NewBase(policy requestmeta.SchemePolicy) Base {
	return Base{policy: policy}
}

// NewTestBase builds a handler base with the zero policy.
func NewTestBase() Base {
	return Base{}
}

// Policy returns the scheme policy used for cookies.
func (b Base) Policy() requestmeta.SchemePolicy {
	return b.policy
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(r *http.Request) (webtemplates.Localizer, string) {
	return i18n.ResolveLocalizer(r)
}

// Identity returns the identity resolved by the request middleware.
func (b Base) Identity(r *http.Request) identity.Identity {
	return identity.FromContext(httpx.RequestContext(r))
}

// Device classifies the requesting browser.
func (b Base) Device(r *http.Request) device.Class {
	if r == nil {
		return device.Other
	}
	return device.Classify(r.UserAgent())
}

// WritePage renders a full page inside the site layout.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, b.policy, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.policy)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound, b.policy)
}

// RedirectWithNotice stores notice for the next page and redirects to
// location (post/redirect/get).
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flashnotice.Notice) {
	if strings.TrimSpace(notice.Key) != "" {
		flashnotice.Write(w, r, notice, b.policy)
	}
	httpx.WriteRedirect(w, r, location)
}
