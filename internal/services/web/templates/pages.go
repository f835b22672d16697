package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// HomePage renders the landing content.
func HomePage(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="hero"><h1>`)
		h.text(T(loc, "pages.home.heading"))
		h.raw("</h1><p>")
		h.text(T(loc, "pages.home.tagline"))
		h.raw(`</p><p class="actions"><a class="button primary"`)
		h.href(routepath.Register)
		h.raw(">")
		h.text(T(loc, "pages.home.cta_register"))
		h.raw(`</a> <a class="button"`)
		h.href(routepath.Media)
		h.raw(">")
		h.text(T(loc, "pages.home.cta_media"))
		h.raw("</a></p></section>")
		return h.err
	})
}

// AboutPage renders the about content.
func AboutPage(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="about"><h1>`)
		h.text(T(loc, "pages.about.heading"))
		h.raw("</h1><p>")
		h.text(T(loc, "pages.about.body"))
		h.raw("</p></section>")
		return h.err
	})
}

// ErrorPageTitle returns the browser title for error pages.
func ErrorPageTitle(loc Localizer) string {
	return T(loc, "core.error.title")
}

// ErrorState renders the body of an error page.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section id="error-state" class="error-state"><h1>`)
		h.text(statusText(statusCode) + " " + T(loc, "core.error.title"))
		h.raw("</h1><p>")
		if statusCode == http.StatusNotFound {
			h.text(T(loc, "core.error.not_found"))
		} else {
			h.text(T(loc, "core.error.internal"))
		}
		h.raw("</p><p><a")
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(loc, "core.error.back_home"))
		h.raw("</a></p></section>")
		return h.err
	})
}
