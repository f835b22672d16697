package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// Notice is a one-time status banner shown above page content.
type Notice struct {
	Kind    string
	Message string
}

// LayoutData carries the site chrome for one page render.
type LayoutData struct {
	Title  string
	Lang   string
	Path   string
	Alias  string
	Device string
	Year   int
	Notice *Notice
	Loc    Localizer
}

type navLink struct {
	path string
	key  string
}

var navLinks = []navLink{
	{path: routepath.Root, key: "core.nav.home"},
	{path: routepath.Media, key: "core.nav.media"},
	{path: routepath.About, key: "core.nav.about"},
	{path: routepath.Register, key: "core.nav.register"},
}

var languageLinks = []string{"en-US", "es"}

// Layout renders the full document around the children in ctx.
func Layout(data LayoutData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		loc := data.Loc
		lang := data.Lang
		if lang == "" {
			lang = "en-US"
		}

		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(T(loc, "core.title_format", data.Title))
		h.raw("</title><meta name=\"description\"")
		h.attr("content", T(loc, "core.meta_description"))
		h.raw(`><link rel="stylesheet" href="/static/site.css"><script src="/static/site.js" defer></script></head>`)

		h.raw("<body")
		if data.Device != "" {
			h.attr("data-device", data.Device)
		}
		h.raw(`><header class="site-header"><a class="brand"`)
		h.href(routepath.Root)
		h.raw(">")
		h.text(T(loc, "core.site_name"))
		h.raw(`</a><nav class="site-nav"><ul>`)
		for _, link := range navLinks {
			h.raw("<li><a")
			h.href(link.path)
			if link.path == data.Path {
				h.raw(` aria-current="page"`)
			}
			h.raw(">")
			h.text(T(loc, link.key))
			h.raw("</a></li>")
		}
		h.raw(`</ul></nav><div class="site-account">`)
		if data.Alias != "" {
			h.raw(`<span class="signed-in">`)
			h.text(T(loc, "core.nav.signed_in_as", data.Alias))
			h.raw("</span>")
		} else {
			h.raw("<a")
			h.href(routepath.Login)
			h.raw(">")
			h.text(T(loc, "core.nav.login"))
			h.raw("</a>")
		}
		h.raw(`</div><div class="site-lang"`)
		h.attr("aria-label", T(loc, "core.lang.label"))
		h.raw(">")
		for _, tag := range languageLinks {
			h.raw("<a")
			h.href(routepath.WithLang(pathOrRoot(data.Path), tag))
			h.attr("hreflang", tag)
			if tag == lang {
				h.raw(` aria-current="true"`)
			}
			h.raw(">")
			h.text(T(loc, "core.lang."+tag))
			h.raw("</a>")
		}
		h.raw("</div></header><main>")
		if data.Notice != nil && data.Notice.Message != "" {
			h.raw(`<p role="status"`)
			h.attr("class", "notice notice-"+data.Notice.Kind)
			h.raw(">")
			h.text(data.Notice.Message)
			h.raw("</p>")
		}
		h.child(ctx, templ.GetChildren(ctx))
		h.raw(`</main><footer class="site-footer"><p>`)
		h.text(T(loc, "core.footer.copyright", data.Year))
		h.raw("</p></footer></body></html>")
		return h.err
	})
}

func pathOrRoot(path string) string {
	if path == "" {
		return routepath.Root
	}
	return path
}

// statusText renders a status code for error headings.
func statusText(statusCode int) string {
	return strconv.Itoa(statusCode)
}
