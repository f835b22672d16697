package home

import (
	"net/http"

	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/pagerender"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(r)
	h.WritePage(w, r, pagerender.Page{
		Title: webtemplates.T(loc, "pages.home.title"),
		Body:  webtemplates.HomePage(loc),
	})
}

func (h handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(r)
	h.WritePage(w, r, pagerender.Page{
		Title: webtemplates.T(loc, "pages.about.title"),
		Body:  webtemplates.AboutPage(loc),
	})
}

func (h handlers) handleFallback(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.service.fallbackTarget(r), fallbackStatus(r.Method))
}
