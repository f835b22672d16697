package home

import (
	"net/http"

	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.About, h.handleAbout)
	mux.HandleFunc(http.MethodGet+" "+routepath.AboutPrefix+"{$}", h.handleAbout)
	mux.HandleFunc(routepath.Root, h.handleFallback)
}
