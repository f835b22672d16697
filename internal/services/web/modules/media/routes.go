package media

import (
	"net/http"

	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Media, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.MediaPrefix+"{$}", h.handlePage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Media, h.handleUpload)
	mux.HandleFunc(http.MethodPost+" "+routepath.MediaPrefix+"{$}", h.handleUpload)
	mux.HandleFunc(routepath.MediaPrefix+"{rest...}", h.WriteNotFound)
}
