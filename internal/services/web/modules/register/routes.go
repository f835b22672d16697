package register

import (
	"net/http"

	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleForm)
	mux.HandleFunc(http.MethodGet+" "+routepath.RegisterPrefix+"{$}", h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Register, h.handleSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.RegisterPrefix+"{$}", h.handleSubmit)
	mux.HandleFunc(http.MethodPost+" "+routepath.RegisterAliasCheck, h.handleAliasCheck)
	mux.HandleFunc(routepath.RegisterPrefix+"{rest...}", h.WriteNotFound)
}
