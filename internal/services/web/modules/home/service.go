package home

import (
	"net/http"
	"net/url"

	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

type service struct {
	fallback string
}

func newService() service {
	return service{fallback: routepath.Root}
}

// fallbackTarget resolves where an unknown path lands. An explicit language
// choice survives the redirect.
func (s service) fallbackTarget(r *http.Request) string {
	if r == nil || r.URL == nil {
		return s.fallback
	}
	lang := r.URL.Query().Get(routepath.LangQueryKey)
	if lang == "" {
		return s.fallback
	}
	return s.fallback + "?" + url.Values{routepath.LangQueryKey: {lang}}.Encode()
}

// fallbackStatus keeps GET as GET and turns other methods into a GET of the
// target.
func fallbackStatus(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
