// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root               = "/"
	Login              = "/login"
	Health             = "/up"
	Metrics            = "/metrics"
	StaticPrefix       = "/static/"
	About              = "/about"
	AboutPrefix        = "/about/"
	Media              = "/media"
	MediaPrefix        = "/media/"
	Register           = "/register"
	RegisterPrefix     = "/register/"
	RegisterAliasCheck = "/register/alias-check"
	LangQueryKey       = "lang"
)

// WithLang returns path with the language selector query applied.
func WithLang(path string, lang string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = Root
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return path
	}
	return path + "?" + url.Values{LangQueryKey: []string{lang}}.Encode()
}
