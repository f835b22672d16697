// Package i18n provides locale resolution and message printing for the web service.
package i18n

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/firehorseusa/firehorse/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "fh_lang"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var loadCatalog = sync.OnceValues(func() (*xcatalog.Builder, error) {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return bundle.Builder()
})

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// ParseTag resolves value to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return supported[index], true
}

// Printer returns a message printer for the supplied tag backed by the
// embedded page catalog.
func Printer(tag language.Tag) *message.Printer {
	builder, err := loadCatalog()
	if err != nil || builder == nil {
		return message.NewPrinter(tag)
	}
	return message.NewPrinter(tag, message.Catalog(builder))
}

// CatalogError reports whether the embedded catalog failed to load.
func CatalogError() error {
	_, err := loadCatalog()
	return err
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if r.URL != nil {
		if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return supported[index], false
			}
		}
	}
	return Default(), false
}

// ResolveLocalizer returns the printer and tag string for the request language.
func ResolveLocalizer(r *http.Request) (*message.Printer, string) {
	tag, _ := ResolveTag(r)
	return Printer(tag), tag.String()
}

// PersistSelection stores an explicit ?lang= choice in the language cookie
// so later pages keep it without the query parameter.
func PersistSelection(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tag, persist := ResolveTag(r); persist {
			SetLanguageCookie(w, tag)
		}
		next.ServeHTTP(w, r)
	})
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
