// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/firehorseusa/firehorse/internal/services/web/i18n"
	"github.com/firehorseusa/firehorse/internal/services/web/identity"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/device"
	flashnotice "github.com/firehorseusa/firehorse/internal/services/web/platform/flash"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/requestmeta"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

// Page describes one full-document response.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
	// Notice is shown in place of any pending flash notice.
	Notice *webtemplates.Notice
}

// now is swapped in tests to pin the footer year.
var now = time.Now

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the site layout. The request supplies the
// language, signed-in identity, pending flash notice, and device class.
func WritePage(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	loc, lang := i18n.ResolveLocalizer(r)
	ctx := httpx.RequestContext(r)
	data := webtemplates.LayoutData{
		Title:  page.Title,
		Lang:   lang,
		Alias:  strings.TrimSpace(identity.FromContext(ctx).UserAlias),
		Year:   now().Year(),
		Notice: page.Notice,
		Loc:    loc,
	}
	if r != nil {
		if r.URL != nil {
			data.Path = r.URL.Path
		}
		data.Device = string(device.Classify(r.UserAgent()))
	}
	if flash := resolveFlashNotice(w, r, policy, loc); flash != nil && data.Notice == nil {
		data.Notice = flash
	}

	var buf bytes.Buffer
	if err := webtemplates.Layout(data).Render(templ.WithChildren(ctx, body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashNotice(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, loc webtemplates.Localizer) *webtemplates.Notice {
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		message = strings.TrimSpace(notice.Key)
	}
	if message == "" {
		return nil
	}
	return &webtemplates.Notice{
		Kind:    string(notice.Kind),
		Message: message,
	}
}
