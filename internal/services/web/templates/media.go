package templates

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// MediaUpload is one row of the recent uploads list.
type MediaUpload struct {
	FileName   string
	UploadedAt time.Time
}

// MediaView is the upload page state.
type MediaView struct {
	LoggedIn bool
	MaxBytes int64
	Recent   []MediaUpload
}

// MediaPage renders the image upload form.
func MediaPage(loc Localizer, view MediaView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="media"><h1>`)
		h.text(T(loc, "pages.media.heading"))
		h.raw("</h1>")
		if !view.LoggedIn {
			h.raw(`<p class="notice notice-info">`)
			h.text(T(loc, "pages.media.login_required"))
			h.raw("</p>")
		}
		h.raw(`<form method="post" enctype="multipart/form-data" data-media-form`)
		h.attr("action", routepath.Media)
		h.attr("data-uploading-label", T(loc, "pages.media.uploading"))
		h.raw(`><label for="media-image">`)
		h.text(T(loc, "pages.media.choose"))
		h.raw(`</label><input id="media-image" name="image" type="file" accept="image/*" data-preview-target="media-preview"`)
		h.attr("data-max-bytes", strconv.FormatInt(view.MaxBytes, 10))
		h.raw(`><img id="media-preview" class="preview" hidden`)
		h.attr("alt", T(loc, "pages.media.preview_alt"))
		h.raw(`><button type="submit" class="button primary"`)
		h.flag("disabled", !view.LoggedIn)
		h.raw(">")
		h.text(T(loc, "pages.media.upload"))
		h.raw("</button></form>")
		if len(view.Recent) > 0 {
			h.raw(`<section class="recent-uploads"><h2>`)
			h.text(T(loc, "pages.media.recent"))
			h.raw(`</h2><ul id="recent-uploads">`)
			for _, upload := range view.Recent {
				h.raw(`<li><span class="file-name">`)
				h.text(upload.FileName)
				h.raw(`</span> <time`)
				h.attr("datetime", upload.UploadedAt.UTC().Format(time.RFC3339))
				h.raw(">")
				h.text(upload.UploadedAt.UTC().Format("2006-01-02 15:04"))
				h.raw("</time></li>")
			}
			h.raw("</ul></section>")
		}
		h.raw("</section>")
		return h.err
	})
}
