package media

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	flashnotice "github.com/firehorseusa/firehorse/internal/services/web/platform/flash"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/pagerender"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
	"github.com/gabriel-vasile/mimetype"
)

const (
	imageField = "image"
	// multipartOverhead is the allowance for boundaries and headers on top
	// of the file itself.
	multipartOverhead = 1 << 20
)

const (
	noticeLoginRequired = "pages.media.login_required"
	noticeNoFile        = "pages.media.no_file"
	noticeUploaded      = "pages.media.uploaded"
	noticeFailed        = "pages.media.failed"
	noticeNotImage      = "pages.media.not_image"
	noticeTooLarge      = "pages.media.too_large"
)

var (
	errNoFile   = errors.New("no file selected")
	errTooLarge = errors.New("file too large")
	errNotImage = errors.New("file is not an image")
)

type handlers struct {
	modulehandler.Base
	service  service
	maxBytes int64
}

func newHandlers(s service, base modulehandler.Base, maxBytes int64) handlers {
	return handlers{Base: base, service: s, maxBytes: maxBytes}
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	loc, _ := h.PageLocalizer(r)
	id := h.Identity(r)
	view := webtemplates.MediaView{LoggedIn: id.LoggedIn(), MaxBytes: h.maxBytes}
	for _, record := range h.service.recent(httpx.RequestContext(r), id) {
		view.Recent = append(view.Recent, webtemplates.MediaUpload{FileName: record.FileName, UploadedAt: record.UploadedAt})
	}
	h.WritePage(w, r, pagerender.Page{
		Title: webtemplates.T(loc, "pages.media.title"),
		Body:  webtemplates.MediaPage(loc, view),
	})
}

func (h handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	id := h.Identity(r)
	if !id.LoggedIn() {
		h.RedirectWithNotice(w, r, routepath.Media, flashnotice.Failure(noticeLoginRequired))
		return
	}

	file, err := h.readImage(w, r)
	if err != nil {
		h.RedirectWithNotice(w, r, routepath.Media, flashnotice.Failure(readFailureNotice(err)))
		return
	}

	name, err := h.service.upload(httpx.RequestContext(r), id, file)
	if err != nil {
		log.Printf("media upload failed alias=%s request_id=%s err=%v", id.UserAlias, httpx.RequestIDFrom(r), err)
		h.RedirectWithNotice(w, r, routepath.Media, flashnotice.Failure(noticeFailed))
		return
	}
	log.Printf("media uploaded alias=%s file=%s bytes=%d", id.UserAlias, name, len(file.Data))
	h.RedirectWithNotice(w, r, routepath.Media, flashnotice.Success(noticeUploaded))
}

// readImage pulls the single image part out of the multipart body and
// checks its size and detected type.
func (h handlers) readImage(w http.ResponseWriter, r *http.Request) (File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return File{}, errTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return File{}, errNoFile
		}
		return File{}, err
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	part, header, err := r.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return File{}, errNoFile
		}
		return File{}, err
	}
	defer part.Close()
	if header.Size == 0 {
		return File{}, errNoFile
	}
	if header.Size > h.maxBytes {
		return File{}, errTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(part, h.maxBytes+1))
	if err != nil {
		return File{}, err
	}
	if int64(len(data)) > h.maxBytes {
		return File{}, errTooLarge
	}
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return File{}, errNotImage
	}
	return File{Name: header.Filename, MimeType: detected.String(), Data: data}, nil
}

func readFailureNotice(err error) string {
	switch {
	case errors.Is(err, errNoFile):
		return noticeNoFile
	case errors.Is(err, errTooLarge):
		return noticeTooLarge
	case errors.Is(err, errNotImage):
		return noticeNotImage
	default:
		return noticeFailed
	}
}
