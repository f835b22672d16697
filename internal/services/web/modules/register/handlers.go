package register

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/firehorseusa/firehorse/internal/services/web/platform/errors"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/httpx"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/modulehandler"
	"github.com/firehorseusa/firehorse/internal/services/web/platform/pagerender"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

const maxFormBytes = 64 << 10

type handlers struct {
	modulehandler.Base
	service   service
	loginPath string
	refocus   time.Duration
}

func newHandlers(s service, base modulehandler.Base, loginPath string, refocus time.Duration) handlers {
	return handlers{Base: base, service: s, loginPath: loginPath, refocus: refocus}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	h.writeRegisterPage(w, r, http.StatusOK, registerPageState{formID: newFormID()})
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse registration form"))
		return
	}
	formID, state := h.service.forms.get(r.PostForm.Get("formId"))
	form := formFromValues(r.PostForm)
	if form.UserAlias != state.alias.Alias() {
		state.alias.Edit()
	}

	outcome := state.submission.Submit(httpx.RequestContext(r), form)
	page := registerPageState{formID: formID, outcome: outcome, alias: state.alias.Result()}

	status := http.StatusOK
	switch outcome.State {
	case SubmissionIdle:
		status = http.StatusBadRequest
	case SubmissionSubmitting:
		status = http.StatusConflict
		loc, _ := h.PageLocalizer(r)
		page.outcome.Message = webtemplates.T(loc, "pages.register.submitting")
	case SubmissionFailed:
		status = http.StatusBadGateway
	case SubmissionSucceeded:
		h.service.forms.drop(formID)
		page.alias = AliasCheckResult{State: AliasUnchecked}
		httpx.SetRefresh(w, outcome.RedirectAfter, h.loginPath)
	}
	h.writeRegisterPage(w, r, status, page)
}

func (h handlers) writeRegisterPage(w http.ResponseWriter, r *http.Request, status int, state registerPageState) {
	loc, _ := h.PageLocalizer(r)
	state.device = h.Device(r)
	state.redirectTo = h.loginPath
	state.refocus = h.refocus.Milliseconds()
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "pages.register.title"),
		StatusCode: status,
		Body:       webtemplates.RegisterPage(loc, mapRegisterView(state)),
	})
}

// aliasCheckRequest is the blur-triggered check sent by the page script.
type aliasCheckRequest struct {
	FormID string `json:"formId"`
	Alias  string `json:"alias"`
	Seq    uint64 `json:"seq"`
}

// aliasCheckResponse echoes seq so the page can drop out-of-order replies.
type aliasCheckResponse struct {
	Seq       uint64 `json:"seq"`
	FormID    string `json:"formId"`
	Alias     string `json:"alias"`
	State     string `json:"state"`
	Message   string `json:"message"`
	RefocusMs int64  `json:"refocusMs"`
	Stale     bool   `json:"stale"`
}

func (h handlers) handleAliasCheck(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAliasCheck(w, r)
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid alias check request")
		return
	}
	formID, state := h.service.forms.get(req.FormID)
	alias := FilterAlias(req.Alias)
	if alias != state.alias.Alias() {
		state.submission.Edit()
	}
	result, applied := state.alias.Blur(httpx.RequestContext(r), alias)
	_ = httpx.WriteJSON(w, http.StatusOK, aliasCheckResponse{
		Seq:       req.Seq,
		FormID:    formID,
		Alias:     alias,
		State:     string(result.State),
		Message:   result.Message,
		RefocusMs: result.RefocusAfter.Milliseconds(),
		Stale:     !applied,
	})
}

func decodeAliasCheck(w http.ResponseWriter, r *http.Request) (aliasCheckRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if httpx.IsJSONRequest(r) {
		var req aliasCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			return aliasCheckRequest{}, err
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return aliasCheckRequest{}, err
	}
	return aliasCheckFromValues(r.PostForm)
}

func aliasCheckFromValues(values url.Values) (aliasCheckRequest, error) {
	req := aliasCheckRequest{
		FormID: values.Get("formId"),
		Alias:  values.Get("alias"),
	}
	if raw := strings.TrimSpace(values.Get("seq")); raw != "" {
		seq, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return aliasCheckRequest{}, err
		}
		req.Seq = seq
	}
	return req, nil
}
