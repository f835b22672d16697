package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/firehorseusa/firehorse/internal/services/web/routepath"
)

// RegisterField is one input row on the registration form.
type RegisterField struct {
	Name         string
	LabelKey     string
	HintKey      string
	Type         string
	Value        string
	Error        string
	Autocomplete string
	InputMode    string
	Filter       string
	MaxLength    int
	Required     bool
}

// RegisterView is the registration page state.
type RegisterView struct {
	FormID       string
	Fields       []RegisterField
	AliasState   string
	AliasMessage string
	Message      string
	MessageKind  string
	Succeeded    bool
	RedirectTo   string
	RedirectMs   int64
	RefocusMs    int64
}

// RegisterPage renders the registration form, or the success state when
// the account was created.
func RegisterPage(loc Localizer, view RegisterView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="register"><h1>`)
		h.text(T(loc, "pages.register.heading"))
		h.raw("</h1>")
		if view.Message != "" {
			h.raw(`<p role="alert" id="register-message"`)
			h.attr("class", "server-message server-message-"+view.MessageKind)
			h.raw(">")
			h.text(view.Message)
			h.raw("</p>")
		}
		if view.Succeeded {
			h.raw(`<p class="redirecting"`)
			h.attr("data-redirect-to", view.RedirectTo)
			h.attr("data-redirect-ms", strconv.FormatInt(view.RedirectMs, 10))
			h.raw(">")
			h.text(T(loc, "pages.register.redirecting"))
			h.raw("</p></section>")
			return h.err
		}

		h.raw(`<form method="post" novalidate data-register-form`)
		h.attr("action", routepath.Register)
		h.attr("data-alias-check", routepath.RegisterAliasCheck)
		h.attr("data-refocus-ms", strconv.FormatInt(view.RefocusMs, 10))
		h.attr("data-submitting-label", T(loc, "pages.register.submitting"))
		h.attr("data-checking-label", T(loc, "pages.register.checking_alias"))
		h.raw(`><input type="hidden" name="formId"`)
		h.attr("value", view.FormID)
		h.raw(">")
		for _, field := range view.Fields {
			renderRegisterField(h, loc, field, view)
		}
		h.raw(`<div class="form-actions"><button type="submit" class="button primary">`)
		h.text(T(loc, "pages.register.submit"))
		h.raw(`</button> <a class="button" data-reset`)
		h.href(routepath.Register)
		h.raw(">")
		h.text(T(loc, "pages.register.reset"))
		h.raw("</a></div></form></section>")
		return h.err
	})
}

func renderRegisterField(h *htmlWriter, loc Localizer, field RegisterField, view RegisterView) {
	id := "register-" + field.Name
	errorID := id + "-error"
	h.raw(`<div class="field"`)
	h.attr("data-field", field.Name)
	h.raw("><label")
	h.attr("for", id)
	h.raw(">")
	h.text(T(loc, field.LabelKey))
	h.raw("</label>")
	if field.Type == "password" {
		h.raw(`<div class="password-wrap">`)
	}
	h.raw("<input")
	h.attr("id", id)
	h.attr("name", field.Name)
	h.attr("type", field.Type)
	h.attr("value", field.Value)
	h.attr("aria-describedby", errorID)
	if field.Autocomplete != "" {
		h.attr("autocomplete", field.Autocomplete)
	}
	if field.InputMode != "" {
		h.attr("inputmode", field.InputMode)
	}
	if field.Filter != "" {
		h.attr("data-filter", field.Filter)
	}
	if field.MaxLength > 0 {
		h.attr("maxlength", strconv.Itoa(field.MaxLength))
	}
	h.flag("required", field.Required)
	if field.Error != "" {
		h.raw(` aria-invalid="true"`)
	}
	h.raw(">")
	if field.Type == "password" {
		h.raw(`<button type="button" class="password-toggle" data-password-toggle`)
		h.attr("aria-controls", id)
		h.attr("data-show-label", T(loc, "pages.register.show_password"))
		h.attr("data-hide-label", T(loc, "pages.register.hide_password"))
		h.raw(">")
		h.text(T(loc, "pages.register.show_password"))
		h.raw("</button></div>")
	}
	if field.HintKey != "" {
		h.raw(`<p class="hint">`)
		h.text(T(loc, field.HintKey))
		h.raw("</p>")
	}
	h.raw(`<p class="field-error"`)
	h.attr("id", errorID)
	h.raw(">")
	h.text(field.Error)
	h.raw("</p>")
	if field.Name == "userAlias" {
		h.raw(`<p id="alias-status" class="alias-status" aria-live="polite"`)
		h.attr("data-state", view.AliasState)
		h.raw(">")
		h.text(view.AliasMessage)
		h.raw("</p>")
	}
	h.raw("</div>")
}
