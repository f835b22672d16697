package register

import (
	"github.com/firehorseusa/firehorse/internal/services/web/platform/device"
	webtemplates "github.com/firehorseusa/firehorse/internal/services/web/templates"
)

type fieldPresentation struct {
	labelKey     string
	hintKey      string
	inputType    string
	autocomplete string
	inputMode    string
	filter       string
	maxLength    int
	required     bool
}

var presentations = map[string]fieldPresentation{
	FieldFirstName:     {labelKey: "pages.register.first_name", inputType: "text", autocomplete: "given-name", filter: "letters", required: true},
	FieldMiddleInitial: {labelKey: "pages.register.middle_initial", inputType: "text", autocomplete: "additional-name", filter: "initial", maxLength: 1},
	FieldLastName:      {labelKey: "pages.register.last_name", inputType: "text", autocomplete: "family-name", filter: "letters", required: true},
	FieldEmail:         {labelKey: "pages.register.email", inputType: "email", autocomplete: "email", inputMode: "email", required: true},
	FieldAlias:         {labelKey: "pages.register.alias", hintKey: "pages.register.alias_hint", inputType: "text", autocomplete: "username", filter: "alias", maxLength: 20, required: true},
	FieldPassword:      {labelKey: "pages.register.password", inputType: "password", autocomplete: "new-password", required: true},
	FieldZip:           {labelKey: "pages.register.zip", inputType: "text", autocomplete: "postal-code", inputMode: "numeric", filter: "zip", maxLength: 5},
	FieldPhone:         {labelKey: "pages.register.phone", inputType: "tel", autocomplete: "tel", inputMode: "tel", filter: "phone", maxLength: 12},
}

// registerPageState is everything one register render needs.
type registerPageState struct {
	formID  string
	outcome Outcome
	alias   AliasCheckResult
	device  device.Class
	// redirectTo is the login path shown after success.
	redirectTo string
	refocus    int64
}

func mapRegisterView(state registerPageState) webtemplates.RegisterView {
	view := webtemplates.RegisterView{
		FormID:       state.formID,
		AliasState:   string(state.alias.State),
		AliasMessage: state.alias.Message,
		Message:      state.outcome.Message,
		RefocusMs:    state.refocus,
	}
	if view.AliasState == "" {
		view.AliasState = string(AliasUnchecked)
	}
	switch state.outcome.State {
	case SubmissionSucceeded:
		view.Succeeded = true
		view.MessageKind = "success"
		view.RedirectTo = state.redirectTo
		view.RedirectMs = state.outcome.RedirectAfter.Milliseconds()
	case SubmissionFailed:
		view.MessageKind = "error"
	case SubmissionSubmitting:
		view.MessageKind = "info"
	}

	touch := state.device.IsTouch()
	for _, name := range FieldOrder {
		p := presentations[name]
		field := webtemplates.RegisterField{
			Name:         name,
			LabelKey:     p.labelKey,
			HintKey:      p.hintKey,
			Type:         p.inputType,
			Value:        state.outcome.Form.Value(name),
			Autocomplete: p.autocomplete,
			Filter:       p.filter,
			MaxLength:    p.maxLength,
			Required:     p.required,
		}
		if touch {
			field.InputMode = p.inputMode
		}
		if name == FieldPassword {
			field.Value = ""
		}
		if state.outcome.Touched {
			field.Error = state.outcome.Errors[name]
		}
		view.Fields = append(view.Fields, field)
	}
	return view
}
