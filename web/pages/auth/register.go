package auth

import (
	"html"

	"github.com/rohanthewiz/element"

	"thelab/form"
	"thelab/models"
	"thelab/web/pages/shared"
	"thelab/web/session"
)

// GoogleScriptURL loads the Google Identity Services button.
const GoogleScriptURL = "https://accounts.google.com/gsi/client"

// RegisterPage represents the sign-up page for one session.
type RegisterPage struct {
	shared.Page
	Catalog        models.Catalog
	View           session.View
	GoogleClientID string // Google button is rendered only when set
}

// NewRegisterPage creates a new register page
func NewRegisterPage(catalog models.Catalog, view session.View, googleClientID string) RegisterPage {
	return RegisterPage{
		Page:           shared.Page{Title: "THE LAB - Sign Up"},
		Catalog:        catalog,
		View:           view,
		GoogleClientID: googleClientID,
	}
}

// Render generates the HTML for the registration page
func (p RegisterPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return "<!DOCTYPE html>" + b.String()
}

func (p RegisterPage) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(p.Title),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css"),
		b.Wrap(func() {
			if p.GoogleClientID != "" {
				b.Script("src", GoogleScriptURL, "async", "async", "defer", "defer").R()
			}
		}),
	)
}

func (p RegisterPage) renderBody(b *element.Builder) any {
	st := p.View.State

	return b.Body().R(
		element.RenderComponents(b, p.Banner()),
		b.Div("class", "sign-up").R(
			b.Div("class", "sign-up__form-wrapper", "role", "main").R(
				b.H1("class", "sign-up__title").T("Sign up"),

				element.RenderComponents(b, Notices{Items: p.View.Notices}),

				b.Form("class", "sign-up-form", "id", "sign-up-form", "method", "post",
					"action", "/sign-up", "novalidate", "novalidate").R(
					element.ForEach(p.Catalog.Fields(), func(f models.FieldDescriptor) {
						element.RenderComponents(b, FieldGroup{Field: f, State: st})
					}),

					// Password visibility switch, handled client side
					b.Div("class", "form-check form-switch mb-3").R(
						b.Input(disableWhen(st.IsSubmitting, "class", "form-check-input", "type", "checkbox",
							"role", "switch", "id", "set-password-visible")...),
						b.Label("class", "form-check-label", "for", "set-password-visible").T("Show password"),
					),

					p.renderSubmit(b, st),
				),

				b.Wrap(func() {
					if p.GoogleClientID != "" {
						b.Div("class", "sign-up__google", "id", "google-sign-in",
							"data-client-id", html.EscapeString(p.GoogleClientID)).R()
					}
				}),

				element.RenderComponents(b, p.Footer()),
			),
		),

		b.Script("src", "/static/js/signup.js").R(),
	)
}

func (p RegisterPage) renderSubmit(b *element.Builder, st form.FormState) any {
	label := "Submit"
	if st.IsSubmitting {
		label = "Submitting..."
	}
	return b.Button(disableWhen(!st.CanSubmit, "type", "submit",
		"class", "sign-up__submit-button btn btn-primary btn-lg", "id", "submit-btn")...).T(label)
}

// FieldGroup renders one input with its label and inline error.
type FieldGroup struct {
	Field models.FieldDescriptor
	State form.FormState
}

// Render implements the element.Component interface
func (g FieldGroup) Render(b *element.Builder) any {
	f := g.Field
	value := ""
	if !f.IsSecret() {
		value = g.State.Values.Get(f.ID)
	}

	attrs := []string{
		"type", string(f.Kind),
		"class", inputClass(g.State, f.ID),
		"id", f.InputID(),
		"name", string(f.ID),
		"placeholder", html.EscapeString(f.Placeholder),
		"value", html.EscapeString(value),
		"data-field", string(f.ID),
	}
	if f.IsSecret() {
		attrs = append(attrs, "data-secret", "true", "autocomplete", "new-password")
	}

	b.Div("class", "form-floating mb-3").R(
		b.Input(disableWhen(g.State.IsSubmitting, attrs...)...),
		b.Label("for", f.InputID()).T(html.EscapeString(f.Label)),
		b.Small("class", "text-danger sign-up-form__error-message", "id", f.InputID()+"-error").
			T(html.EscapeString(g.State.Errors[f.ID])),
	)
	return nil
}

// Notices renders the notifications produced by the last outcome.
type Notices struct {
	Items []form.Notification
}

// Render implements the element.Component interface
func (n Notices) Render(b *element.Builder) any {
	b.Div("class", "notifications", "id", "notifications", "aria-live", "polite").R(
		element.ForEach(n.Items, func(item form.Notification) {
			b.Div("class", "toast toast--"+string(item.Kind), "role", "alert").
				T(html.EscapeString(item.Message))
		}),
	)
	return nil
}

// inputClass marks touched fields valid or invalid; untouched fields stay neutral.
func inputClass(st form.FormState, key models.FieldKey) string {
	if !st.Touched[key] {
		return "form-control"
	}
	if st.Errors.Has(key) {
		return "form-control is-invalid"
	}
	return "form-control is-valid"
}

func disableWhen(disabled bool, attrs ...string) []string {
	if disabled {
		attrs = append(attrs, "disabled", "disabled")
	}
	return attrs
}
