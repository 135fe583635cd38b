package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"

	"thelab/form"
	"thelab/models"
	"thelab/web/session"
)

// Field events accepted by UpdateField.
const (
	EventChange = "change"
	EventBlur   = "blur"
)

// FieldInput is the body of POST /api/v1/sign-up/field.
type FieldInput struct {
	Field models.FieldKey `json:"field"`
	Value string          `json:"value"`
	Event string          `json:"event"` // change (default) or blur
}

// CredentialInput is the body of POST /api/v1/sign-up/google.
type CredentialInput struct {
	Credential string `json:"credential"`
}

// StateOutput is the client view of a session's form. Secret values are never
// echoed back.
type StateOutput struct {
	Values        models.FormValues        `json:"values"`
	Touched       map[models.FieldKey]bool `json:"touched"`
	Errors        models.FieldErrors       `json:"errors"`
	IsValid       bool                     `json:"isValid"`
	IsDirty       bool                     `json:"isDirty"`
	IsSubmitting  bool                     `json:"isSubmitting"`
	CanSubmit     bool                     `json:"canSubmit"`
	Notifications []form.Notification      `json:"notifications,omitempty"`
}

// ToStateOutput converts a session view for the API.
func ToStateOutput(catalog models.Catalog, v session.View) StateOutput {
	values := make(models.FormValues, len(v.State.Values))
	for key, val := range v.State.Values {
		if f, ok := catalog.Field(key); ok && f.IsSecret() {
			continue
		}
		values[key] = val
	}
	return StateOutput{
		Values:        values,
		Touched:       v.State.Touched,
		Errors:        v.State.Errors,
		IsValid:       v.State.IsValid,
		IsDirty:       v.State.IsDirty,
		IsSubmitting:  v.State.IsSubmitting,
		CanSubmit:     v.State.CanSubmit,
		Notifications: v.Notices,
	}
}

func currentSession(ctx rweb.Context) (*session.Session, error) {
	s, ok := session.FromContext(ctx)
	if !ok {
		err := serr.New("no session on request")
		logger.LogErr(err, "sign-up api", "path", ctx.Request().Path())
		return nil, writeError(ctx, http.StatusInternalServerError, "session unavailable")
	}
	return s, nil
}

// GetState handles GET /api/v1/sign-up/state
func GetState(ctx rweb.Context) error {
	s, err := currentSession(ctx)
	if s == nil {
		return err
	}
	return writeSuccess(ctx, http.StatusOK, ToStateOutput(s.Catalog(), s.View()))
}

// UpdateField applies one edit or blur event.
// POST /api/v1/sign-up/field
//
// Request body:
//
//	{ "field": "email", "value": "john@mail.com", "event": "change" }
//
// Success (200): the resulting state. Edits are ignored while submitting.
//
// Errors:
//   - 400: invalid body, unknown field or event
func UpdateField(ctx rweb.Context) error {
	s, err := currentSession(ctx)
	if s == nil {
		return err
	}

	var input FieldInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode field event"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if !s.Catalog().Has(input.Field) {
		return writeError(ctx, http.StatusBadRequest, "unknown field: "+string(input.Field))
	}

	switch input.Event {
	case "", EventChange:
		s.Edit(func(m *form.Machine) { m.SetValue(input.Field, input.Value) })
	case EventBlur:
		s.Edit(func(m *form.Machine) { m.Blur(input.Field) })
	default:
		return writeError(ctx, http.StatusBadRequest, "unknown event: "+input.Event)
	}

	return writeSuccess(ctx, http.StatusOK, ToStateOutput(s.Catalog(), s.View()))
}

// SubmitForm submits the session's form with the local strategy.
// POST /api/v1/sign-up/submit
//
// Success (200): state after the outcome was presented, with notifications.
//
// Errors:
//   - 422: the form is invalid, pristine or already submitting (state included)
func SubmitForm(ctx rweb.Context) error {
	s, err := currentSession(ctx)
	if s == nil {
		return err
	}

	if _, ok := s.Submit(context.Background()); !ok {
		return writeRefused(ctx, http.StatusUnprocessableEntity, "form is not ready to submit",
			ToStateOutput(s.Catalog(), s.View()))
	}
	return writeSuccess(ctx, http.StatusOK, ToStateOutput(s.Catalog(), s.View()))
}

// GoogleCredential is the identity widget callback target.
// POST /api/v1/sign-up/google
//
// Request body:
//
//	{ "credential": "<id token>" }
//
// Errors:
//   - 400: invalid body or empty credential
//   - 404: Google sign-up is not configured
//   - 409: another submission is in flight, the credential was dropped (state included)
func GoogleCredential(ctx rweb.Context) error {
	s, err := currentSession(ctx)
	if s == nil {
		return err
	}
	if s.GoogleClientID() == "" {
		return writeError(ctx, http.StatusNotFound, "google sign-up is not enabled")
	}

	var input CredentialInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	submitted, err := s.DeliverCredential(context.Background(), input.Credential)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}
	if !submitted {
		return writeRefused(ctx, http.StatusConflict, "a submission is already in progress",
			ToStateOutput(s.Catalog(), s.View()))
	}

	return writeSuccess(ctx, http.StatusOK, ToStateOutput(s.Catalog(), s.View()))
}
