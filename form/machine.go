// Package form is the registration form engine: a state machine that tracks
// values, touched flags and derived errors, gates submission, and hands the
// outcome of a submission strategy to a Presenter.
//
// A Machine has exactly one writer at a time. It takes no locks; front ends
// that serve several goroutines serialize access per form instance.
package form

import (
	"context"

	"github.com/rohanthewiz/logger"

	"thelab/models"
	"thelab/validation"
)

// Phase is the machine's state. There is no terminal state: the form always
// returns to Editing after a submission.
type Phase int

const (
	Editing Phase = iota
	Submitting
)

func (p Phase) String() string {
	if p == Submitting {
		return "submitting"
	}
	return "editing"
}

// Strategy turns a payload into exactly one remote call and classifies its outcome.
type Strategy interface {
	Name() string
	Submit(ctx context.Context, payload models.Payload) models.SubmissionResult
}

// FormState is a read-only snapshot of the machine, shaped for rendering.
type FormState struct {
	Values       models.FormValues        `json:"values"`
	Touched      map[models.FieldKey]bool `json:"touched"`
	Errors       models.FieldErrors       `json:"errors"`
	IsValid      bool                     `json:"isValid"`
	IsDirty      bool                     `json:"isDirty"`
	IsSubmitting bool                     `json:"isSubmitting"`
	CanSubmit    bool                     `json:"canSubmit"`
}

// Machine is the form state machine.
//
// errors is always recomputed from values by the rule set. imposed is the one
// externally settable overlay (a server-reported conflict); it is merged at
// read time, derived errors win, and an imposed error is dropped as soon as
// its field changes.
type Machine struct {
	catalog   models.Catalog
	rules     *validation.RuleSet
	strategy  Strategy
	presenter *Presenter

	initial models.FormValues
	values  models.FormValues
	touched map[models.FieldKey]bool
	errors  models.FieldErrors
	imposed models.FieldErrors
	phase   Phase

	// set while the running submission came from BeginExternal
	external bool
}

// NewMachine creates a machine in Editing with all-empty values.
// strategy is the one Submit uses; it may be nil for forms that only take
// external credentials. A nil presenter logs notifications.
func NewMachine(catalog models.Catalog, rules *validation.RuleSet, strategy Strategy, presenter *Presenter) *Machine {
	if presenter == nil {
		presenter = NewPresenter(nil, false)
	}
	m := &Machine{
		catalog:   catalog,
		rules:     rules,
		strategy:  strategy,
		presenter: presenter,
		initial:   models.NewFormValues(catalog),
	}
	m.Reset()
	return m
}

// Catalog returns the fields this machine tracks
func (m *Machine) Catalog() models.Catalog { return m.catalog }

// SetValue updates a field, marks it touched and revalidates the whole form.
// It is a no-op while submitting and for keys the catalog does not declare.
func (m *Machine) SetValue(key models.FieldKey, value string) {
	if m.phase != Editing || !m.catalog.Has(key) {
		return
	}
	m.values[key] = value
	m.touched[key] = true
	delete(m.imposed, key)
	m.revalidate()
}

// Blur marks a field touched without changing it, so its error surfaces.
func (m *Machine) Blur(key models.FieldKey) {
	if m.phase != Editing || !m.catalog.Has(key) {
		return
	}
	m.touched[key] = true
	m.revalidate()
}

// TouchAll marks every field touched. Front ends call it when the user
// activates a submit that the guard keeps disabled.
func (m *Machine) TouchAll() {
	if m.phase != Editing {
		return
	}
	for _, key := range m.catalog.Keys() {
		m.touched[key] = true
	}
	m.revalidate()
}

// Reset restores the initial empty state.
func (m *Machine) Reset() {
	m.values = m.initial.Clone()
	m.touched = make(map[models.FieldKey]bool)
	m.errors = make(models.FieldErrors)
	m.imposed = make(models.FieldErrors)
}

// ImposeError attaches an externally reported error to a field and marks the
// field touched so the error is displayed. Values are left alone.
func (m *Machine) ImposeError(key models.FieldKey, message string) {
	if !m.catalog.Has(key) {
		logger.Debug("Ignoring imposed error for unknown field", "field", string(key))
		return
	}
	m.imposed[key] = message
	m.touched[key] = true
}

func (m *Machine) revalidate() {
	m.errors = m.rules.Validate(m.values)
}

// CanSubmit is the submit guard: valid, dirty and not already submitting.
func (m *Machine) CanSubmit() bool {
	return m.phase == Editing && m.IsValid() && m.IsDirty()
}

// BeginSubmit enters Submitting and returns a snapshot of the values.
// ok is false, and nothing changes, when the guard fails. Asynchronous
// front ends pair it with CompleteSubmit.
func (m *Machine) BeginSubmit() (payload models.Payload, ok bool) {
	if !m.CanSubmit() {
		return models.Payload{}, false
	}
	m.phase = Submitting
	m.external = false
	return models.Payload{Values: m.values.Clone()}, true
}

// BeginExternal enters Submitting for a payload that does not come from the
// form (an identity-provider credential). Only re-entry is guarded.
// A conflict reported for such a submission is always notified as well.
func (m *Machine) BeginExternal() bool {
	if m.phase != Editing {
		return false
	}
	m.phase = Submitting
	m.external = true
	return true
}

// CompleteSubmit presents the result and returns to Editing.
// Calls outside Submitting are ignored.
func (m *Machine) CompleteSubmit(result models.SubmissionResult) {
	if m.phase != Submitting {
		return
	}
	if m.external {
		m.presenter.PresentExternal(result, m)
	} else {
		m.presenter.Present(result, m)
	}
	m.phase = Editing
	m.external = false
}

// Submit runs the configured strategy synchronously.
// ok is false when the guard kept the submission from starting.
func (m *Machine) Submit(ctx context.Context) (result models.SubmissionResult, ok bool) {
	if m.strategy == nil {
		return models.SubmissionResult{}, false
	}
	payload, ok := m.BeginSubmit()
	if !ok {
		return models.SubmissionResult{}, false
	}
	return m.run(ctx, m.strategy, payload), true
}

// SubmitCredential runs strategy with an externally supplied credential
// through the same Submitting guard and presenter as Submit.
func (m *Machine) SubmitCredential(ctx context.Context, strategy Strategy, credential string) (result models.SubmissionResult, ok bool) {
	if !m.BeginExternal() {
		return models.SubmissionResult{}, false
	}
	return m.run(ctx, strategy, models.Payload{Credential: credential}), true
}

func (m *Machine) run(ctx context.Context, strategy Strategy, payload models.Payload) models.SubmissionResult {
	logger.Debug("Submission started", "strategy", strategy.Name())
	result := strategy.Submit(ctx, payload)
	logger.Debug("Submission finished", "strategy", strategy.Name(), "result", string(result.Kind))
	m.CompleteSubmit(result)
	return result
}

// Phase returns the current state
func (m *Machine) Phase() Phase { return m.phase }

// IsSubmitting reports whether a submission is in flight.
func (m *Machine) IsSubmitting() bool { return m.phase == Submitting }

// IsValid reports whether no field currently has an error.
func (m *Machine) IsValid() bool { return len(m.Errors()) == 0 }

// IsDirty reports whether values differ from the initial empty values.
func (m *Machine) IsDirty() bool { return !m.values.Equal(m.initial) }

// Value returns the current text of a field.
func (m *Machine) Value(key models.FieldKey) string { return m.values.Get(key) }

// Values returns a copy of all values.
func (m *Machine) Values() models.FormValues { return m.values.Clone() }

// Touched reports whether the field was edited or blurred.
func (m *Machine) Touched(key models.FieldKey) bool { return m.touched[key] }

// Errors returns derived errors merged with imposed ones.
func (m *Machine) Errors() models.FieldErrors {
	out := m.errors.Clone()
	for key, msg := range m.imposed {
		if _, ok := out[key]; !ok {
			out[key] = msg
		}
	}
	return out
}

// Error returns the merged error of one field, if any.
func (m *Machine) Error(key models.FieldKey) (string, bool) {
	if msg, ok := m.errors[key]; ok {
		return msg, true
	}
	msg, ok := m.imposed[key]
	return msg, ok
}

// VisibleError is the error a front end displays: only touched fields
// show theirs.
func (m *Machine) VisibleError(key models.FieldKey) string {
	if !m.touched[key] {
		return ""
	}
	msg, _ := m.Error(key)
	return msg
}

// State returns a snapshot for rendering. Errors holds visible errors only.
func (m *Machine) State() FormState {
	st := FormState{
		Values:       m.Values(),
		Touched:      make(map[models.FieldKey]bool, len(m.touched)),
		Errors:       make(models.FieldErrors),
		IsValid:      m.IsValid(),
		IsDirty:      m.IsDirty(),
		IsSubmitting: m.IsSubmitting(),
		CanSubmit:    m.CanSubmit(),
	}
	for key, touched := range m.touched {
		st.Touched[key] = touched
	}
	for _, key := range m.catalog.Keys() {
		if msg := m.VisibleError(key); msg != "" {
			st.Errors[key] = msg
		}
	}
	return st
}
