// Package tui is the terminal front end: a bubbletea program with one text
// input per catalog field, driving the same form machine as the web pages.
// Submissions run in a tea.Cmd so the view keeps rendering "Submitting..."
// while the account service answers.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"

	"thelab/form"
	"thelab/models"
)

// submitDoneMsg carries the outcome of a submission started by submitCmd.
type submitDoneMsg struct {
	result models.SubmissionResult
}

// Model is the bubbletea model of the sign-up form.
type Model struct {
	ctx      context.Context
	machine  *form.Machine
	strategy form.Strategy
	notices  *form.Queue
	catalog  models.Catalog

	inputs      []textinput.Model
	focus       int
	showSecrets bool
	toast       *form.Notification
	quitting    bool
}

// New builds the model. strategy runs submissions, notices must be the queue
// the machine's presenter notifies.
func New(ctx context.Context, machine *form.Machine, strategy form.Strategy, notices *form.Queue) Model {
	catalog := machine.Catalog()
	m := Model{
		ctx:      ctx,
		machine:  machine,
		strategy: strategy,
		notices:  notices,
		catalog:  catalog,
	}

	for _, f := range catalog.Fields() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 256
		ti.Width = 40
		if f.IsSecret() {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs = append(m.inputs, ti)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.machine.CompleteSubmit(msg.result)
		m.syncInputs()
		m.collectToast()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

		// The form is frozen until the outcome arrives
		if m.machine.IsSubmitting() {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+r":
			m.toggleSecrets()
			return m, nil
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.focus == len(m.inputs)-1 {
				return m, m.submit()
			}
			return m, m.moveFocus(1)
		}
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and mirrors edits into the machine.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if after := m.inputs[m.focus].Value(); after != before {
		m.machine.SetValue(m.keyAt(m.focus), after)
	}
	return cmd
}

// moveFocus blurs the current field and focuses its neighbour, wrapping around.
func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.machine.Blur(m.keyAt(m.focus))
	m.inputs[m.focus].Blur()

	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// submit starts a submission, or reveals every error when the guard refuses.
func (m *Model) submit() tea.Cmd {
	payload, ok := m.machine.BeginSubmit()
	if !ok {
		m.machine.TouchAll()
		return nil
	}

	ctx, strategy := m.ctx, m.strategy
	logger.Debug("TUI submission started", "strategy", strategy.Name())
	return func() tea.Msg {
		return submitDoneMsg{result: strategy.Submit(ctx, payload)}
	}
}

func (m *Model) toggleSecrets() {
	m.showSecrets = !m.showSecrets
	for i, f := range m.catalog.Fields() {
		if !f.IsSecret() {
			continue
		}
		if m.showSecrets {
			m.inputs[i].EchoMode = textinput.EchoNormal
		} else {
			m.inputs[i].EchoMode = textinput.EchoPassword
		}
	}
}

// syncInputs copies machine values back into the inputs, e.g. after a reset.
func (m *Model) syncInputs() {
	for i := range m.inputs {
		if v := m.machine.Value(m.keyAt(i)); v != m.inputs[i].Value() {
			m.inputs[i].SetValue(v)
		}
	}
}

// collectToast keeps the latest notification for the status line.
func (m *Model) collectToast() {
	items := m.notices.Drain()
	if len(items) == 0 {
		return
	}
	last := items[len(items)-1]
	m.toast = &last
}

func (m Model) keyAt(i int) models.FieldKey {
	return m.catalog.Fields()[i].ID
}

// Machine exposes the form machine, mainly for inspection after the program ends.
func (m Model) Machine() *form.Machine { return m.machine }

// Focused returns the key of the focused field
func (m Model) Focused() models.FieldKey { return m.keyAt(m.focus) }

// Toast returns the notification currently shown, if any.
func (m Model) Toast() (form.Notification, bool) {
	if m.toast == nil {
		return form.Notification{}, false
	}
	return *m.toast, true
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, machine *form.Machine, strategy form.Strategy, notices *form.Queue) error {
	p := tea.NewProgram(New(ctx, machine, strategy, notices), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
