package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"thelab/form"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	focusStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	validStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	buttonStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(lipgloss.Color("12")).Foreground(lipgloss.Color("15"))
	disabledStyle = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("8")).Foreground(lipgloss.Color("7"))

	toastStyles = map[form.NotificationKind]lipgloss.Style{
		form.NotifySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		form.NotifyWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		form.NotifyError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

const helpText = "tab/shift+tab: move • ctrl+r: show password • enter/ctrl+s: submit • esc: quit"

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("THE LAB 🧪  Sign up"))
	sb.WriteString("\n")

	for i, f := range m.catalog.Fields() {
		label := labelStyle.Render(f.Label)
		if i == m.focus {
			label = focusStyle.Render("› " + f.Label)
		}

		mark := ""
		errMsg := m.machine.VisibleError(f.ID)
		switch {
		case errMsg != "":
			mark = errorStyle.Render(" ✗")
		case m.machine.Touched(f.ID):
			mark = validStyle.Render(" ✓")
		}

		sb.WriteString(label + mark + "\n")
		sb.WriteString(m.inputs[i].View() + "\n")
		if errMsg != "" {
			sb.WriteString(errorStyle.Render(errMsg) + "\n")
		}
		sb.WriteString("\n")
	}

	showLabel := "Show password"
	if m.showSecrets {
		showLabel = "Hide password"
	}
	sb.WriteString(mutedStyle.Render("[ctrl+r] "+showLabel) + "\n\n")

	switch {
	case m.machine.IsSubmitting():
		sb.WriteString(disabledStyle.Render("Submitting..."))
	case m.machine.CanSubmit():
		sb.WriteString(buttonStyle.Render("Submit"))
	default:
		sb.WriteString(disabledStyle.Render("Submit"))
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("All fields are required") + "\n")

	if m.toast != nil {
		style, ok := toastStyles[m.toast.Kind]
		if !ok {
			style = mutedStyle
		}
		sb.WriteString("\n" + style.Render(m.toast.Message) + "\n")
	}

	sb.WriteString("\n" + mutedStyle.Render(helpText) + "\n")
	return sb.String()
}
