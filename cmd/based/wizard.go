package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// wizardModel is the Bubble Tea model behind "based new" with no
// arguments: a single text input asking for the project name.
type wizardModel struct {
	input    textinput.Model
	errMsg   string
	done     bool
	canceled bool
}

func newWizardModel() wizardModel {
	ti := textinput.New()
	ti.Placeholder = "mygame"
	ti.CharLimit = 40
	ti.Width = 30
	ti.Focus()
	return wizardModel{input: ti}
}

// Init initializes the wizard model.
func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the wizard.
func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			if err := validateName(name); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
		// Any other keypress clears a stale validation error.
		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("13"))
	wizardHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	wizardErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// View renders the wizard.
func (m wizardModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(wizardTitleStyle.Render("New based game"))
	b.WriteString("\n\n")
	b.WriteString("Project name: ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(wizardErrStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(wizardHintStyle.Render("enter to create, esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// promptName runs the interactive name wizard. It returns the chosen
// name, or "" when the user cancelled.
func promptName() (string, error) {
	p := tea.NewProgram(newWizardModel())
	out, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("name wizard failed: %w", err)
	}
	m, ok := out.(wizardModel)
	if !ok || !m.done {
		return "", nil
	}
	return strings.TrimSpace(m.input.Value()), nil
}
