package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type confirmKeys struct {
	Left   key.Binding
	Right  key.Binding
	Yes    key.Binding
	No     key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var defaultConfirmKeys = confirmKeys{
	Left:   key.NewBinding(key.WithKeys("left", "h", "tab")),
	Right:  key.NewBinding(key.WithKeys("right", "l")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	No:     key.NewBinding(key.WithKeys("n", "N")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// ConfirmModel is a yes/no prompt. The cursor starts on "No".
type ConfirmModel struct {
	question string
	yes      bool
	answered bool
	keys     confirmKeys
}

// NewConfirmModel creates a prompt for question
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{question: question, keys: defaultConfirmKeys}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left), key.Matches(keyMsg, m.keys.Right):
		m.yes = !m.yes
	case key.Matches(keyMsg, m.keys.Yes):
		m.yes, m.answered = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.yes, m.answered = false, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Submit):
		m.answered = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Quit):
		m.yes = false
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	yes, no := normalStyle.Render("  Yes"), selectedStyle.Render("> No")
	if m.yes {
		yes, no = selectedStyle.Render("> Yes"), normalStyle.Render("  No")
	}
	return fmt.Sprintf("? %s\n\n%s   %s\n\n(y/n, left/right to toggle, enter to confirm)\n", m.question, yes, no)
}

// Confirmed reports whether the user answered yes
func (m ConfirmModel) Confirmed() bool {
	return m.answered && m.yes
}

// RunConfirm displays the prompt and returns the answer
func RunConfirm(question string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(question))

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	return finalModel.(ConfirmModel).Confirmed(), nil
}
