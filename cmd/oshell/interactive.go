package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// visibleEntries bounds how much scrollback the View renders.
const visibleEntries = 12

type entry struct {
	err    error
	line   string
	output string
}

type shellModel struct {
	sess    *session
	input   textinput.Model
	entries []entry
	history []string
	histIdx int
}

func newShellModel(sess *session) *shellModel {
	ti := textinput.New()
	ti.Prompt = "osh> "
	ti.Placeholder = "help"
	ti.Width = 60
	ti.Focus()

	return &shellModel{sess: sess, input: ti}
}

func (m *shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "exit" || line == "quit" {
				return m, tea.Quit
			}

			m.history = append(m.history, line)
			m.histIdx = len(m.history)

			out, err := m.sess.Exec(context.Background(), line)
			m.entries = append(m.entries, entry{line: line, output: out, err: err})
			return m, nil

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *shellModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Object Shell"))
	b.WriteString("\n\n")

	start := 0
	if len(m.entries) > visibleEntries {
		start = len(m.entries) - visibleEntries
	}
	for _, e := range m.entries[start:] {
		b.WriteString(promptStyle.Render("osh> "))
		b.WriteString(e.line)
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
			b.WriteString("\n")
		} else if e.output != "" {
			b.WriteString(outputStyle.Render(e.output))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • ↑/↓ history • esc quit"))

	return b.String()
}

func runInteractive(sess *session) error {
	p := tea.NewProgram(newShellModel(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
