// Package tui is the terminal chat front end for the assistant.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"aria/internal/assistant"
)

type line struct {
	role string // "user" or "assistant"
	text string
}

type replyMsg string

type Model struct {
	assistant *assistant.Assistant

	lines    []line
	input    textinput.Model
	view     viewport.Model
	width    int
	height   int
	ready    bool
	thinking bool
	quitting bool
}

func NewModel(a *assistant.Assistant) Model {
	ti := textinput.New()
	ti.Placeholder = "ask me anything..."
	ti.CharLimit = 500
	ti.Focus()

	return Model{
		assistant: a,
		input:     ti,
		width:     100,
		height:    30,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - 4
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.thinking {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "/reset" {
				m.assistant.Reset()
				m.lines = nil
				m.input.SetValue("")
				m.refresh()
				return m, nil
			}
			m.lines = append(m.lines, line{role: "user", text: text})
			m.input.SetValue("")
			m.thinking = true
			m.refresh()
			return m, m.ask(text)
		}

	case replyMsg:
		m.thinking = false
		m.lines = append(m.lines, line{role: "assistant", text: string(msg)})
		m.refresh()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) ask(text string) tea.Cmd {
	return func() tea.Msg {
		reply := m.assistant.Process(context.Background(),
			assistant.Utterance{Text: text, Source: assistant.SourceText})
		return replyMsg(reply)
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, l := range m.lines {
		tag := userTag.Render("you")
		if l.role == "assistant" {
			tag = assistantTag.Render("aria")
		}
		b.WriteString(tag + " " + l.text + "\n\n")
	}
	if m.thinking {
		b.WriteString(dimStyle.Render("thinking...") + "\n")
	}
	m.view.SetContent(b.String())
	m.view.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	status := fmt.Sprintf("%d actions available", len(m.assistant.Actions()))
	if m.thinking {
		status = "thinking..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("aria") + " " + statusBarStyle.Render(status) + "\n")
	b.WriteString(m.view.View() + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter: send  /reset: clear history  esc: quit"))
	return b.String()
}

// Run starts the interactive chat loop.
func Run(a *assistant.Assistant) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
