package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"vogelgpt-backend/internal/client"
	"vogelgpt-backend/internal/models"
)

const defaultWidth = 80

type replyMsg struct {
	resp models.ChatResponse
	err  error
}

// Model is the chat window: a scrolling transcript above a single input line.
type Model struct {
	session  *client.Session
	sender   client.Sender
	input    textinput.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(sender client.Sender) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message…"
	ti.CharLimit = 2000
	ti.Focus()

	m := Model{
		session: client.NewSession(),
		sender:  sender,
		input:   ti,
		width:   defaultWidth,
	}
	m.renderer = newRenderer(defaultWidth)
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.renderer = newRenderer(msg.Width)
		return m, nil

	case replyMsg:
		m.session.Settle(msg.resp, msg.err)
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	if m.session.InFlight() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetInput(m.input.Value())
	message, ok := m.session.Begin()
	if !ok {
		return m, nil
	}
	m.input.Blur()
	return m, send(m.sender, message)
}

func send(sender client.Sender, message string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sender.Send(context.Background(), message)
		return replyMsg{resp: resp, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vogel") + accentStyle.Render("GPT") + "\n\n")

	for _, msg := range m.session.Messages() {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.session.InFlight() {
		b.WriteString(typingStyle.Render("VogelGPT is typing…") + "\n")
	}

	b.WriteString("\n" + m.input.View() + "\n")
	if m.session.CanSubmit() {
		b.WriteString(accentStyle.Render("Enter: send") + dimStyle.Render("  Esc: quit"))
	} else {
		b.WriteString(dimStyle.Render("Enter: send  Esc: quit"))
	}
	return b.String()
}

func (m Model) renderMessage(msg models.ChatMessage) string {
	if msg.Sender == models.SenderUser {
		line := userStyle.Render(msg.Text)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, line)
	}

	label := botLabelStyle.Render("VogelGPT")
	if msg.Image != "" {
		return label + "\n" + imageStyle.Render(msg.Image) + "\n"
	}
	return label + "\n" + m.renderMarkdown(msg.Text)
}

func (m Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text + "\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
