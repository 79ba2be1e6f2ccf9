// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui mounts the query form in a Bubble Tea program. Bubble Tea owns
// the event loop: keystrokes and request completions arrive as messages and
// each is applied to the form snapshot in a single Update call.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/internal/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chromeHeight is the number of lines above and below the results pane.
	chromeHeight = 5
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	resultStyles = render.Styles{
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Title: lipgloss.NewStyle().Bold(true),
		Label: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
	}
)

// Model is the Bubble Tea model for the form.
type Model struct {
	ctx     context.Context
	querier form.Querier
	state   form.State

	input   textinput.Model
	results viewport.Model
}

// New returns a model with an empty, focused query input.
func New(ctx context.Context, q form.Querier, opts form.Options) Model {
	ti := textinput.New()
	ti.Placeholder = render.Placeholder
	ti.Prompt = "> "
	ti.Width = defaultWidth - 4
	ti.Focus()

	m := Model{
		ctx:     ctx,
		querier: q,
		state:   form.New(opts),
		input:   ti,
		results: viewport.New(defaultWidth, defaultHeight-chromeHeight),
	}
	m.refresh()
	return m
}

// State returns the current form snapshot.
func (m Model) State() form.State { return m.state }

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-4, 1)
		m.results.Width = msg.Width
		m.results.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil

	case form.Completed:
		m.state, _ = m.state.Update(msg)
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.state.Query() {
		m.state, _ = m.state.Update(form.QueryChanged{Text: text})
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	next, sub := m.state.Update(form.Submitted{})
	m.state = next
	m.refresh()
	if sub == nil {
		return m, nil
	}
	ctx, q, s := m.ctx, m.querier, *sub
	return m, func() tea.Msg {
		return form.Execute(ctx, q, s)
	}
}

// refresh re-renders the results pane from the snapshot.
func (m *Model) refresh() {
	var b strings.Builder
	render.Text(&b, m.state, resultStyles)
	m.results.SetContent(b.String())
	m.results.GotoTop()
}

// View draws the form.
func (m Model) View() string {
	button := disabledStyle.Render("[ Search ]")
	if m.state.CanSubmit() {
		button = enabledStyle.Render("[ Search ]")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Course Finder"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(button + " " + hintStyle.Render("enter search · pgup/pgdn scroll · esc quit"))
	b.WriteString("\n\n")
	b.WriteString(m.results.View())
	return b.String()
}
