package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmp75/rdotnet/dynlib"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	symbolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type resolution struct {
	symbol string
	addr   uintptr
	err    error
}

type interactiveModel struct {
	err      error
	lib      *dynlib.Library
	filename string
	input    textinput.Model
	history  []resolution
}

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "entry point name"
	ti.Prompt = "resolve: "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{filename: filename, input: ti}
}

type loadedMsg struct {
	err error
	lib *dynlib.Library
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadLibrary
}

func (m *interactiveModel) loadLibrary() tea.Msg {
	lib, err := dynlib.Load(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{lib: lib}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.lib != nil {
				m.lib.Release()
			}
			return m, tea.Quit

		case "enter":
			sym := strings.TrimSpace(m.input.Value())
			if sym != "" && m.lib != nil {
				addr, err := m.lib.Resolve(sym)
				m.history = append(m.history, resolution{symbol: sym, addr: addr, err: err})
				m.input.SetValue("")
			}
			return m, nil

		case "esc":
			m.history = nil
			return m, nil
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.lib = msg.lib
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.lib == nil {
		return "Loading library..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Library Probe"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf("  handle %#x\n\n", m.lib.Handle()))

	for _, r := range m.history {
		if r.err != nil {
			b.WriteString(symbolStyle.Render(r.symbol))
			b.WriteString(" ")
			b.WriteString(errorStyle.Render(r.err.Error()))
		} else {
			b.WriteString(symbolStyle.Render(r.symbol))
			b.WriteString(" -> ")
			b.WriteString(addrStyle.Render(fmt.Sprintf("%#x", r.addr)))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter resolve • esc clear • q quit"))

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
