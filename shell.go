// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Model is the interactive shell state.
type Model struct {
	ready bool

	textInput    textinput.Model
	outputView   viewport.Model
	keysList     list.Model
	helpRenderer *glamour.TermRenderer

	session *Session

	transcript []string
	history    []string
	historyPos int
	showHelp   bool
	status     string
	statusErr  bool

	styles *Styles

	width  int
	height int
}

// Styles holds all the styling for the shell
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	Echo           lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(adaptive("4", "62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(adaptive("8", "240")),
		Title: lipgloss.NewStyle().
			Foreground(adaptive("4", "39")).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(adaptive("5", "205")).
			Bold(true),
		Echo: lipgloss.NewStyle().
			Foreground(adaptive("5", "205")),
		HelpKey: lipgloss.NewStyle().
			Foreground(adaptive("240", "241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(adaptive("242", "243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(adaptive("2", "46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(adaptive("1", "196")).
			Bold(true),
	}
}

// keyItem represents one key in the sorted keys list
type keyItem struct {
	key string
}

func (i keyItem) FilterValue() string { return i.key }
func (i keyItem) Title() string       { return i.key }
func (i keyItem) Description() string { return "" }

// InitialModel creates the initial model
func InitialModel(session *Session) Model {
	ti := textinput.New()
	ti.Placeholder = "insert 5 3 8 · contains 3 · dump · help"
	ti.Prompt = "avl> "
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 50

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	keysList := list.New([]list.Item{}, delegate, 0, 0)
	keysList.SetShowTitle(false)
	keysList.SetShowHelp(false)
	keysList.SetFilteringEnabled(false)

	outputView := viewport.New(0, 0)

	helpRenderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		log.Printf("Failed to create help renderer: %v. Showing plain help.", err)
		helpRenderer = nil
	}

	m := Model{
		textInput:    ti,
		outputView:   outputView,
		keysList:     keysList,
		helpRenderer: helpRenderer,
		session:      session,
		styles:       NewStyles(),
	}
	m.refreshKeys()
	return m
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.showHelp = !m.showHelp
			m.refreshOutput()
			return m, nil
		case "ctrl+y":
			m.copyKeys()
			return m, nil
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		case "pgup", "pgdown":
			m.outputView, cmd = m.outputView.Update(msg)
			return m, cmd
		case "enter":
			m.run(m.textInput.Value())
			m.textInput.SetValue("")
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refreshOutput()
		m.ready = true
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// run executes a command line and appends it to the transcript.
func (m *Model) run(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	m.history = append(m.history, line)
	m.historyPos = len(m.history)
	m.showHelp = false

	out, err := m.session.Exec(line)
	entry := m.styles.Echo.Render(m.textInput.Prompt + line)
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		entry += "\n" + m.styles.ErrorMessage.Render("error: "+err.Error())
	} else {
		m.status = ""
		m.statusErr = false
		if out != "" {
			entry += "\n" + out
		}
	}
	m.transcript = append(m.transcript, entry)

	m.refreshKeys()
	m.refreshOutput()
}

// recall moves through earlier command lines.
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.historyPos = max(0, min(len(m.history), m.historyPos+step))
	if m.historyPos == len(m.history) {
		m.textInput.SetValue("")
		return
	}
	m.textInput.SetValue(m.history[m.historyPos])
	m.textInput.CursorEnd()
}

func (m *Model) copyKeys() {
	text, err := m.session.Listing()
	if err == nil {
		err = clipboard.WriteAll(text)
	}
	if err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		m.statusErr = true
		return
	}
	m.status = fmt.Sprintf("Copied %d keys to clipboard", m.session.Size())
	m.statusErr = false
}

func (m *Model) refreshKeys() {
	keys := m.session.Keys()
	items := make([]list.Item, len(keys))
	for i, k := range keys {
		items[i] = keyItem{key: k}
	}
	m.keysList.SetItems(items)
}

func (m *Model) refreshOutput() {
	if m.showHelp {
		if m.helpRenderer != nil {
			if rendered, err := m.helpRenderer.Render(shellHelpMarkdown); err == nil {
				m.outputView.SetContent(rendered)
				return
			}
		}
		m.outputView.SetContent(shellHelpMarkdown)
		return
	}
	if len(m.transcript) == 0 {
		m.outputView.SetContent("Type a command and press enter. f1 shows help.")
		return
	}
	m.outputView.SetContent(strings.Join(m.transcript, "\n\n"))
	m.outputView.GotoBottom()
}

// updateLayout updates component dimensions
func (m *Model) updateLayout() {
	inputHeight := 1
	bodyHeight := m.height - inputHeight - 8
	keysWidth := m.width / 4
	outputWidth := m.width - keysWidth - 4

	m.textInput.Width = outputWidth - len(m.textInput.Prompt) - 4
	m.outputView.Width = outputWidth - 2
	m.outputView.Height = bodyHeight
	m.keysList.SetSize(keysWidth-2, bodyHeight+inputHeight)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	keysWidth := m.width / 4
	outputWidth := m.width - keysWidth - 4

	inputBox := m.styles.BorderFocused.
		Width(outputWidth).
		Padding(0, 1).
		Render(m.textInput.View())

	outputTitle := " Output "
	if m.showHelp {
		outputTitle = " Help "
	}
	outputBox := m.styles.BorderBlurred.
		Width(outputWidth).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(outputTitle),
			m.outputView.View(),
		))

	keysTitle := fmt.Sprintf(" Keys (%d) · height %d ", m.session.Size(), m.session.Height())
	keysBox := m.styles.BorderBlurred.
		Width(keysWidth).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(keysTitle),
			m.keysList.View(),
		))

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, outputBox, inputBox),
		keysBox,
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter())
}

func (m Model) renderFooter() string {
	if m.status != "" {
		if m.statusErr {
			return m.styles.ErrorMessage.Render(m.status)
		}
		return m.styles.SuccessMessage.Render(m.status)
	}

	keys := []string{"enter", "↑/↓", "pgup/pgdn", "ctrl+y", "f1", "esc"}
	descs := []string{"run", "history", "scroll", "copy keys", "help", "quit"}

	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = m.styles.HelpKey.Render(keys[i]) + " " + m.styles.HelpDesc.Render(descs[i])
	}
	return strings.Join(parts, "  ")
}

// runShell starts the interactive shell
func runShell(session *Session) error {
	program := tea.NewProgram(
		InitialModel(session),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
