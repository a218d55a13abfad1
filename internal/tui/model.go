// Package tui is the interactive terminal front end: a console pane fed by
// the run controller, an argument field with completion, and a stdin field
// for the running script.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sibikrish3000/scriptrun/internal/config"
	"github.com/sibikrish3000/scriptrun/internal/controller"
	"github.com/sibikrish3000/scriptrun/internal/script"
	"github.com/sibikrish3000/scriptrun/pkg/runner"
)

type focus int

const (
	focusArgs focus = iota
	focusInput
)

// eventMsg carries a runner event into the update loop.
type eventMsg runner.Event

// LogsChangedMsg tells the model the log directory changed.
type LogsChangedMsg struct{}

const helpText = "ctrl+r run • ctrl+x stop • ctrl+s save log • ctrl+l clear • ctrl+t template • ctrl+p profile • ctrl+k kind • ctrl+o history • tab complete • shift+tab switch field • ctrl+c quit"

// Model is the bubbletea model of the application.
type Model struct {
	ctl   *controller.Controller
	pane  *Pane
	theme Theme

	viewport viewport.Model
	args     textinput.Model
	input    textinput.Model
	focus    focus

	width  int
	height int

	template int
	logCount int

	// history is the list ctrl+o walks through, captured on first use.
	history    config.History
	historyPos int
}

// New builds the model around ctl, which must write to pane.
func New(ctl *controller.Controller, pane *Pane) Model {
	args := textinput.New()
	args.Prompt = "args › "
	args.Placeholder = "script arguments"
	args.SetValue(ctl.Arguments())
	args.Focus()

	input := textinput.New()
	input.Prompt = "stdin › "
	input.Placeholder = "input for the running script"

	m := Model{
		ctl:      ctl,
		pane:     pane,
		theme:    ThemeFor(ctl.Store().Config().Theme),
		viewport: viewport.New(80, 20),
		args:     args,
		input:    input,
		template: -1,
	}
	m.refreshLogCount()
	m.refreshConsole()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.ctl.Events()))
}

func waitForEvent(events <-chan runner.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case eventMsg:
		m.ctl.HandleEvent(runner.Event(msg))
		cmds = append(cmds, waitForEvent(m.ctl.Events()))

	case LogsChangedMsg:
		m.refreshLogCount()

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.ctl.Shutdown()
			return m, tea.Quit
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		field := m.focused()
		*field, cmd = field.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncFocus()
	m.refreshConsole()
	return m, tea.Batch(cmds...)
}

// handleKey applies a key press; it reports whether the program should quit.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return nil, true
	case "ctrl+r":
		m.ctl.SetArguments(m.args.Value())
		m.ctl.Run()
		m.history = nil
	case "ctrl+x":
		m.ctl.Stop()
	case "ctrl+l":
		m.ctl.ClearConsole()
	case "ctrl+s":
		m.ctl.SaveLog()
	case "ctrl+t":
		m.nextTemplate()
	case "ctrl+p":
		m.nextProfile()
	case "ctrl+k":
		m.nextKind()
	case "ctrl+o":
		m.nextHistory()
	case "shift+tab":
		if m.focus == focusArgs && m.pane.running {
			m.focus = focusInput
		} else {
			m.focus = focusArgs
		}
	case "tab":
		field := m.focused()
		field.SetValue(m.ctl.Complete(field.Value()))
		field.CursorEnd()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd, false
	case "enter":
		if m.focus == focusInput {
			m.ctl.SendInput(m.input.Value())
			m.input.Reset()
			return nil, false
		}
		m.ctl.SetArguments(m.args.Value())
		m.ctl.Run()
	default:
		var cmd tea.Cmd
		field := m.focused()
		*field, cmd = field.Update(msg)
		m.ctl.SetArguments(m.args.Value())
		return cmd, false
	}
	return nil, false
}

func (m *Model) focused() *textinput.Model {
	if m.focus == focusInput {
		return &m.input
	}
	return &m.args
}

// syncFocus follows the run state: the stdin field is only usable while a
// script runs.
func (m *Model) syncFocus() {
	if !m.pane.running && m.focus == focusInput {
		m.focus = focusArgs
		m.input.Reset()
	}
	if m.focus == focusInput {
		m.args.Blur()
		m.input.Focus()
	} else {
		m.input.Blur()
		m.args.Focus()
	}
}

func (m *Model) nextTemplate() {
	tpls := script.Templates(m.ctl.Kind())
	if len(tpls) == 0 {
		return
	}
	m.template = (m.template + 1) % len(tpls)
	if tpl, ok := m.ctl.ApplyTemplate(m.template); ok {
		m.args.SetValue(tpl.Arguments)
		m.args.CursorEnd()
	}
}

func (m *Model) nextProfile() {
	cfg := m.ctl.Store().Config()
	names := []string{config.DefaultProfileName}
	for _, p := range cfg.InterpreterProfiles {
		names = append(names, p.Name)
	}
	current := cfg.ActiveProfileName()
	next := 0
	for i, n := range names {
		if n == current {
			next = (i + 1) % len(names)
		}
	}
	m.ctl.SelectProfile(names[next])
}

func (m *Model) nextKind() {
	kinds := script.Kinds
	next := 0
	for i, k := range kinds {
		if k == m.ctl.Kind() {
			next = (i + 1) % len(kinds)
		}
	}
	m.ctl.SetKind(kinds[next])
	m.template = -1
}

// nextHistory opens the next older history entry with its saved arguments.
func (m *Model) nextHistory() {
	if m.history == nil {
		m.history = append(config.History(nil), m.ctl.Store().Config().History...)
		m.historyPos = 0
		// The front entry is normally the script already loaded.
		if len(m.history) > 0 && m.history[0].Path != m.ctl.ScriptPath() {
			m.historyPos = -1
		}
	}
	if len(m.history) == 0 {
		return
	}
	m.historyPos = (m.historyPos + 1) % len(m.history)
	if err := m.ctl.OpenHistory(m.history[m.historyPos]); err != nil {
		return
	}
	m.args.SetValue(m.ctl.Arguments())
	m.args.CursorEnd()
	m.template = -1
}

func (m *Model) refreshLogCount() {
	lib := m.ctl.Logs()
	if lib == nil {
		return
	}
	entries, err := lib.List(context.Background(), "")
	if err == nil {
		m.logCount = len(entries)
	}
}

func (m *Model) refreshConsole() {
	if !m.pane.takeDirty() {
		return
	}
	follow := m.viewport.AtBottom()
	m.viewport.SetContent(highlight(m.pane.String(), m.theme))
	if follow {
		m.viewport.GotoBottom()
	}
}

// layout sizes the console to the space left by the header, fields and help.
func (m *Model) layout() {
	const chrome = 2 + 3 + 3 + 2 // header, two bordered fields, console border
	w := max(m.width-2, 10)
	h := max(m.height-chrome-lipgloss.Height(m.help()), 3)
	m.viewport.Width = w
	m.viewport.Height = h
	m.args.Width = w - 12
	m.input.Width = w - 12
	m.pane.dirty = true
}

func (m Model) help() string {
	if m.width > 0 {
		return m.theme.Help.Width(m.width).Render(helpText)
	}
	return m.theme.Help.Render(helpText)
}

func (m Model) header() string {
	name := "no script"
	if p := m.ctl.ScriptPath(); p != "" {
		name = filepath.Base(p)
	}
	profile := m.ctl.Store().Config().ActiveProfileName()
	if profile == "" {
		profile = config.DefaultProfileName
	}
	status := m.theme.Idle.Render(controller.Idle.String())
	switch {
	case m.pane.running && m.ctl.StoppedByUser():
		status = m.theme.Running.Render("Stopping")
	case m.pane.running:
		status = m.theme.Running.Render(controller.Running.String())
	}

	field := func(label, value string) string {
		return m.theme.Label.Render(label+" ") + m.theme.Value.Render(value)
	}
	return strings.Join([]string{
		m.theme.Title.Render("scriptrun"),
		field("script", name),
		field("kind", m.ctl.Kind().String()),
		field("profile", profile),
		field("logs", fmt.Sprint(m.logCount)),
		status,
	}, "  ")
}

func (m Model) View() string {
	argsStyle, inputStyle := m.theme.Field, m.theme.Field
	if m.focus == focusInput {
		inputStyle = m.theme.FocusedField
	} else {
		argsStyle = m.theme.FocusedField
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		argsStyle.Render(m.args.View()),
		m.theme.Console.Render(m.viewport.View()),
		inputStyle.Render(m.input.View()),
		m.help(),
	)
}
