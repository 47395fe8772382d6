package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytxl/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	InputView
	RunningView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	width        int
	height       int
	menu         list.Model
	input        textinput.Model
	spinner      spinner.Model
	selected     *Action
	progressChan chan tasks.ProgressUpdate
	doneChan     chan Msg
	progress     tasks.ProgressUpdate
	log          []string
	output       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model offering actions.
func NewModel(ctx context.Context, actions []Action) *Model {
	items := make([]list.Item, len(actions))
	for i, a := range actions {
		items[i] = actionItem{action: a}
	}

	menu := list.New(items, list.NewDefaultDelegate(), 80, 20)
	menu.Title = "YouTube Tools"
	menu.SetShowHelp(false)
	menu.Styles.Title = styles.title

	input := textinput.New()
	input.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.spinner

	return &Model{
		ctx:     ctx,
		view:    MenuView,
		menu:    menu,
		input:   input,
		spinner: spin,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init implements [tea.Model]; the menu needs no startup command.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-6)
		m.input.Width = max(msg.Width-8, 20)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case InputView:
			return m.handleInputKeys(msg)
		case RunningView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		if m.view != RunningView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			if m.progress.Err != nil {
				m.log = append(m.log, m.progress.Message)
			}
			return m, m.waitForProgress()
		case MsgActionComplete:
			outcome := msg.data.(actionOutcome)
			m.output, m.err = outcome.output, outcome.err
			m.progressChan, m.doneChan = nil, nil
			m.view = ResultView
			return m, nil
		}
	}

	if m.view == MenuView {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case InputView:
		return m.renderInput()
	case RunningView:
		return m.renderRunning()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.menu.SelectedItem().(actionItem); ok {
			action := item.action
			m.selected = &action
			m.err = nil
			m.input.Reset()
			m.input.Placeholder = action.Placeholder
			m.input.Focus()
			m.view = InputView
			return m, textinput.Blink
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.view = MenuView
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.selected.Required && value == "" {
			m.err = fmt.Errorf("%s is required", strings.ToLower(strings.TrimSuffix(m.selected.Prompt, ":")))
			return m, nil
		}
		m.input.Blur()
		m.err = nil
		m.view = RunningView
		return m, m.startAction(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r", "esc":
		m.view = MenuView
		m.selected = nil
		m.output = ""
		m.err = nil
		m.log = nil
		m.progress = tasks.ProgressUpdate{}
		return m, nil
	}
	return m, nil
}

// startAction runs the selected action in the background; progress and the outcome arrive as [Msg] values.
func (m *Model) startAction(input string) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan Msg, 1)
	m.progressChan, m.doneChan = progress, done
	m.log = nil

	run := m.selected.Run
	ctx := m.ctx
	go func() {
		output, err := run(ctx, input, progress)
		close(progress)
		done <- actionCompleteMsg(output, err)
	}()

	return tea.Batch(m.spinner.Tick, m.waitForProgress())
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return actionCompleteMsg("", nil)
		}
		if update, ok := <-progress; ok {
			return progressUpdateMsg(update)
		}
		return <-done
	}
}

func (m *Model) renderMenu() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.menu.View(), helpView)
}

func (m *Model) renderInput() string {
	title := styles.title.Render(m.selected.Name)
	body := fmt.Sprintf("%s\n%s", m.selected.Prompt, m.input.View())
	if m.err != nil {
		body += "\n\n" + styles.err.Render(m.err.Error())
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.back})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderRunning() string {
	title := styles.title.Render(m.selected.Name)
	status := m.progress.Message
	if status == "" {
		status = "Working..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s %s", title, m.spinner.View(), status)
	if m.progress.Total > 1 {
		fmt.Fprintf(&b, "\n%s", styles.count.Render(fmt.Sprintf("%s %d/%d", m.progress.Phase, m.progress.Step, m.progress.Total)))
	}
	for _, line := range m.log {
		fmt.Fprintf(&b, "\n%s", styles.warn.Render(line))
	}
	return b.String()
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}

	title := styles.ok.Render("✓ " + m.selected.Name)
	var warnings string
	for _, line := range m.log {
		warnings += "\n" + styles.warn.Render(line)
	}
	return fmt.Sprintf("%s\n\n%s%s\n\n%s", title, strings.TrimRight(m.output, "\n"), warnings, helpView)
}
