package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"abik/internal/config"
	"abik/internal/console"
	"abik/internal/domain"
	"abik/internal/logger"
	"abik/internal/loop"
	"abik/internal/selection"
	"abik/internal/ui/handlers"
	"abik/internal/ui/input"
	inputtypes "abik/internal/ui/input/types"
	"abik/internal/ui/state"
	"abik/internal/ui/views"
)

// statusTTL is how long an advisory stays on the status line
const statusTTL = 3 * time.Second

// Workflows is what the model drives. Implemented by app.Kitchen.
type Workflows interface {
	Extract(sourcePath string, decompress bool)
	Build()
	Clean()
	Busy() bool
}

// Options configures a Model
type Options struct {
	Config        *config.Config
	ConfigService config.ConfigService // optional, persists setting changes
	Console       *console.Bus
	// CountProjects lists the working directory. Called off the UI loop.
	CountProjects func() int
}

// Model represents the UI state
type Model struct {
	config    *config.Config
	configSvc config.ConfigService
	console   *console.Bus
	state     *state.AppState // centralized state
	workflows Workflows
	loop      loop.Loop

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	viewport    viewport.Model
	inPagerMode bool     // tracks if we're currently in pager mode
	rendered    []string // console lines with styles applied

	// Handlers
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	pager        *PagerOps

	// Commands produced by Surface calls, flushed at the end of Update
	pending []tea.Cmd

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	appState := state.NewAppState(cfg.WorkDir, cfg.DecompressRamdisk)
	keys := inputtypes.DefaultKeyMap()
	renderer := views.NewRenderer()

	height := cfg.UISettings.ConsoleLines
	if height <= 0 {
		height = 20 // Will be updated on first WindowSizeMsg
	}

	m := &Model{
		config:       cfg,
		configSvc:    opts.ConfigService,
		console:      opts.Console,
		state:        appState,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(renderer.Styles().StatusBusy)),
		viewport:     viewport.New(76, height),
		renderer:     renderer,
		helpRenderer: NewHelpRenderer(keys),
		inputHandler: input.New(keys),
	}
	m.eventHandler = handlers.NewEventHandler(appState, opts.CountProjects)
	return m
}

// SetWorkflows sets what the keys drive
func (m *Model) SetWorkflows(w Workflows) {
	m.workflows = w
}

// SetLoop sets the loop console updates are delivered on
func (m *Model) SetLoop(l loop.Loop) {
	m.loop = l
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init subscribes to the console and starts the spinner
func (m *Model) Init() tea.Cmd {
	if m.console != nil && m.loop != nil {
		m.console.Subscribe(m.loop, m.onConsole)
	}
	return tea.Batch(m.spinner.Tick, m.eventHandler.Recount())
}

// Busy implements inputtypes.Context
func (m *Model) Busy() bool {
	return m.workflows != nil && m.workflows.Busy()
}

// HelpVisible implements inputtypes.Context
func (m *Model) HelpVisible() bool {
	return m.state.ShowHelp
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.inPagerMode {
			break
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

	case runMsg:
		msg.fn()

	case EventMsg:
		if cmd := m.eventHandler.HandleEvent(msg.Event); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case handlers.ProjectCountMsg:
		m.state.Projects = msg.Count

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case clearStatusMsg:
		m.state.ClearStatus(msg.seq)

	case configSavedMsg:
		// The config service reports the outcome on the event bus
		if msg.err != nil {
			logger.L().Error("config.save_failed", "err", msg.err)
		}

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log only
			logger.L().Warn("pager.failed", "err", msg.err)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.resize()
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.ScrollAction:
		switch a.Direction {
		case "up":
			m.viewport.ScrollUp(1)
		case "down":
			m.viewport.ScrollDown(1)
		case "pageup":
			m.viewport.PageUp()
		case "pagedown":
			m.viewport.PageDown()
		case "home":
			m.viewport.GotoTop()
		case "end":
			m.viewport.GotoBottom()
		}

	case inputtypes.SubmitTextAction:
		path := strings.TrimSpace(a.Text)
		if path == "" || m.workflows == nil {
			return nil
		}
		m.workflows.Extract(config.ExpandHome(path), m.state.Decompress)

	case inputtypes.BuildAction:
		if m.workflows != nil {
			m.workflows.Build()
		}

	case inputtypes.CleanAction:
		if m.workflows != nil {
			m.workflows.Clean()
		}

	case inputtypes.ToggleDecompressAction:
		m.state.Decompress = !m.state.Decompress
		m.config.DecompressRamdisk = m.state.Decompress
		m.state.Unsaved = true
		status := "off"
		if m.state.Decompress {
			status = "on"
		}
		m.Advise(domain.Advisory{Kind: domain.AdviseDone, Message: "Decompress ramdisk: " + status})
		return m.saveConfig()

	case inputtypes.BusyAction:
		m.Advise(domain.BusyAdvisory())

	case inputtypes.MoveCursorAction:
		if m.state.Dialog != nil {
			m.state.Dialog.Move(a.Delta)
		}

	case inputtypes.ToggleItemAction:
		if m.state.Dialog != nil {
			m.state.Dialog.Toggle()
		}

	case inputtypes.ToggleAllAction:
		if m.state.Dialog != nil {
			m.state.Dialog.ToggleAll()
		}

	case inputtypes.ConfirmChoiceAction:
		// The reply may open the next dialog, so close this one first
		if d := m.state.Dialog; d != nil {
			m.state.Dialog = nil
			d.Confirm()
		}

	case inputtypes.DismissChoiceAction:
		if d := m.state.Dialog; d != nil {
			m.state.Dialog = nil
			d.Dismiss()
		}

	case inputtypes.OpenPagerAction:
		if m.console == nil {
			return nil
		}
		return m.openPager(m.console.Text())

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.QuitAction:
		if !a.Force && m.Busy() {
			m.Advise(domain.BusyAdvisory())
			return nil
		}
		return tea.Quit
	}

	return nil
}

// Advise implements app.Surface
func (m *Model) Advise(a domain.Advisory) {
	seq := m.state.SetStatus(a)
	m.pending = append(m.pending, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	}))
}

// ChooseOne implements app.Surface
func (m *Model) ChooseOne(title string, options []string, reply func(int)) {
	m.openDialog(state.NewChooseOne(title, options, reply), inputtypes.ModeChooseOne)
}

// ChooseMany implements app.Surface
func (m *Model) ChooseMany(title string, options []string, reply func(*selection.Set)) {
	m.openDialog(state.NewChooseMany(title, options, reply), inputtypes.ModeChooseMany)
}

func (m *Model) openDialog(d *state.Dialog, mode inputtypes.Mode) {
	if old := m.state.Dialog; old != nil {
		m.state.Dialog = nil
		old.Dismiss()
	}
	m.state.ShowHelp = false
	m.state.Dialog = d
	m.inputHandler.ChangeMode(mode, m)
}

// ShowProgress implements app.Surface
func (m *Model) ShowProgress(title, message string) {
	m.state.Progress = &state.Progress{Title: title, Message: message}
	m.state.ShowHelp = false
	m.inputHandler.ChangeMode(inputtypes.ModeProgress, m)
}

// HideProgress implements app.Surface
func (m *Model) HideProgress() {
	m.state.Progress = nil
	if m.inputHandler.CurrentMode() == inputtypes.ModeProgress {
		m.inputHandler.ChangeMode(inputtypes.ModeNormal, m)
	}
}

// onConsole runs on the UI loop
func (m *Model) onConsole(u console.Update) {
	if u.Replay {
		m.state.SetConsole(u.Lines)
		m.rendered = m.rendered[:0]
	} else {
		m.state.AppendConsole(u.Lines...)
	}
	for _, line := range u.Lines {
		m.rendered = append(m.rendered, m.renderer.RenderConsoleLine(line))
	}
	m.viewport.SetContent(strings.Join(m.rendered, "\n"))
	m.viewport.GotoBottom()
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	prompting := m.inputHandler.Prompt() != ""
	m.viewport.Width = max(m.width-4, 20)
	m.viewport.Height = max(m.height-m.renderer.ChromeHeight(prompting), 3)
}

func (m *Model) saveConfig() tea.Cmd {
	if m.configSvc == nil {
		return nil
	}
	cfg := *m.config
	svc := m.configSvc
	return func() tea.Msg {
		return configSavedMsg{err: svc.Save(&cfg)}
	}
}

// openPager returns a command that shows content using ov pager
func (m *Model) openPager(content string) tea.Cmd {
	if m.program == nil || m.pager == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:      m.width,
		Height:     m.height,
		WorkDir:    m.state.WorkDir,
		Projects:   m.state.Projects,
		Decompress: m.state.Decompress,
		Unsaved:    m.state.Unsaved,
		Running:    m.state.Running,
		Spinner:    m.spinner.View(),
		Console:    m.viewport.View(),
		Status:     m.state.Status,
		Prompt:     m.inputHandler.Prompt(),
		ShowHelp:   m.state.ShowHelp,
		HelpLine:   m.help.View(m.inputHandler.Keys()),
	}

	if c := m.state.LastClean; c != nil {
		vs.LastClean = fmt.Sprintf("removed %d", c.Deleted)
		if c.Failed > 0 {
			vs.LastClean += fmt.Sprintf(", %d failed", c.Failed)
		}
	}
	if !m.viewport.AtBottom() {
		vs.ScrollInfo = fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
	}
	if m.state.ShowHelp {
		vs.HelpText = m.helpRenderer.RenderHelpContent(m.height)
	}
	if d := m.state.Dialog; d != nil {
		vs.Dialog = &views.DialogState{
			Title:    d.Title,
			Options:  d.Options,
			Cursor:   d.Cursor,
			Multi:    d.Multi,
			Checked:  d.Checked(),
			HelpLine: m.help.ShortHelpView(m.inputHandler.Keys().DialogHelp(d.Multi)),
		}
	}
	if p := m.state.Progress; p != nil {
		vs.Progress = &views.ProgressState{
			Title:   p.Title,
			Message: p.Message,
			Spinner: m.spinner.View(),
		}
		if c := m.state.Deleting; c != nil {
			vs.Progress.Step = c.Step
			vs.Progress.Total = c.Total
		}
	}

	return m.renderer.Render(vs)
}
