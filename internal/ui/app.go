package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/contractdesk/internal/contracts"
	"github.com/five82/contractdesk/internal/prefs"
	"github.com/five82/contractdesk/internal/state"
)

// pane identifies the focused region of the main screen.
type pane int

const (
	paneList pane = iota
	paneDetails
	paneFilters
)

var clipboardWriteAll = clipboard.WriteAll

// Options configures the UI.
type Options struct {
	Context           context.Context
	Service           contracts.Service
	Logger            *zap.Logger
	Formatter         contracts.Formatter
	CompletionKeyword string
	APIURL            string
	ThemeName         string
	FiltersVisible    bool
	PrefsPath         string
}

// Model is the root application state for Bubble Tea. All session
// transitions happen inside Update.
type Model struct {
	// Configuration
	ctx       context.Context
	svc       contracts.Service
	log       *zap.Logger
	format    contracts.Formatter
	keyword   string
	apiURL    string
	prefsPath string
	keys      keyMap

	// Root state
	session *state.Session

	// UI state
	theme       Theme
	width       int
	height      int
	ready       bool
	focus       pane
	selected    int
	showFilters bool
	showHelp    bool
	status      string

	filters filterPanel
	details detailsPane
	spinner spinner.Model
	modal   Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	theme := GetTheme(opts.ThemeName)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning))

	return Model{
		ctx:         ctx,
		svc:         opts.Service,
		log:         logger,
		format:      opts.Formatter,
		keyword:     opts.CompletionKeyword,
		apiURL:      opts.APIURL,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		session:     state.NewSession(),
		theme:       theme,
		showFilters: opts.FiltersVisible,
		filters:     newFilterPanel(),
		details:     newDetailsPane(),
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadContractsCmd(m.ctx, m.svc))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refreshDetails()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case contractsLoadedMsg:
		m.session.Load(msg.list, msg.err)
		if msg.err != nil {
			m.log.Warn("load contracts failed", zap.Error(msg.err))
		} else {
			m.log.Info("contracts loaded", zap.Int("count", len(msg.list)))
		}
		m.clampSelection()
		m.refreshDetails()
		return m, nil

	case submitDraftMsg:
		if !m.session.BeginSubmit() {
			return m, nil
		}
		if f, ok := m.modal.(editorForm); ok {
			f.submitting = true
			m.modal = f
		}
		return m, saveContractCmd(m.ctx, m.svc, m.session.Editor(), msg.payload)

	case contractSavedMsg:
		m.session.FinishSubmit(msg.contract, msg.err)
		switch {
		case msg.err != nil:
			m.log.Warn("save contract failed", zap.Error(msg.err))
		case msg.contract != nil:
			m.log.Info("contract saved", zap.Int64("id", msg.contract.ID))
		}
		if f, ok := m.modal.(editorForm); ok {
			f.submitting = false
			m.modal = f
		}
		if !m.session.Editor().Open() {
			m.modal = nil
		}
		m.clampSelection()
		m.refreshDetails()
		return m, nil

	case selectTabMsg:
		m.session.SelectTab(msg.id)
		m.refreshDetails()
		return m, nil

	case closeTabMsg:
		m.session.CloseTab(msg.id)
		if o, ok := m.modal.(tabsOverlay); ok {
			if tabs := m.session.Tabs(); len(tabs) > 0 {
				m.modal = o.withTabs(tabs)
			} else {
				m.modal = nil
			}
		}
		m.refreshDetails()
		return m, nil
	}

	// Cursor blinks and other component messages.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	if m.focus == paneFilters {
		var cmd tea.Cmd
		m.filters.inputs[m.filters.focus], cmd = m.filters.inputs[m.filters.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if alert, ok := m.session.CurrentAlert(); ok {
		return m.renderAlert(alert)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Alerts block everything else, then
// help, then modals, then the filter form.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if _, ok := m.session.CurrentAlert(); ok {
		switch msg.String() {
		case "enter", "esc", " ":
			m.session.DismissAlert()
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	if m.focus == paneFilters {
		return m.handleFiltersKey(msg)
	}

	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
		m.savePrefs()
		m.refreshDetails()

	case key.Matches(msg, m.keys.FocusNext):
		m.cycleFocus(1)

	case key.Matches(msg, m.keys.FocusPrev):
		m.cycleFocus(-1)

	case key.Matches(msg, m.keys.ToggleFilters):
		m.toggleFilters()

	case key.Matches(msg, m.keys.ResetFilters):
		m.filters.clear()
		m.session.ResetFilters()
		m.selected = 0

	case key.Matches(msg, m.keys.New):
		return m.openEditor(state.EditorCreate)

	case key.Matches(msg, m.keys.Edit):
		return m.openEditor(state.EditorEdit)

	case key.Matches(msg, m.keys.Copy):
		m.copyNumber()

	case key.Matches(msg, m.keys.TabsList):
		if tabs := m.session.Tabs(); len(tabs) > 0 {
			m.modal = newTabsOverlay(tabs)
		} else {
			m.status = "No open tabs"
		}

	case key.Matches(msg, m.keys.CloseTab):
		if tab, ok := m.session.ActiveTab(); ok {
			m.session.CloseTab(tab.ID)
			m.refreshDetails()
		}

	case key.Matches(msg, m.keys.NextTab):
		m.stepTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		m.stepTab(-1)

	default:
		if m.focus == paneDetails {
			return m.handleDetailsKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	m.modal = next
	if !closed {
		return m, cmd
	}
	if _, ok := next.(editorForm); ok {
		m.session.CloseEditor()
		if m.session.Editor().Open() {
			return m, cmd
		}
	}
	m.modal = nil
	return m, cmd
}

func (m Model) handleFiltersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.filters.update(msg, m.keys)
	switch action {
	case filterApply:
		m.session.ApplyFilters(m.filters.criteria())
		m.selected = 0
		m.filters.blur()
		m.focus = paneList
	case filterReset:
		m.session.ResetFilters()
		m.selected = 0
	case filterLeave:
		m.focus = paneList
	}
	return m, cmd
}

// handleListKey moves the selection and opens contracts in tabs.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.session.Filtered())
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.Open):
		if c, ok := m.selectedContract(); ok {
			m.session.OpenTab(c)
			m.refreshDetails()
		}
	}
	return m, nil
}

func (m Model) openEditor(mode state.EditorMode) (tea.Model, tea.Cmd) {
	if mode == state.EditorEdit {
		c, ok := m.targetContract()
		if !ok {
			m.status = "Select a contract to edit"
			return m, nil
		}
		m.session.OpenEdit(c)
	} else {
		m.session.OpenCreate()
	}
	m.modal = newEditorForm(mode, m.session.Editor().Draft())
	return m, textinput.Blink
}

// targetContract is the contract an action applies to: the highlighted card
// while the list has focus, otherwise the one shown in the details pane.
func (m Model) targetContract() (contracts.Contract, bool) {
	if m.focus == paneList {
		if c, ok := m.selectedContract(); ok {
			return c, true
		}
	}
	if c, ok := m.session.Active(); ok {
		return c, true
	}
	return m.selectedContract()
}

// cycleFocus moves focus through filters (when shown), list and details.
func (m *Model) cycleFocus(step int) {
	order := []pane{paneList, paneDetails}
	if m.showFilters {
		order = []pane{paneFilters, paneList, paneDetails}
	}
	idx := 0
	for i, p := range order {
		if p == m.focus {
			idx = i
		}
	}
	m.focus = order[(idx+step+len(order))%len(order)]
	if m.focus == paneFilters {
		m.filters.focusField(m.filters.focus)
	}
}

func (m *Model) toggleFilters() {
	m.showFilters = !m.showFilters
	if m.showFilters {
		m.focus = paneFilters
		m.filters.focusField(0)
	} else if m.focus == paneFilters {
		m.focus = paneList
	}
	m.savePrefs()
}

// stepTab activates the neighbouring tab, wrapping around.
func (m *Model) stepTab(step int) {
	tabs := m.session.Tabs()
	if len(tabs) == 0 {
		return
	}
	idx := -1
	for i, t := range tabs {
		if t.Active {
			idx = i
		}
	}
	if idx < 0 && step < 0 {
		idx = 0
	}
	next := (idx + step + len(tabs)) % len(tabs)
	m.session.SelectTab(tabs[next].ID)
	m.refreshDetails()
}

func (m *Model) copyNumber() {
	c, ok := m.targetContract()
	number := strings.TrimSpace(c.Number)
	if !ok || number == "" {
		m.status = "Nothing to copy"
		return
	}
	if err := clipboardWriteAll(number); err != nil {
		m.log.Debug("clipboard write failed", zap.Error(err))
		m.status = "Clipboard unavailable"
		return
	}
	m.status = fmt.Sprintf("Copied %s", number)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, FiltersVisible: m.showFilters}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// renderMain renders the full screen.
func (m Model) renderMain() string {
	contentHeight := max(m.height-chromeRows, 3)
	leftWidth := listWidth(m.width)
	rightWidth := m.width - leftWidth

	left := m.renderSidebar(leftWidth, contentHeight)
	if m.showFilters && contentHeight > filterBoxRows+cardRows+2 {
		left = lipgloss.JoinVertical(lipgloss.Left,
			m.renderFilters(leftWidth, filterBoxRows),
			m.renderSidebar(leftWidth, contentHeight-filterBoxRows),
		)
	}
	right := m.renderDetails(rightWidth, contentHeight)

	return strings.Join([]string{
		m.renderHeader(),
		m.renderCommandBar(),
		m.renderTabStrip(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
	}, "\n")
}

// Messages

type contractsLoadedMsg struct {
	list []contracts.Contract
	err  error
}

type contractSavedMsg struct {
	contract *contracts.Contract
	err      error
}

var errNoService = errors.New("no contracts service configured")

// Commands

func loadContractsCmd(ctx context.Context, svc contracts.Service) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return contractsLoadedMsg{err: errNoService}
		}
		list, err := svc.List(ctx)
		return contractsLoadedMsg{list: list, err: err}
	}
}

func saveContractCmd(ctx context.Context, svc contracts.Service, editor state.Editor, payload contracts.Payload) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return contractSavedMsg{err: errNoService}
		}
		saved, err := editor.Save(ctx, svc, payload)
		return contractSavedMsg{contract: saved, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
