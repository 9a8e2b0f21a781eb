package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quoteterm/internal/autosave"
	"quoteterm/internal/config"
	"quoteterm/internal/controller"
	"quoteterm/internal/events"
	"quoteterm/internal/theme"
	"quoteterm/internal/uistate"
)

// Options wires the renderer to a running controller.
type Options struct {
	Bus        *controller.Bus
	Controller *controller.Controller
	Saver      *autosave.Saver
	Config     *config.Store
	Logger     *log.Logger
}

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs a new interactive quoting session.
func NewProgram(opts Options) *Program {
	m := newModel(opts)
	return &Program{program: tea.NewProgram(m, tea.WithAltScreen())}
}

// Start launches the Bubble Tea program and blocks until it exits.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	_, err := p.program.Run()
	return err
}

type (
	autosaveTickMsg time.Time
	restoreMsg      struct{ data []byte }
)

type model struct {
	bus    *controller.Bus
	saver  *autosave.Saver
	cfg    *config.Store
	logger *log.Logger
	theme  theme.Theme
	width  int
	height int

	state       events.State
	notice      events.Notice
	infoMessage string
	errMessage  string
	showSplash  bool
	showHelp    bool

	// cursor is the detail-view table cursor; the quick quote view moves the
	// controller's active cell instead.
	cursor uistate.Cell

	prompt      prompt
	confirm     *events.Confirm
	confirmLoad bool

	// cmds collects commands raised by output handlers during a publish.
	cmds []tea.Cmd
}

func newModel(opts Options) *model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := &model{
		bus:        opts.Bus,
		saver:      opts.Saver,
		cfg:        opts.Config,
		logger:     logger,
		theme:      theme.Default(),
		showSplash: true,
		cursor:     uistate.Cell{Row: 0},
	}
	m.subscribe()
	if opts.Controller != nil {
		opts.Controller.PublishState()
	}
	return m
}

func (m *model) subscribe() {
	handlers := map[events.Kind]func(events.Event){
		events.StateChanged:              m.onState,
		events.Notification:              m.onNotice,
		events.FocusRequested:            m.onFocus,
		events.LoadConfirmationRequested: m.onConfirmLoad,
		events.FileLoadTriggered:         m.onTriggerLoad,
		events.FileReady:                 m.onFile,
		events.ConfirmationRequested:     m.onConfirm,
	}
	for kind, h := range handlers {
		m.bus.Subscribe(kind, h)
	}
}

func (m *model) Init() tea.Cmd {
	return batchCmds([]tea.Cmd{textinput.Blink, m.restoreCmd(), m.autosaveTick()})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.autosaveNow()
			return m, tea.Quit
		}
		m.showSplash = false
		return m, m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case autosaveTickMsg:
		m.autosaveNow()
		return m, m.autosaveTick()
	case restoreMsg:
		if len(msg.data) == 0 {
			return m, nil
		}
		return m, m.publish(events.LoadFile{FileName: autosave.RestoreFileName, Content: msg.data})
	}
	return m, nil
}

// publish sends ev through the bus and returns whatever the output handlers
// asked for.
func (m *model) publish(evs ...events.Event) tea.Cmd {
	for _, ev := range evs {
		m.bus.Publish(ev.Kind(), ev)
	}
	if cmd := m.syncPrompt(); cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
	cmds := m.cmds
	m.cmds = nil
	return batchCmds(cmds)
}

func (m *model) onState(ev events.Event) {
	st, ok := ev.(events.State)
	if !ok {
		return
	}
	// a new tab starts the cursor on its last, editable column
	if st.UI.ActiveTab != m.state.UI.ActiveTab || st.UI.CurrentView != m.state.UI.CurrentView {
		m.cursor.Column = ""
	}
	m.state = st
	m.clampCursor()
}

func (m *model) onNotice(ev events.Event) {
	n, ok := ev.(events.Notice)
	if !ok {
		return
	}
	m.resetMessages()
	m.notice = n
}

func (m *model) onFocus(ev events.Event) {
	f, ok := ev.(events.RequestFocus)
	if !ok {
		return
	}
	if f.ElementID == controller.ChainInputID {
		m.cmds = append(m.cmds, m.openPrompt(promptChain, "Chain length (mm)", m.state.UI.DualChainInput))
		return
	}
	for _, id := range uistate.F2Sequence() {
		if string(id) == f.ElementID {
			m.cmds = append(m.cmds, m.openF2Prompt(id))
			return
		}
	}
}

func (m *model) onConfirmLoad(events.Event) {
	m.confirmLoad = true
}

func (m *model) onTriggerLoad(events.Event) {
	m.confirmLoad = false
	m.cmds = append(m.cmds, m.openPrompt(promptLoadPath, "File to load (.json or .csv)", ""))
}

func (m *model) onFile(ev events.Event) {
	f, ok := ev.(events.File)
	if !ok {
		return
	}
	path, err := m.writeFile(f)
	m.resetMessages()
	if err != nil {
		m.errMessage = fmt.Sprintf("write %s: %v", f.FileName, err)
		return
	}
	m.infoMessage = "Saved " + path
}

func (m *model) onConfirm(ev events.Event) {
	c, ok := ev.(events.Confirm)
	if !ok {
		return
	}
	m.confirm = &c
}

func (m *model) resetMessages() {
	m.errMessage = ""
	m.infoMessage = ""
	m.notice = events.Notice{}
}

func (m *model) restoreCmd() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	saver := m.saver
	return func() tea.Msg {
		data, ok := saver.Restore(context.Background())
		if !ok {
			return nil
		}
		return restoreMsg{data: data}
	}
}

func (m *model) autosaveTick() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	every := config.DefaultAutosaveInterval
	if m.cfg != nil && m.cfg.Config.AutosaveInterval > 0 {
		every = m.cfg.Config.AutosaveInterval
	}
	return tea.Tick(every, func(t time.Time) tea.Msg { return autosaveTickMsg(t) })
}

// autosaveNow snapshots the last published document. The snapshot is already
// a private copy, so nothing the controller does later can reach it.
func (m *model) autosaveNow() {
	m.saver.Save(context.Background(), m.state.Document)
}

func (m *model) clampCursor() {
	rows := 0
	if p := m.state.Document.Product(); p != nil {
		rows = len(p.Items)
	}
	if m.cursor.Row >= rows {
		m.cursor.Row = rows - 1
	}
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	cols := m.state.UI.VisibleColumns
	if len(cols) == 0 {
		m.cursor.Column = ""
		return
	}
	for _, c := range cols {
		if c == m.cursor.Column {
			return
		}
	}
	m.cursor.Column = cols[len(cols)-1]
}

func batchCmds(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}
