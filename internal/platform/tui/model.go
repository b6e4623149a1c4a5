package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// SavedRun is a finished run as the model last saw it.
type SavedRun struct {
	ID      string // Journal ID, empty when not stored
	Summary core.RunSummary
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	width      int
	height     int
	lastRun    *SavedRun

	script    []core.InputFrame // Recorded inputs when watching a replay
	scriptPos int
	expected  int // Recorded score of the replayed run
	finished  bool

	embedded   bool // Hosted inside a SessionModel
	quitting   bool
	backToMenu bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithStore journals every finished run to store.
func WithStore(store *storage.Store) ModelOption {
	return func(m *Model) {
		m.store = store
	}
}

// WithLogger sets the logger for run and scoring events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithReplay makes the model play back a recorded run instead of reading
// the keyboard. Nothing is journaled in this mode.
func WithReplay(run core.RunSummary) ModelOption {
	return func(m *Model) {
		m.config.Seed = run.Seed
		m.script = replay.Frames(run)
		m.expected = run.Score
	}
}

func embedded() ModelOption {
	return func(m *Model) {
		m.embedded = true
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		logger:     log.New(io.Discard),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.screen = core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-m.footerHeight(), 1))
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// footerHeight is the number of rows below the playfield.
func (m Model) footerHeight() int {
	if !m.help.ShowAll {
		return 2
	}
	rows := 0
	for _, col := range m.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return 1 + rows
}

// resize fits the playfield to the window. The game simulates in its own
// units, so nothing needs resetting.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.help.Width = width
	m.screen.Resize(width, max(height-m.footerHeight(), 1))
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit

	case core.ActionFlap, core.ActionPause:
		// A replay is driven by its script only.
		if m.script == nil {
			m.inputFrame.Set(a)
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished || m.backToMenu {
		return m, nil
	}

	in := m.inputFrame
	if m.script != nil {
		if m.scriptPos >= len(m.script) {
			m.finished = true
			return m, nil
		}
		in = m.script[m.scriptPos]
		m.scriptPos++
	}

	result := m.game.Step(in)
	m.gameState = result.State
	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	if m.finished {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// handleEvent logs game events and journals finished runs.
func (m *Model) handleEvent(ev core.Event) {
	switch ev.Kind {
	case core.EventScored:
		m.logger.Debug("scored", "game", m.game.ID(), "pipe", ev.Pipe, "score", ev.Score)

	case core.EventRunEnded:
		if ev.Run == nil {
			return
		}
		run := SavedRun{Summary: *ev.Run}

		if m.script != nil {
			m.finished = true
			m.lastRun = &run
			return
		}

		if m.store != nil {
			id, err := m.store.SaveRun(m.game.ID(), run.Summary)
			if err != nil {
				m.logger.Warn("could not save run", "error", err)
			} else {
				run.ID = id
			}
		}
		m.logger.Info("run finished",
			"game", m.game.ID(),
			"id", run.ID,
			"score", run.Summary.Score,
			"ticks", run.Summary.Ticks,
			"flaps", len(run.Summary.Inputs),
		)
		m.lastRun = &run
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// status returns the line shown under the playfield.
func (m Model) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  score %d", m.game.Title(), m.gameState.Score)

	if m.script != nil {
		switch {
		case m.finished && m.lastRun != nil:
			fmt.Fprintf(&b, "  replay finished: score %d (recorded %d)", m.lastRun.Summary.Score, m.expected)
		case m.finished:
			b.WriteString("  replay finished without a crash")
		default:
			fmt.Fprintf(&b, "  replay %d/%d", m.scriptPos, len(m.script))
		}
		return b.String()
	}

	fmt.Fprintf(&b, "  runs %d", m.gameState.Runs)
	if m.lastRun != nil {
		fmt.Fprintf(&b, "  last %d", m.lastRun.Summary.Score)
		if m.lastRun.ID != "" {
			fmt.Fprintf(&b, " [%s]", shortID(m.lastRun.ID))
		}
	}
	if m.gameState.Paused {
		b.WriteString("  PAUSED")
	}
	return b.String()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Finished reports whether a replay has played to its end.
func (m Model) Finished() bool {
	return m.finished
}

// LastRun returns the most recently finished run, if any.
func (m Model) LastRun() (SavedRun, bool) {
	if m.lastRun == nil {
		return SavedRun{}, false
	}
	return *m.lastRun, true
}

// shortID abbreviates a run ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
