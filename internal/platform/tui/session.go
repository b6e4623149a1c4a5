package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewJournal
)

// SessionModel manages the full session flow: menu -> game or journal -> menu.
// Every session owns its own game instance; only the store is shared.
type SessionModel struct {
	gameID   string
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	game     *Model
	journal  *JournalModel
	err      string // Last error shown on the menu
	quitting bool
}

// NewSessionModel creates a new session model for the given game.
func NewSessionModel(gameID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SessionModel{
		gameID: gameID,
		store:  store,
		logger: logger,
		config: cfg,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	title := m.gameID
	for _, info := range registry.List() {
		if info.ID == m.gameID {
			title = info.Title
		}
	}
	return NewMenuModel(title, m.config, m.store != nil)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewJournal:
		return m.updateJournal(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		return m.startGame(nil)

	case ChoiceJournal:
		journal := NewJournalModel(m.store, m.gameID, m.config.ScreenW, m.config.ScreenH)
		journal.embedded = true
		m.journal = &journal
		m.view = viewJournal
		return m, journal.Init()
	}

	return m, cmd
}

// startGame creates a fresh game and switches to it. A replay is watched
// when replayOf is non-nil.
func (m SessionModel) startGame(replayOf *core.RunSummary) (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.logger.Error("could not create game", "game", m.gameID, "error", err)
		m.err = err.Error()
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, nil
	}

	opts := []ModelOption{WithLogger(m.logger), embedded()}
	if replayOf != nil {
		opts = append(opts, WithReplay(*replayOf))
	} else {
		opts = append(opts, WithStore(m.store))
	}

	gameModel := NewModel(game, m.config, opts...)
	m.game = &gameModel
	m.view = viewGame
	m.err = ""
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateJournal handles updates when browsing the run journal.
func (m SessionModel) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.journal.Update(msg)
	if journal, ok := newModel.(JournalModel); ok {
		m.journal = &journal
	}

	switch {
	case m.journal.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.journal.Selected() != nil:
		run := m.journal.Selected().Summary()
		m.journal = nil
		return m.startGame(&run)

	case m.journal.IsGoingBack():
		m.journal = nil
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewJournal:
		return m.journal.View()
	}

	if m.err != "" {
		return m.menu.View() + "\n" + centerText(dimStyle.Render(m.err), m.config.ScreenW)
	}
	return m.menu.View()
}

// RunSession runs a full menu session in the local terminal.
func RunSession(gameID string, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(gameID, store, logger, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
