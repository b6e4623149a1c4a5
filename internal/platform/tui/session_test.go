package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func sendSession(m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(SessionModel)
	}
	return m, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel("flappy", nil, nil, testConfig())
	if len(m.menu.items) != 2 {
		t.Fatalf("menu without journal has %d items, want Play and Quit", len(m.menu.items))
	}

	m, cmd := sendSession(m, keyMsg("enter"))
	if m.view != viewGame || m.game == nil {
		t.Fatalf("enter on Play did not start a game (view %d)", m.view)
	}
	if cmd == nil {
		t.Error("game start did not schedule a tick")
	}

	m, _ = sendSession(m, TickMsg{}, TickMsg{})
	if m.game.gameState.Tick != 2 {
		t.Errorf("game tick = %d, want 2", m.game.gameState.Tick)
	}

	m, _ = sendSession(m, keyMsg("esc"))
	if m.view != viewMenu || m.game != nil {
		t.Errorf("esc did not return to the menu (view %d)", m.view)
	}

	// A stale tick arriving at the menu is ignored.
	m, _ = sendSession(m, TickMsg{})
	if m.view != viewMenu {
		t.Error("tick left the menu")
	}
}

func TestSessionJournalAndReplay(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel("flappy", store, nil, testConfig())

	// Play until one run is journaled.
	m, _ = sendSession(m, keyMsg("enter"))
	for i := 0; i < 30; i++ {
		m, _ = sendSession(m, TickMsg{})
	}
	m, _ = sendSession(m, keyMsg("esc"))
	if n, _ := store.RunCount("flappy"); n != 1 {
		t.Fatalf("%d runs journaled, want 1", n)
	}

	// Menu: Play, Run journal, Quit.
	m, _ = sendSession(m, keyMsg("down"), keyMsg("enter"))
	if m.view != viewJournal || m.journal == nil {
		t.Fatalf("journal not opened (view %d)", m.view)
	}
	if len(m.journal.runs) != 1 {
		t.Fatalf("journal shows %d runs, want 1", len(m.journal.runs))
	}

	m, _ = sendSession(m, keyMsg("enter"))
	if m.view != viewGame || m.game == nil || m.game.script == nil {
		t.Fatal("selecting a run did not start its replay")
	}
	for i := 0; i < 30; i++ {
		m, _ = sendSession(m, TickMsg{})
	}
	if !m.game.Finished() {
		t.Error("replay did not finish")
	}
	if n, _ := store.RunCount("flappy"); n != 1 {
		t.Errorf("replay journaled a run: %d runs", n)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel("flappy", nil, nil, testConfig())
	m, cmd := sendSession(m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Error("q on the menu did not quit")
	}
}

func TestSessionUnknownGame(t *testing.T) {
	m := NewSessionModel("no_such_game", nil, nil, core.DefaultConfig())
	m, _ = sendSession(m, keyMsg("enter"))
	if m.view != viewMenu || m.err == "" {
		t.Errorf("unknown game: view %d err %q", m.view, m.err)
	}
}
