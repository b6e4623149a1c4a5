package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  string
		want core.Action
	}{
		{" ", core.ActionFlap},
		{"w", core.ActionFlap},
		{"up", core.ActionFlap},
		{"p", core.ActionPause},
		{"esc", core.ActionBack},
		{"b", core.ActionBack},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
		{"enter", core.ActionNone},
	}

	for _, tt := range tests {
		if got := km.Action(keyMsg(tt.key)); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMenuKeyMap(t *testing.T) {
	km := DefaultMenuKeyMap()

	tests := []struct {
		key     string
		binding key.Binding
	}{
		{"up", km.Up},
		{"k", km.Up},
		{"j", km.Down},
		{"enter", km.Select},
		{" ", km.Select},
		{"esc", km.Back},
		{"q", km.Quit},
	}

	for _, tt := range tests {
		if !key.Matches(keyMsg(tt.key), tt.binding) {
			t.Errorf("key %q does not match binding %v", tt.key, tt.binding.Keys())
		}
	}
}
