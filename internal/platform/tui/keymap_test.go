package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", runeKey('j'), core.ActionDown, false},
		{"wasd left", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"mute", runeKey('m'), core.ActionMute, false},
		{"f2", tea.KeyMsg{Type: tea.KeyF2}, core.ActionRestart, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"yes", runeKey('y'), core.ActionYes, false},
		{"no", runeKey('n'), core.ActionNo, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionNo, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('m'), &frame) {
		t.Error("m reported as quit")
	}
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyDown}, &frame)
	if !frame.Has(core.ActionMute) || !frame.Has(core.ActionDown) {
		t.Errorf("frame = %v, want mute and down", frame.Actions)
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q not reported as quit")
	}
}

func TestIsScreenshot(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	if !km.IsScreenshot(tea.KeyMsg{Type: tea.KeyCtrlS}) {
		t.Error("ctrl+s not a screenshot")
	}
	if km.IsScreenshot(runeKey('s')) {
		t.Error("plain s is a screenshot")
	}
}
