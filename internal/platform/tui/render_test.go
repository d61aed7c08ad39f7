package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyclimb/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 0, '@', core.ColorPlayer)
	s.DrawTextColored(0, 1, "==", core.ColorGrass)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "@", "=="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("l"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{runeKey("p"), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.want || quit != tt.wantQuit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.want, tt.wantQuit)
		}
	}

	if !km.IsBoard(tea.KeyMsg{Type: tea.KeyTab}) {
		t.Error("tab should open the board")
	}

	var frame core.InputFrame
	km.MapKeyToFrame(runeKey("d"), &frame)
	km.MapKeyToFrame(runeKey("w"), &frame)
	if !frame.Has(core.ActionRight) || !frame.Has(core.ActionJump) {
		t.Errorf("frame = %+v, want right and jump", frame)
	}
}
