package climb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/skyclimb/internal/core"
	"github.com/vovakirdan/skyclimb/internal/games/climb/engine"
	"github.com/vovakirdan/skyclimb/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	SetConfigPath("")
	SetDifficultyPreset("")
	g := New()
	g.Reset(testRuntime(seed))
	return g
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeEndless, ModeDaily} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
		}
	}
	g, err := registry.Create(ModeDaily)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != ModeDaily || g.Title() != "Sky Climb: Daily" {
		t.Errorf("daily mode = %q %q", g.ID(), g.Title())
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t, 42)

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused || state.Seed != 42 {
		t.Errorf("State() after Reset = %+v", state)
	}
	p := g.World().Player()
	if !p.Grounded || p.X != g.World().Config().World.Width/2 {
		t.Errorf("player after Reset = %+v", p)
	}
	if g.Hearts().Current() != 3 {
		t.Errorf("hearts = %d, want 3", g.Hearts().Current())
	}
	if len(g.World().Platforms()) == 0 {
		t.Error("no platforms generated on Reset")
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		switch {
		case i%45 == 0:
			inputs[i] = core.NewInputFrame(core.ActionJump, core.ActionRight)
		case i%90 < 30:
			inputs[i] = core.NewInputFrame(core.ActionLeft)
		}
	}

	run := func() (core.GameState, engine.PlayerState) {
		g := newTestGame(t, 7)
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
		}
		return state, g.World().Player()
	}

	s1, p1 := run()
	s2, p2 := run()
	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if p1 != p2 {
		t.Errorf("players differ: %+v vs %+v", p1, p2)
	}
}

func TestJump(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(core.NewInputFrame(core.ActionJump))
	g.Step(core.NewInputFrame())

	if z := g.World().Player().Z; z <= 0 {
		t.Errorf("player Z after jump = %v, want > 0", z)
	}
	if g.bell.Jumps() != 1 {
		t.Errorf("jump cues = %d, want 1", g.bell.Jumps())
	}
}

func TestHeldDirectionWindow(t *testing.T) {
	var h heldDirection
	right := core.NewInputFrame(core.ActionRight)
	none := core.NewInputFrame()

	want := []int{1, 1, 1, 0, 0}
	frames := []core.InputFrame{right, none, none, none, none}
	for i, in := range frames {
		if got := h.update(in, 3); got != want[i] {
			t.Errorf("frame %d: dir = %d, want %d", i, got, want[i])
		}
	}

	h.update(right, 3)
	if got := h.update(core.NewInputFrame(core.ActionLeft), 3); got != -1 {
		t.Errorf("reversing: dir = %d, want -1", got)
	}
}

func TestTapMovesThenStops(t *testing.T) {
	g := newTestGame(t, 3)
	startX := g.World().Player().X

	g.Step(core.NewInputFrame(core.ActionRight))
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}

	p := g.World().Player()
	if p.X <= startX {
		t.Errorf("X = %v, want > %v", p.X, startX)
	}
	if p.VX != 0 {
		t.Errorf("VX = %v after the hold window, want 0", p.VX)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, 5)

	res := g.Step(core.NewInputFrame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Pause did not pause")
	}
	before := g.World().Frames()
	g.Step(core.NewInputFrame(core.ActionJump))
	if g.World().Frames() != before {
		t.Error("world stepped while paused")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause message not rendered")
	}

	if g.Step(core.NewInputFrame(core.ActionPause)).State.Paused {
		t.Error("second Pause did not resume")
	}
}

func TestGameOverFreezes(t *testing.T) {
	g := newTestGame(t, 9)
	g.Step(core.NewInputFrame())

	g.Hearts().HazardDamage(10)
	res := g.Step(core.NewInputFrame(core.ActionJump))
	if !res.State.GameOver {
		t.Fatal("GameOver = false with no hearts left")
	}
	ticks := res.State.Ticks
	if g.Step(core.NewInputFrame()).State.Ticks != ticks {
		t.Error("ticks advanced after game over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "YOU FELL") {
		t.Error("game over message not rendered")
	}
}

func TestDailySeed(t *testing.T) {
	SetConfigPath("")
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	g := NewDaily()
	g.now = func() time.Time { return day }
	g.Reset(testRuntime(123))

	if got, want := g.State().Seed, engine.DailySeed(day); got != want {
		t.Errorf("daily seed = %d, want %d", got, want)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "DAILY 2026-03-14") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}

func TestDailyIgnoresCustomTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climb.yaml")
	if err := os.WriteFile(path, []byte("health:\n  hearts: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := NewDaily()
	g.Reset(testRuntime(1))
	if g.Hearts().Max() != 3 {
		t.Errorf("daily hearts = %d, want 3", g.Hearts().Max())
	}
}

func TestCustomTuningAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climb.yaml")
	if err := os.WriteFile(path, []byte("health:\n  hearts: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(testRuntime(1))
	if g.Hearts().Max() != 7 {
		t.Errorf("hearts = %d, want 7 from custom tuning", g.Hearts().Max())
	}

	SetDifficultyPreset("hard")
	g.Reset(testRuntime(1))
	if g.Hearts().Max() != 2 {
		t.Errorf("hearts = %d, want 2 with the hard preset", g.Hearts().Max())
	}
}

func TestTuningFallbacks(t *testing.T) {
	dir := t.TempDir()
	unknownPrefab := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknownPrefab, []byte("generator:\n  rescue_prefab: lava_pit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"prefab not in catalog", unknownPrefab},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetConfigPath(tt.path)
			t.Cleanup(func() { SetConfigPath("") })

			g := New()
			g.Reset(testRuntime(1))
			cfg := g.World().Config()
			if cfg.Generator.RescuePrefab != "grass_wide" || g.Hearts().Max() != 3 {
				t.Errorf("fallback tuning = %q, %d hearts", cfg.Generator.RescuePrefab, g.Hearts().Max())
			}
		})
	}
}

func TestRestartKeepsIDsUnique(t *testing.T) {
	g := newTestGame(t, 11)
	first := g.World().Session()
	g.Reset(testRuntime(11))
	if g.World().Session() == first {
		t.Error("session not bumped on restart")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 42)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.ContainsRune(out, PlayerGround) {
		t.Error("player not rendered")
	}
	if !strings.Contains(screen.Row(0), "♥♥♥") || !strings.Contains(screen.Row(0), "HEIGHT 0") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.ContainsRune(out, GroundChar) {
		t.Error("ground not rendered")
	}
	if !strings.ContainsRune(out, WallChar) {
		t.Error("walls not rendered")
	}

	small := core.NewScreen(10, 4)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("small screen = %q", small.String())
	}
}

func TestFadeRune(t *testing.T) {
	tests := []struct {
		opacity float64
		want    rune
	}{
		{0.99, '▓'},
		{0.5, '▒'},
		{0.1, '░'},
		{0, '░'},
	}
	for _, tt := range tests {
		if got := fadeRune(tt.opacity); got != tt.want {
			t.Errorf("fadeRune(%v) = %q, want %q", tt.opacity, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	g := newTestGame(t, 77)
	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}

	s := g.Summary()
	if s.Mode != ModeEndless || s.Seed != 77 {
		t.Errorf("Summary() = %+v", s)
	}
	if s.Platforms == 0 {
		t.Error("Summary().Platforms = 0")
	}
	if s.Duration < 0.99 || s.Duration > 1.01 {
		t.Errorf("Summary().Duration = %v, want ~1s", s.Duration)
	}
}

func TestBellRings(t *testing.T) {
	SetBell(true)
	t.Cleanup(func() { SetBell(false) })

	g := newTestGame(t, 5)
	g.bell.LandingDamage()
	if n := g.Rings(); n != 1 {
		t.Errorf("Rings() = %d, want 1", n)
	}
	if n := g.Rings(); n != 0 {
		t.Errorf("Rings() after drain = %d, want 0", n)
	}

	g.bell.LandingDamage()
	SetBell(false)
	g.Reset(testRuntime(5))
	g.bell.LandingDamage()
	if n := g.Rings(); n != 0 {
		t.Errorf("bell still rings after SetBell(false): %d", n)
	}
	if g.bell.Damage() != 3 {
		t.Errorf("damage cues = %d, want 3", g.bell.Damage())
	}
}
