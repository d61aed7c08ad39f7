// Package climb is the playable Sky Climb mode: it wires the engine to the
// terminal host through the registry.Game contract.
package climb

import (
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/content"
	"github.com/vovakirdan/skyclimb/internal/core"
	"github.com/vovakirdan/skyclimb/internal/games/climb/engine"
	"github.com/vovakirdan/skyclimb/internal/logging"
	"github.com/vovakirdan/skyclimb/internal/registry"
)

// Mode ids.
const (
	ModeEndless = "climb"
	ModeDaily   = "climb_daily"
)

// holdSeconds bridges the gap between a key press and the terminal's key
// repeat, since terminals never report key release.
const holdSeconds = 0.3

// hitFlashTicks is how long the hearts blink after damage.
const hitFlashTicks = 30

var catalog = content.MustDefault()

var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = logging.Discard()
	bellOn           bool
)

// SetConfigPath sets the custom tuning file used by the next Reset.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger routes game events to l. Nil restores the discarding logger.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// SetBell makes landing damage ring the terminal bell.
func SetBell(on bool) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	bellOn = on
}

type settings struct {
	path   string
	preset config.DifficultyPreset
	logger *log.Logger
	bell   bool
}

func currentSettings() settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings{path: configPath, preset: difficultyPreset, logger: logger, bell: bellOn}
}

// heldDirection turns key presses into a held direction that lasts for a
// short window after the last press.
type heldDirection struct {
	dir       int
	remaining int
}

func (h *heldDirection) update(in core.InputFrame, window int) int {
	if d := int(in.Horizontal()); d != 0 {
		h.dir, h.remaining = d, window
		return h.dir
	}
	if h.remaining > 0 {
		h.remaining--
	}
	if h.remaining == 0 {
		h.dir = 0
	}
	return h.dir
}

// Game implements registry.Game for the endless and daily climbs.
type Game struct {
	daily   bool
	now     func() time.Time
	runtime core.RuntimeConfig
	log     *log.Logger

	world  *engine.World
	hearts *Hearts
	bell   *Bell
	hold   heldDirection

	paused    bool
	ticks     int
	flash     int
	seenHits  int
	endLogged bool
}

// New creates an endless climb.
func New() *Game {
	return &Game{now: time.Now, log: logging.Discard()}
}

// NewDaily creates a climb whose seed is derived from the current UTC date.
func NewDaily() *Game {
	g := New()
	g.daily = true
	return g
}

// ID returns the mode id.
func (g *Game) ID() string {
	if g.daily {
		return ModeDaily
	}
	return ModeEndless
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.daily {
		return "Sky Climb: Daily"
	}
	return "Sky Climb"
}

// Reset starts a new run. The tuning file is re-read every time, so edits
// picked up by the config watcher apply from the next run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	s := currentSettings()
	g.runtime = runtime
	g.log = s.logger

	cfg := g.loadConfig(s)
	seed := runtime.Seed
	if g.daily {
		seed = engine.DailySeed(g.now())
	}

	if g.world == nil || !reflect.DeepEqual(cfg, g.world.Config()) {
		g.hearts = NewHearts(cfg.Health.Hearts)
		g.bell = NewBell(s.bell)
		g.world = engine.NewWorld(cfg, catalog, g.hearts, g.bell)
	} else {
		g.hearts.Reset(cfg.Health.Hearts)
		g.bell.ring = s.bell
	}
	g.bell.Take()
	g.world.Reset(seed)

	g.hold = heldDirection{}
	g.paused = false
	g.ticks = 0
	g.flash = 0
	g.seenHits = 0
	g.endLogged = false

	g.log.Debug("run started", "mode", g.ID(), "seed", seed, "hearts", g.hearts.Max())
}

func (g *Game) loadConfig(s settings) config.ClimbConfig {
	if g.daily {
		// Daily runs are comparable between players, so local tuning is ignored.
		cfg := config.DefaultClimbConfig()
		config.ApplyClimbPreset(&cfg, config.DifficultyNormal)
		return cfg
	}

	cfg, err := config.LoadClimb(s.path)
	if err != nil {
		g.log.Warn("using default tuning", "err", err)
		cfg = config.DefaultClimbConfig()
	}
	config.ApplyClimbPreset(&cfg, s.preset)

	if err := catalog.Check(cfg); err != nil {
		g.log.Warn("tuning does not match the prefab catalog, using defaults", "err", err)
		cfg = config.DefaultClimbConfig()
		config.ApplyClimbPreset(&cfg, s.preset)
	}
	return cfg
}

func (g *Game) holdWindow() int {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return max(int(math.Ceil(holdSeconds*float64(rate))), 1)
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.hearts.Dead() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dir := g.hold.update(in, g.holdWindow())
	intent := engine.Intent{DirX: dir, JumpPressed: in.Has(core.ActionJump)}
	if dir != 0 {
		intent.Magnitude = 1
	}

	rep := g.world.Step(g.runtime.TickDuration(), intent)
	if rep.Skipped {
		g.log.Debug("frame skipped", "frame", g.world.Frames())
		return core.StepResult{State: g.State(), Skipped: true}
	}
	g.ticks++

	if rep.RolledBack {
		p := g.world.Player()
		g.log.Warn("physics rolled back", "frame", g.world.Frames(), "seed", g.world.Seed(), "x", p.X, "z", p.Z)
	}
	if rep.FallDamage || rep.Hazard {
		g.log.Debug("damage", "fall", rep.FallDamage, "hazard", rep.Hazard, "hearts", g.hearts.Current())
	}

	if hits := g.hearts.Hits(); hits != g.seenHits {
		g.seenHits = hits
		g.flash = hitFlashTicks
	} else if g.flash > 0 {
		g.flash--
	}

	if g.hearts.Dead() && !g.endLogged {
		g.endLogged = true
		g.log.Info("run ended", "mode", g.ID(), "seed", g.world.Seed(), "height", g.score(), "rescues", g.world.Rescues())
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) score() int {
	tile := g.world.Config().World.TileSize
	if tile <= 0 {
		tile = 16
	}
	return int(g.world.Height() / tile)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.score(),
		Ticks:    g.ticks,
		Seed:     g.world.Seed(),
		GameOver: g.hearts.Dead(),
		Paused:   g.paused,
	}
}

// Summary describes the current run.
func (g *Game) Summary() core.RunSummary {
	if g.world == nil {
		return core.RunSummary{Mode: g.ID()}
	}
	return core.RunSummary{
		Mode:      g.ID(),
		Seed:      g.world.Seed(),
		Height:    g.score(),
		Platforms: g.world.Generated(),
		Rescues:   g.world.Rescues(),
		Duration:  g.world.Clock(),
	}
}

// World exposes the running simulation to the renderer and tests.
func (g *Game) World() *engine.World {
	return g.world
}

// Hearts exposes the health pool.
func (g *Game) Hearts() *Hearts {
	return g.hearts
}

// Rings returns the terminal bells queued since the last call.
func (g *Game) Rings() int {
	if g.bell == nil {
		return 0
	}
	return g.bell.Take()
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ModeEndless,
		Title:       "Sky Climb",
		Description: "Endless climb from a random or --seed seed",
	}, func() registry.Game { return New() })
	registry.Register(registry.GameInfo{
		ID:          ModeDaily,
		Title:       "Sky Climb: Daily",
		Description: "Everyone climbs the same tower today",
	}, func() registry.Game { return NewDaily() })
}
