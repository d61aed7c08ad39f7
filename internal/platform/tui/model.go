package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/core"
	"github.com/vovakirdan/skyclimb/internal/logging"
	"github.com/vovakirdan/skyclimb/internal/registry"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

// noticeTicks is how long a status notice stays in the help line.
const noticeTicks = 180

// bellTicks keeps a BEL in the help line for longer than one renderer
// frame, so the renderer writes it once, in order with the frame.
const bellTicks = 6

// ringer is implemented by games that queue terminal bells.
type ringer interface {
	Rings() int
}

// ConfigChangedMsg reports an edited tuning file.
type ConfigChangedMsg struct {
	Path string
}

// ConfigErrorMsg reports a watcher failure.
type ConfigErrorMsg struct {
	Err error
}

// watchCmd waits for the next watcher event.
func watchCmd(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}

// Option customises a Model.
type Option func(*Model)

// WithLogger routes host events to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithWatcher reloads tuning when the watched files change.
func WithWatcher(w *config.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// WithScreenshotDir sets where ctrl+s writes screenshots.
func WithScreenshotDir(dir string) Option {
	return func(m *Model) {
		m.shotDir = dir
	}
}

// Model is the Bubble Tea model for a climb.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	fixedSeed  bool
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	watcher    *config.Watcher
	shotDir    string
	notice     string
	noticeLeft int
	bellLeft   int
	quitting   bool
	wantsBoard bool
	runSaved   bool // Whether the current run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
// A zero seed picks a fresh time-based seed for every run.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:     store,
		config:    cfg,
		fixedSeed: fixed,
		keys:      NewKeyMapper(),
		help:      help.New(),
		logger:    logging.Discard(),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	if m.shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			m.shotDir = filepath.Join(home, config.UserDirName, "screenshots")
		}
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		m.reloadTuning(msg.Path)
		return m, watchCmd(m.watcher)

	case ConfigErrorMsg:
		m.logger.Warn("config watcher", "err", msg.Err)
		return m, watchCmd(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.IsBoard(msg) {
		m.wantsBoard = true
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize follows the terminal size. The run keeps going; the game
// scales its view to whatever screen it gets.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.noticeLeft > 0 {
		m.noticeLeft--
	}
	if m.bellLeft > 0 {
		m.bellLeft--
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if r, ok := m.game.(ringer); ok && r.Rings() > 0 {
		m.bellLeft = bellTicks
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run. Unless a seed was fixed, every run gets a new one.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.inputFrame.Clear()
}

// saveRun records the finished run. Storage is best-effort.
func (m *Model) saveRun() {
	summary := m.game.Summary()
	m.logger.Info("run finished", "mode", summary.Mode, "seed", summary.Seed, "height", summary.Height)
	if m.store == nil || summary.Height <= 0 {
		return
	}
	if _, err := m.store.SaveRun(storage.RunFromSummary(summary)); err != nil {
		m.logger.Warn("could not save run", "err", err)
		m.setNotice("run not saved")
		return
	}
	m.setNotice(fmt.Sprintf("run saved: height %d", summary.Height))
}

// reloadTuning validates an edited tuning file. The game re-reads it on
// its next Reset, so a valid edit applies from the next run.
func (m *Model) reloadTuning(path string) {
	if _, err := config.LoadClimb(path); err != nil {
		m.logger.Warn("tuning rejected", "path", path, "err", err)
		m.setNotice("tuning invalid, keeping the old one")
		return
	}
	m.logger.Info("tuning changed", "path", path)
	m.setNotice("tuning reloaded, applies next run")
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeLeft = noticeTicks
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.setNotice("screenshot saved")
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.keys.Keys))
	if m.noticeLeft > 0 {
		footer = noticeStyle.Render(m.notice)
	}
	if m.bellLeft > 0 {
		footer = "\a" + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// WantsBoard returns true if the user asked for the runs board.
func (m Model) WantsBoard() bool {
	return m.wantsBoard
}
