package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyclimb/internal/core"
	"github.com/vovakirdan/skyclimb/internal/registry"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

// SessionModel is the top-level model for local and SSH sessions: the
// climb, with the runs board one key away.
type SessionModel struct {
	game      Model
	board     *ScoreboardModel
	store     *storage.Store
	width     int
	height    int
	tickAlive bool // A tick is in flight or will be re-armed by the game
	quitting  bool
}

// NewSessionModel creates a session around a game.
func NewSessionModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) SessionModel {
	return SessionModel{
		game:      NewModel(game, store, cfg, opts...),
		store:     store,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		tickAlive: true,
	}
}

// Init starts the climb.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update routes messages to the board while it is open and to the climb
// otherwise. The simulation does not advance while the board is shown.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		if m.board != nil {
			next, _ := m.board.Update(msg)
			board := next.(ScoreboardModel)
			m.board = &board
		}
		return m.updateGame(msg)
	}

	if m.board == nil {
		return m.updateGame(msg)
	}

	switch msg.(type) {
	case TickMsg:
		m.tickAlive = false
		return m, nil
	case tea.KeyMsg:
		return m.updateBoard(msg)
	}
	return m.updateGame(msg)
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.WantsBoard() {
		m.game.wantsBoard = false
		board := NewScoreboardModel(m.store, m.width, m.height, m.game.game.ID())
		board.embedded = true
		m.board = &board
	}
	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board := next.(ScoreboardModel)
	m.board = &board

	if board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if board.IsGoingBack() {
		m.board = nil
		if !m.tickAlive {
			m.tickAlive = true
			return m, tickCmd(m.game.config.TickRate)
		}
		return m, nil
	}
	return m, cmd
}

// View renders the board or the climb.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	return m.game.View()
}

// BoardOpen reports whether the runs board is shown.
func (m SessionModel) BoardOpen() bool {
	return m.board != nil
}

// Run starts a local session in the alternate screen.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	p := tea.NewProgram(
		NewSessionModel(game, store, cfg, opts...),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
