package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/core"
	"github.com/vovakirdan/skyclimb/internal/games/climb"
	"github.com/vovakirdan/skyclimb/internal/platform/tui"
	"github.com/vovakirdan/skyclimb/internal/registry"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagDaily      bool
	flagWatch      bool
	flagBell       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start climbing.

Controls:
  Left/A, Right/D  - Run
  Space/Up/W       - Jump
  P/Esc            - Pause
  R                - Restart with a new tower
  Tab              - Best runs
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, 5 hearts
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, 2 hearts
  fixed  - No progression, stays at config's initial level

The daily climb uses the same tower for everyone on a given UTC day and
ignores --config and --difficulty so runs stay comparable.

Examples:
  skyclimb play
  skyclimb play --daily
  skyclimb play --difficulty hard
  skyclimb play --config ./my-climb.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagDaily, "daily", false, "Climb today's shared tower")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config when it changes")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on landing damage")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadClimb(flagConfig); err != nil {
			return err
		}
	}

	logger, closer, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	mode := climb.ModeEndless
	if flagDaily {
		mode = climb.ModeDaily
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	climb.SetConfigPath(flagConfig)
	climb.SetDifficultyPreset(flagDifficulty)
	climb.SetBell(flagBell)

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Runs are not kept without a database, play goes on
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagWatch && flagConfig != "" {
		watcher, watchErr := config.NewWatcher(flagConfig)
		if watchErr != nil {
			logger.Warn("config watch disabled", "err", watchErr)
		} else {
			defer watcher.Close()
			opts = append(opts, tui.WithWatcher(watcher))
		}
	}

	logger.Info("starting run", "mode", mode, "seed", flagSeed, "difficulty", flagDifficulty)
	if err := tui.Run(game, store, cfg, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
