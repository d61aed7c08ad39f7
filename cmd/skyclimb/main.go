// skyclimb is an endless vertical platformer for the terminal.
//
// Usage:
//
//	skyclimb play            - Climb an endless tower
//	skyclimb play --daily    - Climb today's shared tower
//	skyclimb serve           - Start SSH server for remote play
//	skyclimb scores [mode]   - Show the best runs
//	skyclimb tuning          - Print the effective tuning YAML
//	skyclimb modes           - List the playable modes
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for a reproducible tower
//	--db <path>         - Set database path (default: ~/.skyclimb/runs.db)
//	--log-file <path>   - Write logs to a rotating file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/games/climb"
	"github.com/vovakirdan/skyclimb/internal/logging"
	"github.com/vovakirdan/skyclimb/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyclimb",
	Short: "Skyclimb - climb an endless tower in your terminal",
	Long: `Skyclimb is an endless vertical platformer. Jump from platform to
platform, keep ahead of the rising floor and see how high you get.

Available commands:
  play     - Start a run
  serve    - Start SSH server for remote play
  scores   - View the best runs
  tuning   - Print the effective tuning
  modes    - List the playable modes

Examples:
  skyclimb play
  skyclimb play --daily
  skyclimb play --difficulty hard --seed 42
  skyclimb serve --ssh :2222
  skyclimb scores climb_daily`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this rotating file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(tuningCmd)
	rootCmd.AddCommand(modesCmd)
}

// newLogger builds the logger from the global flags. Without --log-file,
// output goes to fallback, which may be nil to drop it.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	opts := logging.DefaultOptions(flagLogFile)
	opts.Level = flagLogLevel
	opts.Writer = fallback
	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, nil, err
	}
	climb.SetLogger(logger)
	return logger, closer, nil
}
