package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/content"
)

var flagTuningCheck bool

var tuningCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Print the effective tuning",
	Long: `Print the tuning a run would use, after the config search path and
the difficulty preset are applied. Redirect it to a file to start a custom
config.

Search order: --config, ~/.skyclimb/configs/climb.yaml,
./configs/climb.yaml, then the built-in defaults.

Examples:
  skyclimb tuning > my-climb.yaml
  skyclimb tuning --difficulty hard
  skyclimb tuning --config ./my-climb.yaml --check`,
	Args: cobra.NoArgs,
	RunE: runTuning,
}

func init() {
	tuningCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	tuningCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	tuningCmd.Flags().BoolVar(&flagTuningCheck, "check", false, "Only validate, print nothing on success")
}

func runTuning(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadClimb(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyClimbPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := content.Default()
	if err != nil {
		return err
	}
	if err := catalog.Check(cfg); err != nil {
		return err
	}

	if flagTuningCheck {
		fmt.Fprintln(os.Stderr, "tuning ok")
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
