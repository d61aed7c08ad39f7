package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserDirName is the per-user directory holding configs, the runs database and logs.
const UserDirName = ".skyclimb"

// LoadClimb loads the climber tuning.
// Search order: customPath -> ~/.skyclimb/configs/climb.yaml -> ./configs/climb.yaml -> embedded default
func LoadClimb(customPath string) (ClimbConfig, error) {
	// Unset fields in a partial file keep their default values
	cfg := DefaultClimbConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("climb.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "climb.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := DefaultClimbConfig()
	if err := yaml.Unmarshal(defaultClimbYAML, &embedded); err != nil {
		return DefaultClimbConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (ClimbConfig, bool) {
	cfg := DefaultClimbConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDirName, "configs", filename)
}

// ApplyClimbPreset modifies the config based on a difficulty preset.
func ApplyClimbPreset(cfg *ClimbConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Health.Hearts = 5
		cfg.Culling.DeathFloorOffset *= 1.25
	case DifficultyHard:
		cfg.Health.Hearts = 2
		cfg.Culling.DeathFloorOffset *= 0.8
	}
}

// Marshal renders the tuning as YAML.
func Marshal(cfg ClimbConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal tuning: %w", err)
	}
	return data, nil
}
