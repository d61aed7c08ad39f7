package config

import "math"

// DifficultyManager calculates dynamic generator parameters from run progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) from the rise
// climbed so far (pixels) or the ticks elapsed.
func (d *DifficultyManager) Level(rise float64, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "height":
		progress = rise / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TierWeights shifts weight from the first (easiest) tier to the last
// (hardest) tier as the level grows. The input slice is not modified.
func (d *DifficultyManager) TierWeights(base []float64, rise float64, ticks int) []float64 {
	out := make([]float64, len(base))
	copy(out, base)
	if len(out) < 2 {
		return out
	}

	level := d.Level(rise, ticks)
	moved := out[0] * clampF(level*d.cfg.Scaling.TierShift, 0.0, 0.9)
	out[0] -= moved
	out[len(out)-1] += moved
	return out
}

// PrefabWeight scales a non-rescue prefab weight up with the level, so
// narrow and edge-locked pieces appear more often late in a run.
func (d *DifficultyManager) PrefabWeight(base float64, rescue bool, rise float64, ticks int) float64 {
	if rescue {
		return base
	}
	level := d.Level(rise, ticks)
	return base * (1.0 + level*d.cfg.Scaling.NarrowBonus)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
