// Package config provides YAML-based tuning loading and difficulty
// management for the climber.
package config

import (
	"errors"
	"fmt"
)

// ClimbConfig contains the full tuning table for one run.
// Distances are world pixels, speeds pixels per second, timers milliseconds.
type ClimbConfig struct {
	World      ClimbWorld       `yaml:"world"`
	Physics    ClimbPhysics     `yaml:"physics"`
	Jump       ClimbJump        `yaml:"jump"`
	Collision  ClimbCollision   `yaml:"collision"`
	Generator  ClimbGenerator   `yaml:"generator"`
	Culling    ClimbCulling     `yaml:"culling"`
	Camera     ClimbCamera      `yaml:"camera"`
	Health     ClimbHealth      `yaml:"health"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ClimbWorld defines the playfield.
type ClimbWorld struct {
	Width            float64 `yaml:"width"`             // Playfield width (walls at 0 and Width)
	ViewHeight       float64 `yaml:"view_height"`       // One screen-height of world
	FloorY           float64 `yaml:"floor_y"`           // World y of the ground surface (y grows downward)
	MapID            string  `yaml:"map_id"`            // Content map used for prefabs
	TileSize         float64 `yaml:"tile_size"`         // Prefab tile edge
	MaintenanceEvery int     `yaml:"maintenance_every"` // Run camera/generation/culling every N frames
}

// ClimbPhysics defines the integrator parameters.
type ClimbPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	MaxRunSpeed   float64 `yaml:"max_run_speed"`
	Accel         float64 `yaml:"accel"`
	Decel         float64 `yaml:"decel"`
	Friction      float64 `yaml:"friction"`       // Per 60 Hz frame multiplier while grounded
	AirControl    float64 `yaml:"air_control"`    // Accel multiplier while airborne
	AirDecay      float64 `yaml:"air_decay"`      // Per 60 Hz frame multiplier with no input in the air
	SnapThreshold float64 `yaml:"snap_threshold"` // |vx| below this snaps to zero in the air
	MaxDTMs       float64 `yaml:"max_dt_ms"`      // dt is clamped to this
	SkipDTMs      float64 `yaml:"skip_dt_ms"`     // dt above this skips the frame
}

// ClimbJump defines the jump controller windows.
type ClimbJump struct {
	Velocity            float64 `yaml:"velocity"`
	CoyoteMs            float64 `yaml:"coyote_ms"`
	BufferMs            float64 `yaml:"buffer_ms"`
	CeilingIgnoreFrames int     `yaml:"ceiling_ignore_frames"`
}

// ClimbCollision defines the player collider and resolver tolerances.
type ClimbCollision struct {
	ColliderWidth  float64 `yaml:"collider_width"`
	ColliderHeight float64 `yaml:"collider_height"`
	Epsilon        float64 `yaml:"epsilon"`
	CrossPad       float64 `yaml:"cross_pad"`
	HeadInset      float64 `yaml:"head_inset"`
	SideMinOverlap float64 `yaml:"side_min_overlap"`
	SideNudge      float64 `yaml:"side_nudge"`
	QueryRadius    float64 `yaml:"query_radius"`
	CellSize       float64 `yaml:"cell_size"`
}

// ClimbGenerator defines the platform generator and reachability oracle.
type ClimbGenerator struct {
	SafetyMargin  float64          `yaml:"safety_margin"`
	AheadScreens  float64          `yaml:"ahead_screens"`
	MaxAttempts   int              `yaml:"max_attempts"`
	MaxPerCall    int              `yaml:"max_per_call"`
	MinClearance  float64          `yaml:"min_clearance"`
	EdgeMargin    float64          `yaml:"edge_margin"`
	BagSize       int              `yaml:"bag_size"`
	RescuePrefab  string           `yaml:"rescue_prefab"`
	Tiers         []TierConfig     `yaml:"tiers"`
	Bands         BandConfig       `yaml:"bands"`
	Prefabs       []PrefabWeight   `yaml:"prefabs"`
	Decorations   []DecorationRoll `yaml:"decorations"`
	DecorationMax int              `yaml:"decoration_max"` // Per platform
}

// TierConfig maps a difficulty tier to a fraction range of the safe jump rise.
type TierConfig struct {
	Name    string  `yaml:"name"`
	Weight  float64 `yaml:"weight"`
	MinFrac float64 `yaml:"min_frac"`
	MaxFrac float64 `yaml:"max_frac"`
}

// BandConfig is the horizontal sampling mixture.
// Band edges are fractions of the usable width.
type BandConfig struct {
	CenterWeight float64 `yaml:"center_weight"`
	LeftWeight   float64 `yaml:"left_weight"`
	RightWeight  float64 `yaml:"right_weight"`
	CenterMin    float64 `yaml:"center_min"`
	CenterMax    float64 `yaml:"center_max"`
}

// PrefabWeight is one entry of the weighted prefab table.
type PrefabWeight struct {
	Name       string  `yaml:"name"`
	Weight     float64 `yaml:"weight"`
	Scale      float64 `yaml:"scale"`
	EdgeLocked bool    `yaml:"edge_locked"`
}

// DecorationRoll is an independent roll for a prop on a platform top.
type DecorationRoll struct {
	Name   string  `yaml:"name"`
	Chance float64 `yaml:"chance"`
	Slots  int     `yaml:"slots"`
}

// ClimbCulling defines fading, pruning and the death floor.
type ClimbCulling struct {
	DeathFloorOffset  float64 `yaml:"death_floor_offset"`
	CullMargin        float64 `yaml:"cull_margin"`
	HardPruneDistance float64 `yaml:"hard_prune_distance"`
	FadeDurationMs    float64 `yaml:"fade_duration_ms"`
	DecorHTolerance   float64 `yaml:"decor_h_tolerance"`
	DecorVTolerance   float64 `yaml:"decor_v_tolerance"`
	RebuildThreshold  int     `yaml:"rebuild_threshold"` // Removals per pass that trigger a full index rebuild
}

// ClimbCamera defines the vertical follow.
type ClimbCamera struct {
	DeadzoneFromTop float64 `yaml:"deadzone_from_top"`
}

// ClimbHealth defines damage amounts consumed by the health collaborator.
type ClimbHealth struct {
	Hearts              int     `yaml:"hearts"`
	FallDamageThreshold float64 `yaml:"fall_damage_threshold"`
	FallDamage          int     `yaml:"fall_damage"`
	HazardDamage        int     `yaml:"hazard_damage"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "height", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Rise (px) or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	TierShift   float64 `yaml:"tier_shift"`   // Fraction of easy weight moved to hard at max level
	NarrowBonus float64 `yaml:"narrow_bonus"` // Weight multiplier added to non-rescue prefabs at max level
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Tier returns the tier entry with the given name.
func (g ClimbGenerator) Tier(name string) (TierConfig, bool) {
	for _, t := range g.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return TierConfig{}, false
}

// SafeRise is the apex of the jump arc scaled by the safety margin.
func (c ClimbConfig) SafeRise() float64 {
	if c.Physics.Gravity <= 0 {
		return 0
	}
	apex := c.Jump.Velocity * c.Jump.Velocity / (2 * c.Physics.Gravity)
	return apex * c.Generator.SafetyMargin
}

// Validate reports tuning that would break the engine's invariants.
func (c ClimbConfig) Validate() error {
	var errs []error

	if c.World.Width <= c.Collision.ColliderWidth {
		errs = append(errs, fmt.Errorf("world.width %.1f must exceed collider_width %.1f", c.World.Width, c.Collision.ColliderWidth))
	}
	if c.World.ViewHeight <= 0 || c.World.TileSize <= 0 {
		errs = append(errs, errors.New("world.view_height and world.tile_size must be positive"))
	}
	if c.Physics.Gravity <= 0 || c.Jump.Velocity <= 0 {
		errs = append(errs, errors.New("physics.gravity and jump.velocity must be positive"))
	}
	if c.Physics.MaxDTMs <= 0 || c.Physics.SkipDTMs < c.Physics.MaxDTMs {
		errs = append(errs, errors.New("physics.skip_dt_ms must be >= max_dt_ms > 0"))
	}
	if c.Generator.SafetyMargin <= 0 || c.Generator.SafetyMargin > 1 {
		errs = append(errs, fmt.Errorf("generator.safety_margin %.2f must be in (0, 1]", c.Generator.SafetyMargin))
	}
	if len(c.Generator.Tiers) == 0 {
		errs = append(errs, errors.New("generator.tiers must not be empty"))
	}
	for _, t := range c.Generator.Tiers {
		if t.MinFrac <= 0 || t.MaxFrac > 1 || t.MinFrac > t.MaxFrac {
			errs = append(errs, fmt.Errorf("tier %q: fractions must satisfy 0 < min <= max <= 1", t.Name))
		}
	}
	if rise := c.SafeRise(); c.Generator.MinClearance >= rise {
		errs = append(errs, fmt.Errorf("generator.min_clearance %.1f must be below the safe rise %.1f", c.Generator.MinClearance, rise))
	}
	if c.Generator.RescuePrefab == "" {
		errs = append(errs, errors.New("generator.rescue_prefab is required"))
	}
	if len(c.Generator.Prefabs) == 0 {
		errs = append(errs, errors.New("generator.prefabs must not be empty"))
	}
	if c.Culling.HardPruneDistance < c.Culling.CullMargin {
		errs = append(errs, errors.New("culling.hard_prune_distance must be >= cull_margin"))
	}
	if c.Collision.CellSize <= 0 {
		errs = append(errs, errors.New("collision.cell_size must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}
