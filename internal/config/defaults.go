package config

import (
	_ "embed"
)

//go:embed defaults/climb.yaml
var defaultClimbYAML []byte

// DefaultClimbConfig returns the built-in tuning table.
// It mirrors defaults/climb.yaml and is used when the embedded file fails to parse.
func DefaultClimbConfig() ClimbConfig {
	return ClimbConfig{
		World: ClimbWorld{
			Width:            360,
			ViewHeight:       640,
			FloorY:           640,
			MapID:            "grassy",
			TileSize:         16,
			MaintenanceEvery: 1,
		},
		Physics: ClimbPhysics{
			Gravity:       1800,
			MaxFallSpeed:  900,
			MaxRunSpeed:   220,
			Accel:         1400,
			Decel:         1800,
			Friction:      0.85,
			AirControl:    0.6,
			AirDecay:      0.92,
			SnapThreshold: 4,
			MaxDTMs:       33.4,
			SkipDTMs:      250,
		},
		Jump: ClimbJump{
			Velocity:            720,
			CoyoteMs:            100,
			BufferMs:            120,
			CeilingIgnoreFrames: 6,
		},
		Collision: ClimbCollision{
			ColliderWidth:  20,
			ColliderHeight: 28,
			Epsilon:        2,
			CrossPad:       4,
			HeadInset:      4,
			SideMinOverlap: 6,
			SideNudge:      1,
			QueryRadius:    96,
			CellSize:       64,
		},
		Generator: ClimbGenerator{
			SafetyMargin: 0.85,
			AheadScreens: 1.5,
			MaxAttempts:  12,
			MaxPerCall:   64,
			MinClearance: 52,
			EdgeMargin:   4,
			BagSize:      10,
			RescuePrefab: "grass_wide",
			Tiers: []TierConfig{
				{Name: "easy", Weight: 5, MinFrac: 0.45, MaxFrac: 0.60},
				{Name: "medium", Weight: 3, MinFrac: 0.60, MaxFrac: 0.78},
				{Name: "hard", Weight: 2, MinFrac: 0.78, MaxFrac: 0.95},
			},
			Bands: BandConfig{
				CenterWeight: 0.6,
				LeftWeight:   0.2,
				RightWeight:  0.2,
				CenterMin:    0.3,
				CenterMax:    0.7,
			},
			Prefabs: []PrefabWeight{
				{Name: "grass_wide", Weight: 6, Scale: 1},
				{Name: "grass_mid", Weight: 3, Scale: 1},
				{Name: "bridge_broken", Weight: 1, Scale: 1},
				{Name: "stone_narrow", Weight: 1, Scale: 1},
				{Name: "ledge", Weight: 1, Scale: 1, EdgeLocked: true},
			},
			Decorations: []DecorationRoll{
				{Name: "bush", Chance: 0.35, Slots: 2},
				{Name: "flower", Chance: 0.5, Slots: 1},
				{Name: "rock", Chance: 0.25, Slots: 1},
			},
			DecorationMax: 3,
		},
		Culling: ClimbCulling{
			DeathFloorOffset:  420,
			CullMargin:        64,
			HardPruneDistance: 480,
			FadeDurationMs:    600,
			DecorHTolerance:   8,
			DecorVTolerance:   20,
			RebuildThreshold:  16,
		},
		Camera: ClimbCamera{
			DeadzoneFromTop: 256,
		},
		Health: ClimbHealth{
			Hearts:              3,
			FallDamageThreshold: 150,
			FallDamage:          1,
			HazardDamage:        3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "height",
				MaxAt: 16000,
			},
			Scaling: ScalingConfig{
				TierShift:   0.6,
				NarrowBonus: 1.0,
			},
		},
	}
}

// DefaultClimbYAML returns the embedded default tuning file.
func DefaultClimbYAML() []byte {
	return defaultClimbYAML
}
