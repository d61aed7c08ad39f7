package engine

// Intent is one frame of player input.
type Intent struct {
	DirX        int     // -1, 0 or 1
	Magnitude   float64 // 0..1
	JumpPressed bool    // Rising edge of the jump button
}

// Health receives damage and gates the simulation.
type Health interface {
	FallDamage(amount int)
	HazardDamage(amount int)
	// Frozen stops physics and jump processing, e.g. once the player is dead.
	Frozen() bool
}

// Audio receives fire-and-forget cues.
type Audio interface {
	Jump()
	LandingDamage()
}

// Segment is a collidable span along the top of a prefab, in pixels from
// the prefab's left edge with scale already applied.
type Segment struct {
	Start, End float64
	Depth      float64 // Slab thickness below the top
	Solid      bool
}

// Content answers geometry queries about prefabs.
type Content interface {
	// PrefabWidth returns 0 for unknown prefabs.
	PrefabWidth(mapID, name string, scale float64) float64
	PrefabTopSolidSegments(mapID, name string, scale float64) []Segment
}

// NopHealth never takes damage and never freezes.
type NopHealth struct{}

func (NopHealth) FallDamage(int)   {}
func (NopHealth) HazardDamage(int) {}
func (NopHealth) Frozen() bool     { return false }

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) Jump()          {}
func (NopAudio) LandingDamage() {}
