package engine

import (
	"github.com/vovakirdan/skyclimb/internal/config"
)

// FrameReport describes what happened during one Step.
type FrameReport struct {
	Skipped    bool // dt was degenerate; nothing moved
	RolledBack bool // Corrupt geometry or state; the player was restored
	Jumped     bool
	Landed     bool
	FallDamage bool
	Hazard     bool // Entered the death floor this frame
	Generated  int
	Removed    int
}

// World owns one run: the player, the platform set and every subsystem,
// stepped in a fixed order by Step.
type World struct {
	cfg     config.ClimbConfig
	content Content
	health  Health
	audio   Audio

	ids      IDAllocator
	seed     int64
	player   PlayerState
	jump     JumpState
	resolver *Resolver
	set      PlatformSet
	index    *SpatialIndex
	gen      *Generator
	culler   *Culler
	floor    DeathFloor
	camera   Camera
	diff     *config.DifficultyManager

	clock     float64
	frames    int
	bestY     float64
	skipped   int
	rollbacks int
	generated int
	inHazard  bool

	nearby []PlatformID
	slabs  []Slab
}

// NewWorld creates a world and starts a run with seed 0. Nil health or
// audio collaborators are replaced with no-ops.
func NewWorld(cfg config.ClimbConfig, content Content, health Health, audio Audio) *World {
	if health == nil {
		health = NopHealth{}
	}
	if audio == nil {
		audio = NopAudio{}
	}
	w := &World{
		cfg:     cfg,
		content: content,
		health:  health,
		audio:   audio,
	}
	w.Reset(0)
	return w
}

// Reset starts a new run. Platform ids from earlier runs are never reused.
func (w *World) Reset(seed int64) {
	cfg := w.cfg
	w.ids.NewSession()
	w.seed = seed

	w.player = PlayerState{X: cfg.World.Width / 2, Grounded: true}
	w.jump = JumpState{}
	w.resolver = NewResolver(cfg, w.health, w.audio)
	w.set.Reset()
	w.index = NewSpatialIndex(cfg.Collision.CellSize)
	w.diff = config.NewDifficultyManager(cfg.Difficulty)
	w.gen = NewGenerator(seed, cfg, w.content, &w.ids, w.diff)
	w.culler = NewCuller(cfg.Culling)
	w.floor = NewDeathFloor(cfg.World.FloorY, cfg.Culling.DeathFloorOffset)
	w.camera = NewCamera(cfg.World.FloorY-cfg.World.ViewHeight, cfg.Camera.DeadzoneFromTop)

	w.clock = 0
	w.frames = 0
	w.bestY = cfg.World.FloorY
	w.skipped = 0
	w.rollbacks = 0
	w.generated = 0
	w.inHazard = false

	w.generate()
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64, in Intent) FrameReport {
	var rep FrameReport

	dt, ok := ClampDT(dt, w.cfg.Physics)
	if !ok {
		w.skipped++
		rep.Skipped = true
		return rep
	}
	w.clock += dt
	w.frames++

	if !w.health.Frozen() {
		w.stepPlayer(dt, in, &rep)
	}

	every := max(w.cfg.World.MaintenanceEvery, 1)
	if w.frames%every == 0 {
		w.maintain(&rep)
	}

	w.checkHazard(&rep)
	return rep
}

func (w *World) stepPlayer(dt float64, in Intent, rep *FrameReport) {
	slabs, ok := w.nearbySlabs()
	if !ok {
		w.rollback(rep)
		return
	}

	good, goodJump := w.player, w.jump
	p := &w.player
	prevZ := p.Z

	if in.JumpPressed {
		w.jump.OnJumpPressed(w.cfg.Jump)
	}
	IntegrateHorizontal(p, in, dt, w.cfg.Physics)
	IntegrateVertical(p, dt, w.cfg.Physics)
	p.Grounded = false
	TrackFall(p, prevZ)

	// Resolve reports damage, so it only ever sees a finite body.
	if !p.finite() {
		w.player, w.jump = good, goodJump
		w.rollback(rep)
		return
	}
	contact := w.resolver.Resolve(p, prevZ, slabs, w.jump.CeilingIgnoreFrames)
	if !p.finite() {
		w.player, w.jump = good, goodJump
		w.rollback(rep)
		return
	}
	rep.Landed = contact.Landed
	rep.FallDamage = contact.FallDamage
	if contact.Landed {
		w.jump.OnGroundContact(w.cfg.Jump)
	}

	w.jump.Tick(dt)
	if w.jump.ShouldExecuteJump() {
		w.jump.Consume(p, w.cfg.Jump)
		w.audio.Jump()
		rep.Jumped = true
	}

	w.bestY = min(w.bestY, p.FeetY(w.cfg.World.FloorY))
}

func (w *World) rollback(rep *FrameReport) {
	w.rollbacks++
	rep.RolledBack = true
}

// nearbySlabs gathers slabs around the player. It fails when any of them
// is corrupt.
func (w *World) nearbySlabs() ([]Slab, bool) {
	cc := w.cfg.Collision
	feet := w.player.FeetY(w.cfg.World.FloorY)
	w.nearby = w.index.Query(w.player.X, feet-cc.ColliderHeight/2, cc.QueryRadius, w.nearby[:0])

	w.slabs = w.slabs[:0]
	for _, id := range w.nearby {
		def, ok := w.set.Get(id)
		if !ok || def.Kind != KindPlatform {
			continue
		}
		for _, s := range def.Slabs {
			if !s.Valid() {
				return nil, false
			}
			w.slabs = append(w.slabs, s)
		}
	}
	return w.slabs, true
}

// maintain runs camera, death floor, generation and culling, then brings
// the spatial index in line with the platform set.
func (w *World) maintain(rep *FrameReport) {
	w.camera.Follow(w.player.FeetY(w.cfg.World.FloorY))
	w.floor.Update(w.bestY)

	w.gen.SetElapsed(w.frames)
	rep.Generated = w.generate()

	removed := w.culler.Update(w.clock, &w.set, w.floor.Y)
	rep.Removed = len(removed)
	if len(removed) >= w.cfg.Culling.RebuildThreshold && w.cfg.Culling.RebuildThreshold > 0 {
		w.index.Rebuild(w.set.All())
		return
	}
	for _, id := range removed {
		w.index.Remove(id)
	}
}

func (w *World) generate() int {
	target := w.camera.Y - w.cfg.Generator.AheadScreens*w.cfg.World.ViewHeight
	batch := w.gen.GenerateAhead(target)
	for _, def := range batch.Platforms {
		w.add(def)
	}
	for _, def := range batch.Decorations {
		w.add(def)
	}
	w.generated += len(batch.Platforms)
	return batch.Len()
}

func (w *World) add(def *PlatformDef) {
	if w.set.Add(def) {
		w.index.Insert(def.ID, def.Bounds())
	}
}

// checkHazard reports entering the death floor once per entry.
func (w *World) checkHazard(rep *FrameReport) {
	inside := w.player.FeetY(w.cfg.World.FloorY) >= w.floor.Y
	if inside && !w.inHazard && !w.health.Frozen() {
		w.health.HazardDamage(w.cfg.Health.HazardDamage)
		rep.Hazard = true
	}
	w.inHazard = inside
}

// Player returns a copy of the player state.
func (w *World) Player() PlayerState {
	return w.player
}

// Jump returns a copy of the jump windows.
func (w *World) Jump() JumpState {
	return w.jump
}

// Platforms returns the live platforms and decorations in generation order.
// Callers must treat them as read-only.
func (w *World) Platforms() []*PlatformDef {
	return w.set.All()
}

// Camera returns the camera.
func (w *World) Camera() Camera {
	return w.camera
}

// DeathFloor returns the hazard plane.
func (w *World) DeathFloor() DeathFloor {
	return w.floor
}

// Config returns the tuning the world runs with.
func (w *World) Config() config.ClimbConfig {
	return w.cfg
}

// Seed returns the seed of the current run.
func (w *World) Seed() int64 {
	return w.seed
}

// Session returns the id session of the current run.
func (w *World) Session() uint32 {
	return w.ids.Session()
}

// Clock returns simulated seconds since the run started.
func (w *World) Clock() float64 {
	return w.clock
}

// Frames returns the number of simulated (non-skipped) frames.
func (w *World) Frames() int {
	return w.frames
}

// Height is the best height reached, in pixels above the ground.
func (w *World) Height() float64 {
	return w.cfg.World.FloorY - w.bestY
}

// SkippedFrames counts frames dropped for a degenerate dt.
func (w *World) SkippedFrames() int {
	return w.skipped
}

// Rollbacks counts frames whose physics was discarded.
func (w *World) Rollbacks() int {
	return w.rollbacks
}

// Rescues counts safety-net platforms placed this run.
func (w *World) Rescues() int {
	return w.gen.Rescues()
}

// Generated counts platforms (not decorations) placed this run.
func (w *World) Generated() int {
	return w.generated
}

// IndexLen returns the number of entries in the spatial index.
func (w *World) IndexLen() int {
	return w.index.Len()
}
