package engine

import (
	"github.com/vovakirdan/skyclimb/internal/config"
)

// Contact summarises what the resolver did in one pass.
type Contact struct {
	Landed     bool
	LandedOn   PlatformID // Zero when the ground caught the player
	FallDamage bool
	Ceiling    bool
	Side       bool
	Wall       bool
}

// Resolver performs discrete slab collision for the player body.
type Resolver struct {
	cfg    config.ClimbCollision
	health config.ClimbHealth
	floorY float64
	width  float64

	Health Health
	Audio  Audio
}

// NewResolver creates a resolver for the given tuning. Nil collaborators
// are replaced with no-ops.
func NewResolver(cfg config.ClimbConfig, health Health, audio Audio) *Resolver {
	if health == nil {
		health = NopHealth{}
	}
	if audio == nil {
		audio = NopAudio{}
	}
	return &Resolver{
		cfg:    cfg.Collision,
		health: cfg.Health,
		floorY: cfg.World.FloorY,
		width:  cfg.World.Width,
		Health: health,
		Audio:  audio,
	}
}

// Resolve runs landing, ceiling, floor clamp, side push and wall clamp in
// that order. prevZ is the height before this frame's integration.
func (r *Resolver) Resolve(p *PlayerState, prevZ float64, slabs []Slab, ceilingIgnore int) Contact {
	var c Contact
	r.ResolveLanding(p, prevZ, slabs, &c)
	r.ResolveCeiling(p, prevZ, slabs, ceilingIgnore, &c)
	r.ClampFloor(p, &c)
	r.ResolveSides(p, slabs, &c)
	r.ClampWalls(p, &c)
	return c
}

// ResolveLanding snaps a descending body onto the highest slab its feet
// crossed this frame.
func (r *Resolver) ResolveLanding(p *PlayerState, prevZ float64, slabs []Slab, c *Contact) {
	if p.VZ >= 0 {
		return
	}

	prevFeet := r.floorY - prevZ
	currFeet := p.FeetY(r.floorY)
	left, right := p.X-r.cfg.ColliderWidth/2, p.X+r.cfg.ColliderWidth/2

	best := -1
	for i, s := range slabs {
		if right <= s.Left || left >= s.Right {
			continue
		}
		if prevFeet > s.TopY+r.cfg.Epsilon || currFeet < s.TopY-r.cfg.CrossPad {
			continue
		}
		if best < 0 || s.TopY < slabs[best].TopY {
			best = i
		}
	}
	if best < 0 {
		return
	}

	p.Z = r.floorY - slabs[best].TopY
	c.LandedOn = slabs[best].Owner
	r.land(p, c)
}

// ResolveCeiling stops a rising body under the lowest solid slab its head
// crossed. Skipped on the landing frame and during the take-off grace.
func (r *Resolver) ResolveCeiling(p *PlayerState, prevZ float64, slabs []Slab, ceilingIgnore int, c *Contact) {
	if p.VZ <= 0 || c.Landed || ceilingIgnore > 0 {
		return
	}

	h := r.cfg.ColliderHeight
	prevHead := r.floorY - prevZ - h
	currHead := p.FeetY(r.floorY) - h
	left := p.X - r.cfg.ColliderWidth/2 + r.cfg.HeadInset
	right := p.X + r.cfg.ColliderWidth/2 - r.cfg.HeadInset

	best := -1
	for i, s := range slabs {
		if !s.Solid || right <= s.Left || left >= s.Right {
			continue
		}
		if prevHead < s.BottomY-r.cfg.Epsilon || currHead > s.BottomY {
			continue
		}
		if best < 0 || s.BottomY > slabs[best].BottomY {
			best = i
		}
	}
	if best < 0 {
		return
	}

	p.Z = r.floorY - (slabs[best].BottomY + h)
	p.VZ = 0
	c.Ceiling = true
}

// ClampFloor keeps the body above the ground; touching it counts as a landing.
func (r *Resolver) ClampFloor(p *PlayerState, c *Contact) {
	if p.Z >= 0 || c.Landed {
		return
	}
	p.Z = 0
	r.land(p, c)
}

// ResolveSides pushes the body out of solid slabs it overlaps enough.
func (r *Resolver) ResolveSides(p *PlayerState, slabs []Slab, c *Contact) {
	w := r.cfg.ColliderWidth
	for _, s := range slabs {
		if !s.Solid {
			continue
		}
		box := p.Box(r.floorY, w, r.cfg.ColliderHeight)
		if !box.OverlapsX(s.Box()) || box.OverlapY(s.Box()) < r.cfg.SideMinOverlap {
			continue
		}
		if p.X < (s.Left+s.Right)/2 {
			p.X = s.Left - w/2 - r.cfg.SideNudge
		} else {
			p.X = s.Right + w/2 + r.cfg.SideNudge
		}
		p.VX = 0
		c.Side = true
	}
}

// ClampWalls keeps the body inside the playfield.
func (r *Resolver) ClampWalls(p *PlayerState, c *Contact) {
	half := r.cfg.ColliderWidth / 2
	switch {
	case p.X < half:
		p.X = half
	case p.X > r.width-half:
		p.X = r.width - half
	default:
		return
	}
	p.VX = 0
	c.Wall = true
}

func (r *Resolver) land(p *PlayerState, c *Contact) {
	p.VZ = 0
	p.Grounded = true
	c.Landed = true

	if p.Falling && p.FallPeak-p.Z >= r.health.FallDamageThreshold {
		r.Health.FallDamage(r.health.FallDamage)
		r.Audio.LandingDamage()
		c.FallDamage = true
	}
	p.Falling = false
	p.FallPeak = p.Z
}
