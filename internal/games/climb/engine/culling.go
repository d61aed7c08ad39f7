package engine

import (
	"math"

	"github.com/vovakirdan/skyclimb/internal/config"
)

// DeathFloor is the hazard plane below the player's best height.
type DeathFloor struct {
	Y      float64
	offset float64
}

// NewDeathFloor places the floor offset below the starting best height.
func NewDeathFloor(bestY, offset float64) DeathFloor {
	return DeathFloor{Y: bestY + offset, offset: offset}
}

// Update moves the floor up to follow a new best height. It never moves down.
func (d *DeathFloor) Update(bestY float64) {
	d.Y = min(d.Y, bestY+d.offset)
}

// Culler fades platforms that fell below the death floor and prunes them.
type Culler struct {
	cfg      config.ClimbCulling
	removed  []PlatformID
	doomed   map[PlatformID]bool
	justCull []*PlatformDef
}

// NewCuller creates a culler.
func NewCuller(cfg config.ClimbCulling) *Culler {
	return &Culler{cfg: cfg, doomed: make(map[PlatformID]bool)}
}

// FadeOpacity is the ease-out curve for progress p in [0, 1].
func FadeOpacity(p float64) float64 {
	p = math.Min(math.Max(p, 0), 1)
	return (1 - p) * (1 - p)
}

// Update starts fades, advances them and removes finished or far-off
// entries from the set. now is the world clock in seconds. The returned
// slice lists the removed ids and is reused by the next call.
func (c *Culler) Update(now float64, set *PlatformSet, floorY float64) []PlatformID {
	c.removed = c.removed[:0]
	c.justCull = c.justCull[:0]
	clear(c.doomed)

	fadeAt := floorY + c.cfg.CullMargin
	pruneAt := floorY + c.cfg.HardPruneDistance
	duration := c.cfg.FadeDurationMs / 1000

	for _, def := range set.All() {
		if def.Kind != KindPlatform {
			continue
		}
		switch {
		case def.Y > pruneAt:
			c.doomed[def.ID] = true
		case def.Fade == nil && def.Y > fadeAt:
			def.Fade = &FadeRecord{Start: now, Duration: duration, Opacity: 1}
			c.justCull = append(c.justCull, def)
		}
	}

	for _, def := range set.All() {
		if def.Kind != KindDecoration {
			continue
		}
		parent, alive := set.Get(def.Parent)
		switch {
		case !alive || c.doomed[def.Parent] || def.Y > pruneAt:
			c.doomed[def.ID] = true
		case def.Fade != nil:
		case parent.Fade != nil:
			fade := *parent.Fade
			def.Fade = &fade
		default:
			if near := c.nearCulled(def); near != nil {
				fade := *near.Fade
				def.Fade = &fade
			}
		}
	}

	for _, def := range set.All() {
		if c.doomed[def.ID] || def.Fade == nil {
			continue
		}
		progress := 1.0
		if def.Fade.Duration > 0 {
			progress = (now - def.Fade.Start) / def.Fade.Duration
		}
		if progress >= 1 {
			def.Fade.Opacity = 0
			c.doomed[def.ID] = true
			continue
		}
		def.Fade.Opacity = FadeOpacity(progress)
	}

	for _, def := range set.All() {
		if c.doomed[def.ID] {
			c.removed = append(c.removed, def.ID)
		}
	}
	set.RemoveAll(c.removed)
	return c.removed
}

// nearCulled finds a platform culled this pass that d sits next to.
func (c *Culler) nearCulled(d *PlatformDef) *PlatformDef {
	for _, p := range c.justCull {
		withinH := d.X+d.Width >= p.X-c.cfg.DecorHTolerance && d.X <= p.X+p.Width+c.cfg.DecorHTolerance
		withinV := math.Abs(d.Y+d.Height-p.Y) <= c.cfg.DecorVTolerance
		if withinH && withinV {
			return p
		}
	}
	return nil
}
