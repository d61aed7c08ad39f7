// Package engine is the gameplay core of the climber: fixed-step physics,
// slab collision, procedural platform generation, culling and the camera.
//
// World space is y-down with the ground surface at FloorY. The player keeps
// its height above the ground in Z (up positive), so FeetY = FloorY - Z.
// The package never logs and never touches the terminal; everything it
// needs from the outside arrives through the interfaces in collaborators.go.
package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/skyclimb/internal/core"
)

// Kind distinguishes collidable platforms from decorative props.
type Kind uint8

const (
	KindPlatform Kind = iota
	KindDecoration
)

func (k Kind) String() string {
	if k == KindDecoration {
		return "decoration"
	}
	return "platform"
}

// PlatformID identifies a platform or decoration. Session changes on every
// World reset, so ids never repeat across restarts. The zero value means
// "no platform".
type PlatformID struct {
	Session uint32
	Local   uint32
}

// IsZero reports whether id is unset.
func (id PlatformID) IsZero() bool {
	return id == PlatformID{}
}

func (id PlatformID) String() string {
	return fmt.Sprintf("%d:%d", id.Session, id.Local)
}

// Slab is one axis-aligned collision surface. Solid slabs block from below
// and from the sides; the others are one-way and only catch landings.
type Slab struct {
	Left, Right   float64
	TopY, BottomY float64
	Solid         bool
	Owner         PlatformID
}

// Valid reports whether the slab is finite and not inverted.
func (s Slab) Valid() bool {
	for _, v := range [...]float64{s.Left, s.Right, s.TopY, s.BottomY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Left <= s.Right && s.TopY <= s.BottomY
}

// Box returns the slab extent.
func (s Slab) Box() core.AABB {
	return core.AABB{Left: s.Left, Top: s.TopY, Right: s.Right, Bottom: s.BottomY}
}

// FadeRecord tracks an ease-out fade started by the culler.
type FadeRecord struct {
	Start    float64 // World clock when the fade began (s)
	Duration float64 // Seconds from opacity 1 to 0
	Opacity  float64
}

// PlatformDef is one generated platform or decoration.
type PlatformDef struct {
	ID     PlatformID
	Kind   Kind
	Prefab string
	X, Y   float64 // Left edge and top edge
	Width  float64
	Height float64
	Scale  float64
	Slabs  []Slab
	Fade   *FadeRecord
	Parent PlatformID // Owning platform for decorations
}

// Bounds returns the sprite extent.
func (p *PlatformDef) Bounds() core.AABB {
	return core.AABB{Left: p.X, Top: p.Y, Right: p.X + p.Width, Bottom: p.Y + p.Height}
}

// Opacity is 1 for live platforms and follows the fade curve otherwise.
func (p *PlatformDef) Opacity() float64 {
	if p.Fade == nil {
		return 1
	}
	return p.Fade.Opacity
}

// Solid reports whether any slab blocks from below.
func (p *PlatformDef) Solid() bool {
	for _, s := range p.Slabs {
		if s.Solid {
			return true
		}
	}
	return false
}

// PlayerState is the complete mutable state of the player body.
type PlayerState struct {
	X, Z      float64 // Horizontal centre; height of the feet above the ground
	VX, VZ    float64 // Velocities, VZ up positive
	Dir       int     // Last horizontal input (-1, 0, 1)
	Magnitude float64 // Last input magnitude (0..1)
	Grounded  bool
	Falling   bool    // A fall session is active
	FallPeak  float64 // Highest Z of the active fall session
}

// FeetY converts Z to a world y.
func (p PlayerState) FeetY(floorY float64) float64 {
	return floorY - p.Z
}

// Box returns the collider for a body of size w x h.
func (p PlayerState) Box(floorY, w, h float64) core.AABB {
	feet := p.FeetY(floorY)
	return core.AABB{Left: p.X - w/2, Top: feet - h, Right: p.X + w/2, Bottom: feet}
}

func (p PlayerState) finite() bool {
	for _, v := range [...]float64{p.X, p.Z, p.VX, p.VZ, p.FallPeak} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Placement records the displacement a platform was accepted with, measured
// from the previous platform: DX is the horizontal edge gap, DYUp the rise.
type Placement struct {
	ID     PlatformID
	DX     float64
	DYUp   float64
	Tier   string
	Rescue bool
}
