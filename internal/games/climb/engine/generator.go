package engine

import (
	"math/rand"

	"github.com/vovakirdan/skyclimb/internal/config"
)

// GeneratedBatch is the output of one GenerateAhead call.
type GeneratedBatch struct {
	Platforms   []*PlatformDef
	Decorations []*PlatformDef
	Placements  []Placement
}

// Len returns the number of definitions in the batch.
func (b GeneratedBatch) Len() int {
	return len(b.Platforms) + len(b.Decorations)
}

// anchor is the platform the next placement is measured from.
type anchor struct {
	left, right float64
	topY        float64
}

// Generator places platforms upward so every one is reachable from the
// previous. Output depends only on the seed and the sequence of calls.
type Generator struct {
	cfg     config.ClimbConfig
	rng     *rand.Rand
	oracle  Oracle
	bag     *Bag
	content Content
	ids     *IDAllocator
	diff    *config.DifficultyManager

	last    anchor
	ticks   int
	rescues int
	emitted int
}

// NewGenerator creates a generator anchored on the ground.
func NewGenerator(seed int64, cfg config.ClimbConfig, content Content, ids *IDAllocator, diff *config.DifficultyManager) *Generator {
	if diff == nil {
		diff = config.NewDifficultyManager(cfg.Difficulty)
	}
	if ids == nil {
		ids = &IDAllocator{}
	}
	rng := newRand(seed)
	return &Generator{
		cfg:     cfg,
		rng:     rng,
		oracle:  NewOracle(cfg),
		bag:     NewBag(rng, cfg.Generator.Tiers, cfg.Generator.BagSize),
		content: content,
		ids:     ids,
		diff:    diff,
		last:    anchor{left: 0, right: cfg.World.Width, topY: cfg.World.FloorY},
	}
}

// Oracle returns the reachability oracle used for placement.
func (g *Generator) Oracle() Oracle {
	return g.oracle
}

// Frontier returns the top y of the highest platform generated so far.
func (g *Generator) Frontier() float64 {
	return g.last.topY
}

// Rescues returns how many safety-net platforms were placed.
func (g *Generator) Rescues() int {
	return g.rescues
}

// SetElapsed feeds the run's tick count to time-based difficulty.
func (g *Generator) SetElapsed(ticks int) {
	g.ticks = ticks
}

// GenerateAhead places platforms until the frontier is above targetY or the
// per-call cap is reached.
func (g *Generator) GenerateAhead(targetY float64) GeneratedBatch {
	var batch GeneratedBatch
	for n := 0; g.last.topY > targetY && n < g.cfg.Generator.MaxPerCall; n++ {
		def, pl := g.placeNext()
		batch.Platforms = append(batch.Platforms, def)
		batch.Placements = append(batch.Placements, pl)
		batch.Decorations = append(batch.Decorations, g.decorate(def)...)
	}
	return batch
}

func (g *Generator) rise() float64 {
	return g.cfg.World.FloorY - g.last.topY
}

func (g *Generator) placeNext() (*PlatformDef, Placement) {
	gc := g.cfg.Generator
	rise := g.rise()
	tier := g.bag.Next(g.diff.TierWeights(g.bag.BaseWeights(), rise, g.ticks))
	maxRise := g.oracle.MaxRise()

	for attempt := 0; attempt < gc.MaxAttempts; attempt++ {
		frac := tier.MinFrac + g.rng.Float64()*(tier.MaxFrac-tier.MinFrac)
		dy := min(max(frac*maxRise, gc.MinClearance), maxRise)

		pf, ok := g.pickPrefab(rise)
		if !ok {
			continue
		}
		width := g.content.PrefabWidth(g.cfg.World.MapID, pf.Name, pf.Scale)
		if width <= 0 || width > g.cfg.World.Width {
			continue
		}

		left := g.sampleX(width, pf.EdgeLocked)
		def := g.build(pf.Name, pf.Scale, left, width, g.last.topY-dy)
		gap := edgeGap(g.last.left, g.last.right, left, left+width)
		if gap == 0 && def.Solid() {
			continue
		}
		if !g.oracle.Reachable(gap, dy) {
			continue
		}
		return def, g.accept(def, Placement{DX: gap, DYUp: dy, Tier: tier.Name})
	}

	return g.rescue(tier.Name)
}

// rescue places the safe prefab straight above the last platform.
func (g *Generator) rescue(tier string) (*PlatformDef, Placement) {
	gc := g.cfg.Generator
	scale := 1.0
	width := g.content.PrefabWidth(g.cfg.World.MapID, gc.RescuePrefab, scale)
	if width <= 0 {
		width = g.cfg.World.TileSize * 4
	}
	width = min(width, g.cfg.World.Width)

	center := (g.last.left + g.last.right) / 2
	left := min(max(center-width/2, 0), g.cfg.World.Width-width)
	dy := gc.MinClearance

	def := g.build(gc.RescuePrefab, scale, left, width, g.last.topY-dy)
	for i := range def.Slabs {
		def.Slabs[i].Solid = false
	}
	gap := edgeGap(g.last.left, g.last.right, left, left+width)
	g.rescues++
	return def, g.accept(def, Placement{DX: gap, DYUp: dy, Tier: tier, Rescue: true})
}

func (g *Generator) accept(def *PlatformDef, pl Placement) Placement {
	def.ID = g.ids.Next()
	for i := range def.Slabs {
		def.Slabs[i].Owner = def.ID
	}
	pl.ID = def.ID
	g.last = anchor{left: def.X, right: def.X + def.Width, topY: def.Y}
	g.emitted++
	return pl
}

// build lays out a platform and its slabs. Prefabs without collision
// segments collide over their full sprite bounds.
func (g *Generator) build(name string, scale, left, width, top float64) *PlatformDef {
	height := g.cfg.World.TileSize * scale
	def := &PlatformDef{
		Kind:   KindPlatform,
		Prefab: name,
		X:      left,
		Y:      top,
		Width:  width,
		Height: height,
		Scale:  scale,
	}

	segs := g.content.PrefabTopSolidSegments(g.cfg.World.MapID, name, scale)
	for _, seg := range segs {
		depth := seg.Depth
		if depth <= 0 {
			depth = height
		}
		def.Slabs = append(def.Slabs, Slab{
			Left:    left + seg.Start,
			Right:   left + seg.End,
			TopY:    top,
			BottomY: top + depth,
			Solid:   seg.Solid,
		})
	}
	if len(def.Slabs) == 0 {
		def.Slabs = []Slab{{Left: left, Right: left + width, TopY: top, BottomY: top + height}}
	}
	return def
}

func (g *Generator) pickPrefab(rise float64) (config.PrefabWeight, bool) {
	prefabs := g.cfg.Generator.Prefabs
	weights := make([]float64, len(prefabs))
	for i, pf := range prefabs {
		weights[i] = g.diff.PrefabWeight(pf.Weight, pf.Name == g.cfg.Generator.RescuePrefab, rise, g.ticks)
	}
	i := weightedIndex(g.rng, weights)
	if i < 0 {
		return config.PrefabWeight{}, false
	}
	pf := prefabs[i]
	if pf.Scale <= 0 {
		pf.Scale = 1
	}
	return pf, true
}

// sampleX picks a left edge. Edge-locked prefabs sit flush against a wall;
// the rest use the centre/left/right band mixture.
func (g *Generator) sampleX(width float64, edgeLocked bool) float64 {
	worldW := g.cfg.World.Width
	if edgeLocked {
		if g.rng.Intn(2) == 0 {
			return 0
		}
		return worldW - width
	}

	minX := g.cfg.Generator.EdgeMargin
	maxX := worldW - g.cfg.Generator.EdgeMargin - width
	if maxX <= minX {
		return (worldW - width) / 2
	}

	b := g.cfg.Generator.Bands
	lo, hi := b.CenterMin, b.CenterMax
	switch weightedIndex(g.rng, []float64{b.CenterWeight, b.LeftWeight, b.RightWeight}) {
	case 1:
		lo, hi = 0, b.CenterMin
	case 2:
		lo, hi = b.CenterMax, 1
	}
	u := lo + g.rng.Float64()*(hi-lo)
	return minX + u*(maxX-minX)
}

// edgeGap is the horizontal distance between two spans, 0 when they overlap.
func edgeGap(aLeft, aRight, bLeft, bRight float64) float64 {
	switch {
	case bLeft >= aRight:
		return bLeft - aRight
	case aLeft >= bRight:
		return aLeft - bRight
	default:
		return 0
	}
}
