package engine

// decorate rolls props onto free tile slots along a platform top. Props
// never share a slot and have no collision.
func (g *Generator) decorate(p *PlatformDef) []*PlatformDef {
	gc := g.cfg.Generator
	tile := g.cfg.World.TileSize
	slots := int(p.Width / tile)
	if slots <= 0 || gc.DecorationMax <= 0 {
		return nil
	}

	occupied := make([]bool, slots)
	var out []*PlatformDef
	for _, roll := range gc.Decorations {
		if len(out) >= gc.DecorationMax {
			break
		}
		if g.rng.Float64() >= roll.Chance {
			continue
		}
		need := max(roll.Slots, 1)
		if need > slots {
			continue
		}

		start, ok := freeRun(occupied, need, g.rng.Intn(slots-need+1))
		if !ok {
			continue
		}
		for i := start; i < start+need; i++ {
			occupied[i] = true
		}

		out = append(out, &PlatformDef{
			ID:     g.ids.Next(),
			Kind:   KindDecoration,
			Prefab: roll.Name,
			X:      p.X + float64(start)*tile,
			Y:      p.Y - tile,
			Width:  float64(need) * tile,
			Height: tile,
			Scale:  1,
			Parent: p.ID,
		})
	}
	return out
}

// freeRun finds need consecutive free slots, scanning cyclically from hint.
func freeRun(occupied []bool, need, hint int) (int, bool) {
	candidates := len(occupied) - need + 1
	for k := 0; k < candidates; k++ {
		start := (hint + k) % candidates
		free := true
		for i := start; i < start+need; i++ {
			if occupied[i] {
				free = false
				break
			}
		}
		if free {
			return start, true
		}
	}
	return 0, false
}
