package engine

import "github.com/vovakirdan/skyclimb/internal/config"

// stubContent mirrors the shape of the grassy catalog without loading YAML.
type stubContent struct {
	widths map[string]float64
	segs   map[string][]Segment
}

func newStubContent() stubContent {
	return stubContent{
		widths: map[string]float64{
			"grass_wide":    96,
			"grass_mid":     64,
			"bridge_broken": 96,
			"stone_narrow":  32,
			"ledge":         48,
			"bush":          32,
			"flower":        16,
			"rock":          16,
		},
		segs: map[string][]Segment{
			"grass_wide":    {{Start: 0, End: 96, Depth: 6}},
			"grass_mid":     {{Start: 0, End: 64, Depth: 6}},
			"bridge_broken": {{Start: 0, End: 32, Depth: 6}, {Start: 64, End: 96, Depth: 6}},
			"stone_narrow":  {{Start: 0, End: 32, Depth: 16, Solid: true}},
			"ledge":         {{Start: 0, End: 48, Depth: 16, Solid: true}},
		},
	}
}

func (c stubContent) PrefabWidth(_, name string, scale float64) float64 {
	return c.widths[name] * scale
}

func (c stubContent) PrefabTopSolidSegments(_, name string, scale float64) []Segment {
	src := c.segs[name]
	out := make([]Segment, len(src))
	for i, s := range src {
		out[i] = Segment{Start: s.Start * scale, End: s.End * scale, Depth: s.Depth * scale, Solid: s.Solid}
	}
	return out
}

type recordHealth struct {
	fall   []int
	hazard []int
	frozen bool
}

func (h *recordHealth) FallDamage(n int)   { h.fall = append(h.fall, n) }
func (h *recordHealth) HazardDamage(n int) { h.hazard = append(h.hazard, n) }
func (h *recordHealth) Frozen() bool       { return h.frozen }

type recordAudio struct {
	jumps, damage int
}

func (a *recordAudio) Jump()          { a.jumps++ }
func (a *recordAudio) LandingDamage() { a.damage++ }

func testConfig() config.ClimbConfig {
	return config.DefaultClimbConfig()
}

const frame = 1.0 / 60.0
