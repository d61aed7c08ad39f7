package engine

import (
	"math/rand"
	"slices"
	"testing"
)

func TestDeathFloorNeverRegresses(t *testing.T) {
	floor := NewDeathFloor(640, 420)
	rng := rand.New(rand.NewSource(99))

	prev := floor.Y
	best := 640.0
	for range 1000 {
		// Player wanders up and down; best only improves sometimes
		y := 640 - rng.Float64()*5000
		if rng.Intn(3) == 0 {
			best = min(best, y)
			floor.Update(best)
		} else {
			floor.Update(y + rng.Float64()*3000)
		}
		if floor.Y > prev {
			t.Fatalf("death floor regressed from %v to %v", prev, floor.Y)
		}
		prev = floor.Y
	}
}

func newCullSet(defs ...*PlatformDef) *PlatformSet {
	var set PlatformSet
	for _, d := range defs {
		set.Add(d)
	}
	return &set
}

func TestFadeStrictlyDecreasesThenRemovesOnce(t *testing.T) {
	cfg := testConfig().Culling
	c := NewCuller(cfg)
	p := &PlatformDef{ID: PlatformID{1, 1}, Kind: KindPlatform, Y: 700, Width: 64, Height: 16}
	set := newCullSet(p)
	floorY := 600.0 // fade below 664, prune below 1080

	if removed := c.Update(0, set, floorY); len(removed) != 0 {
		t.Fatalf("removed too early: %v", removed)
	}
	if p.Fade == nil || p.Opacity() != 1 {
		t.Fatalf("fade should start at opacity 1, got %+v", p.Fade)
	}

	duration := cfg.FadeDurationMs / 1000
	prev := 1.0
	removedAt := -1
	for i := 1; i <= 20; i++ {
		now := duration * float64(i) / 10
		removed := c.Update(now, set, floorY)
		if slices.Contains(removed, p.ID) {
			if removedAt >= 0 {
				t.Fatalf("removed twice")
			}
			removedAt = i
			continue
		}
		if removedAt >= 0 {
			continue
		}
		if op := p.Opacity(); op >= prev || op <= 0 {
			t.Fatalf("opacity %v at step %d did not strictly decrease from %v", op, i, prev)
		} else {
			prev = op
		}
	}

	if removedAt != 10 {
		t.Errorf("removed at step %d, expected 10 (full duration)", removedAt)
	}
	if set.Len() != 0 {
		t.Errorf("set still holds %d entries", set.Len())
	}
}

func TestHardPruneMidFade(t *testing.T) {
	cfg := testConfig().Culling
	c := NewCuller(cfg)
	p := &PlatformDef{ID: PlatformID{1, 1}, Kind: KindPlatform, Y: 700, Width: 64, Height: 16}
	set := newCullSet(p)

	c.Update(0, set, 600)
	if p.Fade == nil {
		t.Fatal("expected fade")
	}

	removed := c.Update(0.01, set, 100) // prune line at 580
	if !slices.Equal(removed, []PlatformID{p.ID}) {
		t.Errorf("removed = %v, expected [%v]", removed, p.ID)
	}
}

func TestPlatformsAboveCullLineUntouched(t *testing.T) {
	c := NewCuller(testConfig().Culling)
	p := &PlatformDef{ID: PlatformID{1, 1}, Kind: KindPlatform, Y: 650, Width: 64, Height: 16}
	set := newCullSet(p)

	for i := range 10 {
		if removed := c.Update(float64(i), set, 600); len(removed) != 0 {
			t.Fatalf("removed %v", removed)
		}
	}
	if p.Fade != nil {
		t.Error("platform inside the margin should not fade")
	}
}

func TestDecorationsFadeWithPlatform(t *testing.T) {
	cfg := testConfig().Culling
	c := NewCuller(cfg)

	p := &PlatformDef{ID: PlatformID{1, 1}, Kind: KindPlatform, X: 100, Y: 700, Width: 96, Height: 16}
	child := &PlatformDef{ID: PlatformID{1, 2}, Kind: KindDecoration, X: 116, Y: 684, Width: 16, Height: 16, Parent: p.ID}
	other := &PlatformDef{ID: PlatformID{1, 3}, Kind: KindPlatform, X: 0, Y: 200, Width: 96, Height: 16}
	neighbour := &PlatformDef{ID: PlatformID{1, 4}, Kind: KindDecoration, X: 196, Y: 690, Width: 16, Height: 16, Parent: other.ID}
	far := &PlatformDef{ID: PlatformID{1, 5}, Kind: KindDecoration, X: 0, Y: 184, Width: 16, Height: 16, Parent: other.ID}
	set := newCullSet(p, child, other, neighbour, far)

	c.Update(0, set, 600)

	if child.Fade == nil || *child.Fade != *p.Fade {
		t.Errorf("child fade %+v should match parent %+v", child.Fade, p.Fade)
	}
	if neighbour.Fade == nil {
		t.Error("decoration next to a culled platform should fade")
	}
	if far.Fade != nil || other.Fade != nil {
		t.Error("live platform and its props should not fade")
	}

	removed := c.Update(cfg.FadeDurationMs/1000, set, 600)
	for _, id := range []PlatformID{p.ID, child.ID, neighbour.ID} {
		if !slices.Contains(removed, id) {
			t.Errorf("%v should be removed with its platform", id)
		}
	}
	if set.Len() != 2 {
		t.Errorf("set Len = %d, expected 2", set.Len())
	}
}

func TestOrphanDecorationRemoved(t *testing.T) {
	c := NewCuller(testConfig().Culling)
	orphan := &PlatformDef{ID: PlatformID{1, 2}, Kind: KindDecoration, Y: 100, Parent: PlatformID{1, 1}}
	set := newCullSet(orphan)

	if removed := c.Update(0, set, 600); !slices.Equal(removed, []PlatformID{orphan.ID}) {
		t.Errorf("removed = %v", removed)
	}
}

func TestFadeOpacityCurve(t *testing.T) {
	if FadeOpacity(0) != 1 || FadeOpacity(1) != 0 || FadeOpacity(0.5) != 0.25 {
		t.Error("unexpected ease-out values")
	}
	if FadeOpacity(-1) != 1 || FadeOpacity(2) != 0 {
		t.Error("progress should be clamped")
	}
}
