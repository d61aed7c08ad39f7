package engine

import (
	"testing"

	"github.com/vovakirdan/skyclimb/internal/core"
)

func TestPackCellRoundTrip(t *testing.T) {
	for _, c := range [][2]int32{{0, 0}, {-1, 5}, {7, -300}, {-2147483648, 2147483647}} {
		x, y := packCell(c[0], c[1]).unpack()
		if x != c[0] || y != c[1] {
			t.Errorf("unpack(pack(%d, %d)) = (%d, %d)", c[0], c[1], x, y)
		}
	}
	if packCell(1, 0) == packCell(0, 1) {
		t.Error("distinct cells must have distinct keys")
	}
}

func TestSpatialQueryDeduplicates(t *testing.T) {
	idx := NewSpatialIndex(64)
	id := PlatformID{Session: 1, Local: 1}

	// Spans 3x2 cells
	idx.Insert(id, core.AABB{Left: 10, Top: 10, Right: 150, Bottom: 70})

	got := idx.Query(80, 40, 100, nil)
	if len(got) != 1 || got[0] != id {
		t.Errorf("Query = %v, expected [%v]", got, id)
	}
}

func TestSpatialInsertRemove(t *testing.T) {
	idx := NewSpatialIndex(64)
	a := PlatformID{Session: 1, Local: 1}
	b := PlatformID{Session: 1, Local: 2}

	idx.Insert(a, core.AABB{Left: 0, Top: 0, Right: 50, Bottom: 10})
	idx.Insert(b, core.AABB{Left: 0, Top: 500, Right: 50, Bottom: 510})

	if got := idx.Query(25, 5, 20, nil); len(got) != 1 || got[0] != a {
		t.Errorf("near a: %v", got)
	}
	if got := idx.Query(25, 505, 20, nil); len(got) != 1 || got[0] != b {
		t.Errorf("near b: %v", got)
	}

	idx.Remove(a)
	idx.Remove(a) // unknown ids are ignored
	if got := idx.Query(25, 5, 20, nil); len(got) != 0 {
		t.Errorf("removed id still found: %v", got)
	}
	if idx.Len() != 1 || idx.Has(a) || !idx.Has(b) {
		t.Errorf("Len = %d", idx.Len())
	}

	idx.Remove(b)
	if len(idx.cells) != 0 {
		t.Errorf("empty buckets should be dropped, %d left", len(idx.cells))
	}
}

func TestSpatialInsertMoves(t *testing.T) {
	idx := NewSpatialIndex(64)
	id := PlatformID{Session: 1, Local: 1}

	idx.Insert(id, core.AABB{Left: 0, Top: 0, Right: 10, Bottom: 10})
	idx.Insert(id, core.AABB{Left: 1000, Top: 1000, Right: 1010, Bottom: 1010})

	if got := idx.Query(5, 5, 5, nil); len(got) != 0 {
		t.Errorf("old position still indexed: %v", got)
	}
	if idx.Len() != 1 {
		t.Errorf("Len = %d, expected 1", idx.Len())
	}
}

func TestSpatialRebuild(t *testing.T) {
	idx := NewSpatialIndex(64)
	idx.Insert(PlatformID{Session: 1, Local: 9}, core.AABB{Right: 10, Bottom: 10})

	defs := []*PlatformDef{
		{ID: PlatformID{Session: 2, Local: 1}, X: 0, Y: 0, Width: 96, Height: 16},
		{ID: PlatformID{Session: 2, Local: 2}, X: 200, Y: -300, Width: 32, Height: 16},
	}
	idx.Rebuild(defs)

	if idx.Len() != 2 || idx.Has(PlatformID{Session: 1, Local: 9}) {
		t.Errorf("Rebuild should replace contents, Len = %d", idx.Len())
	}
	if got := idx.Query(210, -290, 8, nil); len(got) != 1 || got[0] != defs[1].ID {
		t.Errorf("Query = %v", got)
	}
}

func TestSpatialQueryAppendsToBuffer(t *testing.T) {
	idx := NewSpatialIndex(64)
	id := PlatformID{Session: 1, Local: 1}
	idx.Insert(id, core.AABB{Right: 10, Bottom: 10})

	buf := []PlatformID{id}
	got := idx.Query(5, 5, 5, buf)
	if len(got) != 2 {
		t.Errorf("Query should keep existing entries, got %v", got)
	}
}

func TestSpatialQueryDoesNotAllocate(t *testing.T) {
	idx := NewSpatialIndex(64)
	for i := range 50 {
		x := float64(i%5) * 70
		y := float64(i/5) * -60
		idx.Insert(PlatformID{Session: 1, Local: uint32(i + 1)}, core.AABB{Left: x, Top: y, Right: x + 64, Bottom: y + 16})
	}

	buf := make([]PlatformID, 0, 64)
	allocs := testing.AllocsPerRun(100, func() {
		buf = idx.Query(150, -200, 96, buf[:0])
	})
	if allocs != 0 {
		t.Errorf("Query allocated %v times per run", allocs)
	}
	if len(buf) == 0 {
		t.Error("expected hits")
	}
}
