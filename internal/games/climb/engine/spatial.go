package engine

import (
	"math"

	"github.com/vovakirdan/skyclimb/internal/core"
)

// cellKey packs two int32 cell coordinates into one map key.
type cellKey uint64

func packCell(cx, cy int32) cellKey {
	return cellKey(uint64(uint32(cx))<<32 | uint64(uint32(cy)))
}

func (k cellKey) unpack() (int32, int32) {
	return int32(uint32(k >> 32)), int32(uint32(k))
}

type cellSpan struct {
	x0, y0, x1, y1 int32
}

// SpatialIndex is a uniform grid over platform bounds used as the broad
// phase for collision.
type SpatialIndex struct {
	cellSize float64
	cells    map[cellKey][]PlatformID
	spans    map[PlatformID]cellSpan
}

// NewSpatialIndex creates an empty grid with square cells.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]PlatformID),
		spans:    make(map[PlatformID]cellSpan),
	}
}

func (s *SpatialIndex) cell(v float64) int32 {
	return int32(math.Floor(v / s.cellSize))
}

func (s *SpatialIndex) span(b core.AABB) cellSpan {
	return cellSpan{
		x0: s.cell(b.Left), y0: s.cell(b.Top),
		x1: s.cell(b.Right), y1: s.cell(b.Bottom),
	}
}

// Insert adds or moves an entry.
func (s *SpatialIndex) Insert(id PlatformID, bounds core.AABB) {
	if _, ok := s.spans[id]; ok {
		s.Remove(id)
	}
	sp := s.span(bounds)
	for cy := sp.y0; cy <= sp.y1; cy++ {
		for cx := sp.x0; cx <= sp.x1; cx++ {
			k := packCell(cx, cy)
			s.cells[k] = append(s.cells[k], id)
		}
	}
	s.spans[id] = sp
}

// Remove deletes an entry. Unknown ids are ignored.
func (s *SpatialIndex) Remove(id PlatformID) {
	sp, ok := s.spans[id]
	if !ok {
		return
	}
	for cy := sp.y0; cy <= sp.y1; cy++ {
		for cx := sp.x0; cx <= sp.x1; cx++ {
			k := packCell(cx, cy)
			bucket := s.cells[k]
			for i, other := range bucket {
				if other == id {
					bucket[i] = bucket[len(bucket)-1]
					bucket = bucket[:len(bucket)-1]
					break
				}
			}
			if len(bucket) == 0 {
				delete(s.cells, k)
			} else {
				s.cells[k] = bucket
			}
		}
	}
	delete(s.spans, id)
}

// Rebuild replaces the whole index with the given platforms.
func (s *SpatialIndex) Rebuild(defs []*PlatformDef) {
	clear(s.cells)
	clear(s.spans)
	for _, def := range defs {
		s.Insert(def.ID, def.Bounds())
	}
}

// Query appends to dst the ids whose cells intersect the square of the
// given radius around (x, y). Each id appears once.
func (s *SpatialIndex) Query(x, y, radius float64, dst []PlatformID) []PlatformID {
	start := len(dst)
	sp := s.span(core.AABB{Left: x - radius, Top: y - radius, Right: x + radius, Bottom: y + radius})
	for cy := sp.y0; cy <= sp.y1; cy++ {
		for cx := sp.x0; cx <= sp.x1; cx++ {
			for _, id := range s.cells[packCell(cx, cy)] {
				if !containsID(dst[start:], id) {
					dst = append(dst, id)
				}
			}
		}
	}
	return dst
}

// Len returns the number of indexed entries.
func (s *SpatialIndex) Len() int {
	return len(s.spans)
}

// Has reports whether id is indexed.
func (s *SpatialIndex) Has(id PlatformID) bool {
	_, ok := s.spans[id]
	return ok
}

func containsID(ids []PlatformID, id PlatformID) bool {
	for _, other := range ids {
		if other == id {
			return true
		}
	}
	return false
}
