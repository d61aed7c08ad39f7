package engine

import (
	"hash/fnv"
	"math/rand"
	"time"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DailySeed derives the shared seed for a calendar day (UTC).
func DailySeed(day time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("skyclimb/" + day.UTC().Format(time.DateOnly)))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// weightedIndex picks an index with probability proportional to its weight.
// It returns -1 when no weight is positive.
func weightedIndex(r *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if roll < w {
			return i
		}
		roll -= w
	}
	return last
}
