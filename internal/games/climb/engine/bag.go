package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/skyclimb/internal/config"
)

// Bag deals difficulty tiers from a shuffled bag. Each refill holds the
// tiers in proportion to their weights.
type Bag struct {
	rng   *rand.Rand
	tiers []config.TierConfig
	size  int
	items []int
}

// NewBag creates an empty bag; the first Next fills it.
func NewBag(rng *rand.Rand, tiers []config.TierConfig, size int) *Bag {
	if size <= 0 {
		size = len(tiers)
	}
	return &Bag{rng: rng, tiers: tiers, size: size}
}

// BaseWeights returns the configured tier weights.
func (b *Bag) BaseWeights() []float64 {
	w := make([]float64, len(b.tiers))
	for i, t := range b.tiers {
		w[i] = t.Weight
	}
	return w
}

// Next draws a tier. weights applies to the next refill only.
func (b *Bag) Next(weights []float64) config.TierConfig {
	if len(b.items) == 0 {
		b.refill(weights)
	}
	i := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return b.tiers[i]
}

// Remaining returns the number of tiers left before a refill.
func (b *Bag) Remaining() int {
	return len(b.items)
}

func (b *Bag) refill(weights []float64) {
	counts := apportion(weights, b.size)
	b.items = b.items[:0]
	for i, n := range counts {
		for range n {
			b.items = append(b.items, i)
		}
	}
	if len(b.items) == 0 {
		// All weights zero: deal the first tier.
		b.items = append(b.items, 0)
	}
	b.rng.Shuffle(len(b.items), func(i, j int) {
		b.items[i], b.items[j] = b.items[j], b.items[i]
	})
}

// apportion splits size slots across weights with the largest-remainder rule.
func apportion(weights []float64, size int) []int {
	counts := make([]int, len(weights))
	var total float64
	for _, w := range weights {
		total += max(w, 0)
	}
	if total <= 0 {
		return counts
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, 0, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := max(w, 0) / total * float64(size)
		counts[i] = int(math.Floor(exact))
		assigned += counts[i]
		rems = append(rems, rem{i, exact - math.Floor(exact)})
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for k := 0; assigned < size && k < len(rems); k++ {
		counts[rems[k].idx]++
		assigned++
	}
	return counts
}
