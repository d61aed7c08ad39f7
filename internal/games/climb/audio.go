package climb

// Bell is the audio collaborator for terminals: landing damage queues a
// terminal bell for the host to emit, jumps are only counted.
type Bell struct {
	ring    bool
	pending int
	jumps   int
	damage  int
}

// NewBell creates a bell. A bell that does not ring still counts cues.
func NewBell(ring bool) *Bell {
	return &Bell{ring: ring}
}

// Jump implements engine.Audio.
func (b *Bell) Jump() {
	b.jumps++
}

// LandingDamage implements engine.Audio.
func (b *Bell) LandingDamage() {
	b.damage++
	if b.ring {
		b.pending++
	}
}

// Take returns the rings queued since the last call and clears them.
func (b *Bell) Take() int {
	n := b.pending
	b.pending = 0
	return n
}

// Jumps returns the number of jump cues received.
func (b *Bell) Jumps() int { return b.jumps }

// Damage returns the number of landing damage cues received.
func (b *Bell) Damage() int { return b.damage }
