package climb

// Hearts is the health collaborator: a small pool of hearts, and the run
// is frozen once it is empty.
type Hearts struct {
	max     int
	current int
	taken   int
}

// NewHearts creates a full pool. At least one heart is always granted.
func NewHearts(n int) *Hearts {
	h := &Hearts{}
	h.Reset(n)
	return h
}

// Reset refills the pool with n hearts.
func (h *Hearts) Reset(n int) {
	h.max = max(n, 1)
	h.current = h.max
	h.taken = 0
}

// FallDamage implements engine.Health.
func (h *Hearts) FallDamage(amount int) {
	h.take(amount)
}

// HazardDamage implements engine.Health.
func (h *Hearts) HazardDamage(amount int) {
	h.take(amount)
}

// Frozen implements engine.Health.
func (h *Hearts) Frozen() bool {
	return h.Dead()
}

func (h *Hearts) take(amount int) {
	if amount <= 0 || h.current == 0 {
		return
	}
	h.current = max(h.current-amount, 0)
	h.taken++
}

// Current returns the hearts left.
func (h *Hearts) Current() int { return h.current }

// Max returns the pool size.
func (h *Hearts) Max() int { return h.max }

// Dead reports an empty pool.
func (h *Hearts) Dead() bool { return h.current == 0 }

// Hits counts damage events since the last Reset.
func (h *Hearts) Hits() int { return h.taken }
