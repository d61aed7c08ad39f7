package engine

import (
	"math"

	"github.com/vovakirdan/skyclimb/internal/config"
)

// Oracle decides whether a displacement fits inside one jump arc.
type Oracle struct {
	velocity float64
	gravity  float64
	runSpeed float64
	margin   float64
}

// NewOracle builds an oracle from the jump, physics and generator tuning.
func NewOracle(cfg config.ClimbConfig) Oracle {
	return Oracle{
		velocity: cfg.Jump.Velocity,
		gravity:  cfg.Physics.Gravity,
		runSpeed: cfg.Physics.MaxRunSpeed,
		margin:   cfg.Generator.SafetyMargin,
	}
}

// Apex is the height of a full jump.
func (o Oracle) Apex() float64 {
	if o.gravity <= 0 {
		return 0
	}
	return o.velocity * o.velocity / (2 * o.gravity)
}

// MaxRise is the apex scaled by the safety margin.
func (o Oracle) MaxRise() float64 {
	return o.Apex() * o.margin
}

// AirTime returns how long a jump stays above dyUp, landing on the way down.
func (o Oracle) AirTime(dyUp float64) float64 {
	if o.gravity <= 0 {
		return 0
	}
	disc := o.velocity*o.velocity - 2*o.gravity*dyUp
	if disc < 0 {
		return 0
	}
	return (o.velocity + math.Sqrt(disc)) / o.gravity
}

// MaxReach is the horizontal distance coverable while landing dyUp higher.
func (o Oracle) MaxReach(dyUp float64) float64 {
	return o.runSpeed * o.AirTime(dyUp) * o.margin
}

// Reachable reports whether a landing dx away (edge gap) and dyUp higher is
// achievable from a standing start at full run speed.
func (o Oracle) Reachable(dx, dyUp float64) bool {
	if math.IsNaN(dx) || math.IsNaN(dyUp) || dyUp > o.MaxRise() {
		return false
	}
	if o.AirTime(dyUp) <= 0 {
		return false
	}
	return math.Abs(dx) <= o.MaxReach(dyUp)
}
