package engine

import (
	"math"

	"github.com/vovakirdan/skyclimb/internal/config"
	"github.com/vovakirdan/skyclimb/internal/core"
)

// framesPerSecond normalises the per-frame friction and decay multipliers.
const framesPerSecond = 60

// ClampDT validates a frame time in seconds. Negative or oversized values
// skip the frame (ok=false); the rest are clamped to the maximum step.
func ClampDT(dt float64, cfg config.ClimbPhysics) (float64, bool) {
	if math.IsNaN(dt) || dt < 0 || dt > cfg.SkipDTMs/1000 {
		return 0, false
	}
	return min(dt, cfg.MaxDTMs/1000), true
}

// IntegrateHorizontal steers VX toward the input's target speed and moves X.
// A NaN magnitude counts as no input.
func IntegrateHorizontal(p *PlayerState, in Intent, dt float64, cfg config.ClimbPhysics) {
	dir := core.Clamp(in.DirX, -1, 1)
	mag := in.Magnitude
	if math.IsNaN(mag) {
		mag = 0
	}
	mag = core.ClampF(mag, 0, 1)
	p.Dir, p.Magnitude = dir, mag

	target := float64(dir) * mag * cfg.MaxRunSpeed
	idle := target == 0
	frames := dt * framesPerSecond

	if p.Grounded {
		if idle {
			p.VX *= math.Pow(cfg.Friction, frames)
			p.VX = core.Approach(p.VX, 0, cfg.Decel*dt)
		} else {
			rate := cfg.Accel
			if p.VX != 0 && core.SignF(p.VX) != core.SignF(target) {
				rate = cfg.Decel
			}
			p.VX = core.Approach(p.VX, target, rate*dt)
		}
	} else {
		if idle {
			p.VX *= math.Pow(cfg.AirDecay, frames)
			if math.Abs(p.VX) < cfg.SnapThreshold {
				p.VX = 0
			}
		} else {
			p.VX = core.Approach(p.VX, target, cfg.Accel*cfg.AirControl*dt)
		}
	}

	p.X += p.VX * dt
}

// IntegrateVertical applies gravity with a terminal fall speed and moves Z.
func IntegrateVertical(p *PlayerState, dt float64, cfg config.ClimbPhysics) {
	p.VZ = max(p.VZ-cfg.Gravity*dt, -cfg.MaxFallSpeed)
	p.Z += p.VZ * dt
}

// TrackFall opens a fall session the first airborne frame (peak at the
// height the body left from) and keeps the peak current afterwards.
func TrackFall(p *PlayerState, prevZ float64) {
	if p.Grounded {
		return
	}
	if !p.Falling {
		p.Falling = true
		p.FallPeak = prevZ
	}
	p.FallPeak = max(p.FallPeak, prevZ, p.Z)
}
