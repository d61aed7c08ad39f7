package engine

import "github.com/vovakirdan/skyclimb/internal/config"

// JumpState holds the coyote and buffer windows as independent countdowns.
type JumpState struct {
	CoyoteRemaining     float64 // Seconds a jump is still honoured after leaving ground
	BufferRemaining     float64 // Seconds an early press stays queued
	CeilingIgnoreFrames int     // Frames after take-off during which ceilings are ignored
}

// OnGroundContact refills the coyote window. Called every grounded frame.
func (j *JumpState) OnGroundContact(cfg config.ClimbJump) {
	j.CoyoteRemaining = cfg.CoyoteMs / 1000
}

// OnJumpPressed queues a jump for the buffer window.
func (j *JumpState) OnJumpPressed(cfg config.ClimbJump) {
	j.BufferRemaining = cfg.BufferMs / 1000
}

// Tick advances both windows by dt seconds and the ceiling grace by one frame.
func (j *JumpState) Tick(dt float64) {
	j.CoyoteRemaining = max(0, j.CoyoteRemaining-dt)
	j.BufferRemaining = max(0, j.BufferRemaining-dt)
	if j.CeilingIgnoreFrames > 0 {
		j.CeilingIgnoreFrames--
	}
}

// ShouldExecuteJump reports whether a queued press meets a live coyote window.
func (j *JumpState) ShouldExecuteJump() bool {
	return j.CoyoteRemaining > 0 && j.BufferRemaining > 0
}

// Consume launches the player and closes both windows, so the same press
// and the same ground contact can never produce a second jump.
func (j *JumpState) Consume(p *PlayerState, cfg config.ClimbJump) {
	p.VZ = cfg.Velocity
	p.Grounded = false
	p.Falling = true
	p.FallPeak = p.Z

	j.CoyoteRemaining = 0
	j.BufferRemaining = 0
	j.CeilingIgnoreFrames = cfg.CeilingIgnoreFrames
}
