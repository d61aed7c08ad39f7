package engine

// Camera is the top edge of the view in world y. It only ever moves up.
type Camera struct {
	Y        float64
	start    float64
	deadzone float64
}

// NewCamera places the view top at startY.
func NewCamera(startY, deadzoneFromTop float64) Camera {
	return Camera{Y: startY, start: startY, deadzone: deadzoneFromTop}
}

// Follow raises the view when the player climbs above the dead zone.
// Descending never lowers it.
func (c *Camera) Follow(playerY float64) {
	c.Y = min(c.Y, playerY-c.deadzone)
}

// Rise is how far the view has scrolled up since the run started.
func (c Camera) Rise() float64 {
	return c.start - c.Y
}
