package core

// Color is a semantic colour for a screen cell. The platform layer maps
// each value to a terminal colour.
type Color uint8

// Palette used by the climber.
const (
	ColorDefault Color = iota
	ColorGrass
	ColorStone
	ColorWood
	ColorLeaf
	ColorFlower
	ColorRock
	ColorFaded
	ColorHazard
	ColorPlayer
	ColorHeart
	ColorHUD
)
