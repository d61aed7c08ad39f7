package climb

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/skyclimb/internal/core"
	"github.com/vovakirdan/skyclimb/internal/games/climb/engine"
)

// Visual characters for rendering
const (
	PlayerGround = '@'
	PlayerRise   = '^'
	PlayerFall   = 'v'
	WallChar     = '│'
	GroundChar   = '▀'
	HazardChar   = '~'
	HeartFull    = '♥'
	HeartEmpty   = '♡'
)

// fadeRunes shade a platform as it fades out, most opaque first.
var fadeRunes = []rune{'▓', '▒', '░'}

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

var colorNames = map[string]core.Color{
	"grass":  core.ColorGrass,
	"stone":  core.ColorStone,
	"wood":   core.ColorWood,
	"leaf":   core.ColorLeaf,
	"flower": core.ColorFlower,
	"rock":   core.ColorRock,
}

// viewport maps world pixels to screen cells. The bottom row shows the
// world y that sits ViewHeight below the camera.
type viewport struct {
	x0, y0   int
	w, h     int
	pxPerCol float64
	pxPerRow float64
	camY     float64
}

func newViewport(dst *core.Screen, worldW, viewH, camY float64) viewport {
	h := dst.Height() - 1
	w := int(float64(h-1) * worldW / viewH * cellAspect)
	w = core.Clamp(w, 16, dst.Width()-2)
	return viewport{
		x0:       (dst.Width() - w) / 2,
		y0:       1,
		w:        w,
		h:        h,
		pxPerCol: worldW / float64(w),
		pxPerRow: viewH / float64(h-1),
		camY:     camY,
	}
}

func (v viewport) col(x float64) int {
	return v.x0 + core.Clamp(int(math.Floor(x/v.pxPerCol)), 0, v.w-1)
}

func (v viewport) row(y float64) int {
	return v.y0 + int(math.Floor((y-v.camY)/v.pxPerRow))
}

func (v viewport) visible(row int) bool {
	return row >= v.y0 && row < v.y0+v.h
}

// Render draws the current run.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawTextCentered(dst.Height()/2, "too small")
		return
	}

	cfg := g.world.Config()
	v := newViewport(dst, cfg.World.Width, cfg.World.ViewHeight, g.world.Camera().Y)

	g.drawWalls(dst, v)
	g.drawGround(dst, v, cfg.World.FloorY)
	g.drawPlatforms(dst, v, cfg.World.MapID)
	g.drawDeathFloor(dst, v)
	g.drawPlayer(dst, v, cfg.World.FloorY)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.hearts.Dead() {
		g.drawCenteredMessage(dst, "YOU FELL", fmt.Sprintf("Height: %d  |  Press R to climb again", g.score()))
	}
}

func (g *Game) drawWalls(dst *core.Screen, v viewport) {
	for y := v.y0; y < v.y0+v.h; y++ {
		dst.SetColored(v.x0-1, y, WallChar, core.ColorHUD)
		dst.SetColored(v.x0+v.w, y, WallChar, core.ColorHUD)
	}
}

func (g *Game) drawGround(dst *core.Screen, v viewport, floorY float64) {
	row := v.row(floorY)
	if !v.visible(row) {
		return
	}
	dst.DrawHLine(v.x0, row, v.w, GroundChar, core.ColorGrass)
}

func (g *Game) drawPlatforms(dst *core.Screen, v viewport, mapID string) {
	for _, def := range g.world.Platforms() {
		glyph, colorName := catalog.Glyph(mapID, def.Prefab)
		color, ok := colorNames[colorName]
		if !ok {
			color = core.ColorDefault
		}
		if op := def.Opacity(); op < 1 {
			glyph, color = fadeRune(op), core.ColorFaded
		}

		switch def.Kind {
		case engine.KindPlatform:
			for _, s := range def.Slabs {
				g.drawSpan(dst, v, s.Left, s.Right, v.row(s.TopY), glyph, color)
			}
		case engine.KindDecoration:
			// Props stand on their parent's top edge.
			row := v.row(def.Y+def.Height) - 1
			g.drawSpan(dst, v, def.X, def.X+def.Width, row, glyph, color)
		}
	}
}

func (g *Game) drawSpan(dst *core.Screen, v viewport, left, right float64, row int, r rune, c core.Color) {
	if !v.visible(row) || right <= left {
		return
	}
	c0 := v.col(left)
	c1 := max(v.col(math.Nextafter(right, left)), c0)
	dst.DrawHLine(c0, row, c1-c0+1, r, c)
}

// fadeRune picks a shade for an opacity in [0, 1).
func fadeRune(opacity float64) rune {
	i := int((1 - opacity) * float64(len(fadeRunes)))
	return fadeRunes[core.Clamp(i, 0, len(fadeRunes)-1)]
}

func (g *Game) drawDeathFloor(dst *core.Screen, v viewport) {
	top := max(v.row(g.world.DeathFloor().Y), v.y0)
	for y := top; y < v.y0+v.h; y++ {
		dst.DrawHLine(v.x0, y, v.w, HazardChar, core.ColorHazard)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport, floorY float64) {
	p := g.world.Player()
	row := v.row(p.FeetY(floorY) - 1)
	if !v.visible(row) {
		return
	}
	glyph := PlayerGround
	switch {
	case p.Grounded:
	case p.VZ > 0:
		glyph = PlayerRise
	default:
		glyph = PlayerFall
	}
	dst.SetColored(v.col(p.X), row, glyph, core.ColorPlayer)
}

func (g *Game) drawHUD(dst *core.Screen) {
	heartColor := core.ColorHeart
	if g.flash > 0 && (g.flash/5)%2 == 0 {
		heartColor = core.ColorHazard
	}
	hearts := strings.Repeat(string(HeartFull), g.hearts.Current()) +
		strings.Repeat(string(HeartEmpty), g.hearts.Max()-g.hearts.Current())
	dst.DrawTextColored(1, 0, hearts, heartColor)

	height := fmt.Sprintf(" HEIGHT %d ", g.score())
	dst.DrawTextColored(utf8.RuneCountInString(hearts)+2, 0, height, core.ColorHUD)

	right := fmt.Sprintf(" SEED %d ", g.world.Seed())
	if g.daily {
		right = fmt.Sprintf(" DAILY %s ", g.now().UTC().Format(time.DateOnly))
	}
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorHUD)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleLen := utf8.RuneCountInString(title)
	subLen := utf8.RuneCountInString(subtitle)

	boxW := max(titleLen, subLen) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-titleLen)/2, boxY+1, title, core.ColorHUD)
	dst.DrawText(boxX+(boxW-subLen)/2, boxY+3, subtitle)
}
