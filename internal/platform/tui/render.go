package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyclimb/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorGrass:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorStone:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorWood:    lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorLeaf:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorFlower:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorRock:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorFaded:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorHazard:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorHeart:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
