package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/registry"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorSand:       lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	core.ColorRail:       lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorCactus:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	core.ColorTornado:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorSapling:    lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	core.ColorWater:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorSolar:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorCard:       lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	core.ColorHero:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	core.ColorHeroAccent: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	core.ColorDust:       lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
	core.ColorHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorDanger:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorMuted:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// Palette is the set of styles used to render one screen.
type Palette map[core.Color]lipgloss.Style

// NewPalette returns the shared styles with the hero colors taken from
// the character.
func NewPalette(c registry.Character) Palette {
	p := make(Palette, len(colorStyles))
	for k, v := range colorStyles {
		p[k] = v
	}
	if c.Body != "" {
		p[core.ColorHero] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Body)).Bold(true)
	}
	if c.Accent != "" {
		p[core.ColorHeroAccent] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent))
	}
	return p
}

// Style returns the style for a color, falling back to the default.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if style, ok := p[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
