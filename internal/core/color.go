package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the lane view.
const (
	ColorDefault Color = iota
	ColorSand          // ground texture
	ColorRail          // lane dividers
	ColorCactus
	ColorTornado
	ColorSapling
	ColorWater
	ColorSolar
	ColorCard
	ColorHero
	ColorHeroAccent
	ColorDust
	ColorHUD
	ColorDanger // low health, game over
	ColorMuted
)
