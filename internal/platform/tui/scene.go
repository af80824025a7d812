package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/scorch-runner/internal/core"
	"github.com/vovakirdan/scorch-runner/internal/registry"
	"github.com/vovakirdan/scorch-runner/internal/runner"
)

// Scene layout constants
const (
	hudRows     = 2    // score line and hint line
	footerRows  = 1    // help line
	cameraBack  = 6.0  // camera distance behind the player
	viewDepth   = 110  // entities farther ahead are not drawn
	rowsPerUnit = 1.6  // screen rows per world unit at the player's depth
	laneWidth   = 6.0  // world distance between lane centers
	roadHalf    = 9.0  // road edge, world x
	dashLength  = 3.0  // world length of a lane divider dash
	minSceneW   = 30
	minSceneH   = 12
)

// Scene glyphs
const (
	CactusTop   = 'Ψ'
	CactusTrunk = '┃'
	SaplingChar = '♣'
	WaterChar   = '●'
	SolarChar   = '▰'
	CardChar    = '▒'
	CardMark    = '?'
	HeroBody    = '█'
	HeroLegs    = '╨'
	HeroSlide   = '▄'
	SmearChar   = '░'
	DustChar    = '∙'
	RoadLeft    = '╱'
	RoadRight   = '╲'
	DividerChar = '┆'
	HorizonChar = '─'
)

var tornadoFrames = []rune{'|', '/', '─', '\\'}

// SceneInfo carries what the lane view shows besides the snapshot.
type SceneInfo struct {
	Character registry.Character
	Dust      float64 // seconds of landing dust left
	Toast     string  // short message under the HUD, e.g. the answer result
	ToastBad  bool
	Best      int // best score for the character, 0 if unknown
	Help      string
}

// projector maps world coordinates to screen cells with a simple pinhole
// perspective. Scale is 1 at the player and shrinks toward the horizon.
type projector struct {
	horizon  int
	ground   int
	cx       float64
	laneCols float64 // screen columns per world unit at the player's depth
}

func newProjector(w, h int) projector {
	horizon := hudRows + 1
	ground := h - footerRows - 2
	if ground <= horizon {
		ground = horizon + 1
	}
	return projector{
		horizon:  horizon,
		ground:   ground,
		cx:       float64(w-1) / 2,
		laneCols: float64(w) / 4 / laneWidth,
	}
}

// scale returns the perspective scale at world z, or 0 behind the camera.
func (p projector) scale(z float64) float64 {
	d := cameraBack - z
	if d < 1 {
		return 0
	}
	return cameraBack / d
}

// project returns the screen cell of a world point.
func (p projector) project(v core.Vec3) (col, row int, s float64, ok bool) {
	s = p.scale(v.Z)
	if s == 0 {
		return 0, 0, 0, false
	}
	groundRow := float64(p.horizon) + s*float64(p.ground-p.horizon)
	row = int(math.Round(groundRow - v.Y*s*rowsPerUnit))
	col = int(math.Round(p.cx + v.X*s*p.laneCols))
	return col, row, s, true
}

// rowScale is the inverse of project for ground rows.
func (p projector) rowScale(row int) float64 {
	return float64(row-p.horizon) / float64(p.ground-p.horizon)
}

// DrawScene renders a frame of the run into dst.
func DrawScene(dst *core.Screen, snap runner.Snapshot, info SceneInfo) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < minSceneW || h < minSceneH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorDanger)
		return
	}

	p := newProjector(w, h)
	travelled := snap.Elapsed * snap.Speed

	drawRoad(dst, p, travelled)
	drawEntities(dst, p, snap.Entities)
	drawHero(dst, p, snap.Player, info)
	drawHUD(dst, snap, info)

	switch snap.Overlay {
	case runner.OverlayPaused:
		drawMessageBox(dst, core.ColorHUD, "PAUSED", "Press P or move to resume", "Esc to leave the zone")
	case runner.OverlayQuiz:
		drawQuizCard(dst, snap)
	case runner.OverlayGameOver:
		drawGameOver(dst, snap, info)
	}
}

// drawRoad renders the horizon, road edges, lane dividers and sand.
func drawRoad(dst *core.Screen, p projector, travelled float64) {
	dst.DrawHLine(0, p.horizon, dst.Width(), HorizonChar, core.ColorMuted)

	for row := p.horizon + 1; row < dst.Height()-footerRows; row++ {
		s := p.rowScale(row)
		if s <= 0 {
			continue
		}
		depth := cameraBack / s
		stripe := int(math.Floor((depth+travelled)/dashLength)) % 2

		left := int(math.Round(p.cx - roadHalf*s*p.laneCols))
		right := int(math.Round(p.cx + roadHalf*s*p.laneCols))

		// Sand grain outside the road, scrolling with the run.
		for x := range dst.Width() {
			if x >= left && x <= right {
				continue
			}
			if sandGrain(x, int(math.Floor(depth+travelled))) {
				dst.SetColored(x, row, '.', core.ColorSand)
			}
		}

		dst.SetColored(left, row, RoadLeft, core.ColorRail)
		dst.SetColored(right, row, RoadRight, core.ColorRail)

		if stripe == 0 {
			for _, bx := range []float64{-laneWidth / 2, laneWidth / 2} {
				col := int(math.Round(p.cx + bx*s*p.laneCols))
				dst.SetColored(col, row, DividerChar, core.ColorRail)
			}
		}
	}
}

// sandGrain is a cheap deterministic hash deciding where sand dots go.
func sandGrain(x, d int) bool {
	v := uint32(x)*2654435761 ^ uint32(d)*40503
	return v%23 == 0
}

// drawEntities draws pooled entities far to near so nearer ones overlap.
func drawEntities(dst *core.Screen, p projector, entities []runner.EntityView) {
	visible := make([]runner.EntityView, 0, len(entities))
	for _, e := range entities {
		if e.Position.Z < -viewDepth || p.scale(e.Position.Z) == 0 {
			continue
		}
		visible = append(visible, e)
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].Position.Z < visible[j].Position.Z
	})

	for _, e := range visible {
		drawEntity(dst, p, e)
	}
}

// spriteRect returns the screen rectangle covering a bounding box front face.
func spriteRect(p projector, b core.Box, z float64) (x, y, w, h int, s float64, ok bool) {
	c := b.Center()
	col, bottom, s, ok := p.project(core.Vec3{X: c.X, Y: b.Min.Y, Z: z})
	if !ok {
		return 0, 0, 0, 0, 0, false
	}
	size := b.Size()
	w = max(1, int(math.Round(size.X*s*p.laneCols)))
	h = max(1, int(math.Round(size.Y*s*rowsPerUnit)))
	return col - w/2, bottom - h + 1, w, h, s, true
}

func drawEntity(dst *core.Screen, p projector, e runner.EntityView) {
	x, y, w, h, _, ok := spriteRect(p, e.Bounds, e.Position.Z)
	if !ok {
		return
	}

	switch e.Kind {
	case runner.KindCactus:
		for dy := range h {
			r := CactusTrunk
			if dy == 0 {
				r = CactusTop
			}
			for dx := range w {
				if dy == 0 || dx == w/2 || (dy == h/2 && w > 2) {
					dst.SetColored(x+dx, y+dy, r, core.ColorCactus)
				}
			}
		}
	case runner.KindTornado:
		frame := tornadoFrames[int(math.Abs(e.RotationY)/(math.Pi/4))%len(tornadoFrames)]
		for dy := range h {
			// funnel: widest at the top
			rw := max(1, w*(h-dy)/h)
			off := (w - rw) / 2
			for dx := range rw {
				r := frame
				if (dx+dy)%2 == 1 {
					r = '~'
				}
				dst.SetColored(x+off+dx, y+dy, r, core.ColorTornado)
			}
		}
	case runner.KindSapling:
		fillRect(dst, x, y, w, h, SaplingChar, core.ColorSapling)
	case runner.KindWater:
		fillRect(dst, x, y, w, h, WaterChar, core.ColorWater)
	case runner.KindSolar:
		fillRect(dst, x, y, w, h, SolarChar, core.ColorSolar)
	case runner.KindCard:
		fillRect(dst, x, y, w, h, CardChar, core.ColorCard)
		dst.SetColored(x+w/2, y+h/2, CardMark, core.ColorCard)
	}
}

func fillRect(dst *core.Screen, x, y, w, h int, r rune, c core.Color) {
	for dy := range h {
		for dx := range w {
			dst.SetColored(x+dx, y+dy, r, c)
		}
	}
}

// drawHero draws the runner with the character's glyph as its head.
func drawHero(dst *core.Screen, p projector, pv runner.PlayerView, info SceneInfo) {
	pos := pv.Position
	pos.Y += pv.Bob
	col, feet, s, ok := p.project(pos)
	if !ok {
		return
	}
	width := max(1, int(math.Round(0.8*s*p.laneCols)))
	left := col - width/2

	glyph := info.Character.Glyph
	if glyph == 0 {
		glyph = '@'
	}

	if pv.Sliding {
		fillRect(dst, left, feet, width, 1, HeroSlide, core.ColorHero)
		dst.SetColored(left+width, feet, glyph, core.ColorHeroAccent)
	} else {
		bodyRows := max(1, int(math.Round(1.8*s*rowsPerUnit))-1)
		top := feet - bodyRows
		dst.SetColored(col, top, glyph, core.ColorHeroAccent)
		for dy := 1; dy < bodyRows; dy++ {
			fillRect(dst, left, top+dy, width, 1, HeroBody, core.ColorHero)
		}
		dst.DrawHLine(left, feet, width, HeroLegs, core.ColorHero)
		if pv.Smear > 0 {
			for dy := 1; dy <= bodyRows; dy++ {
				dst.SetColored(left-1, top+dy, SmearChar, core.ColorHeroAccent)
				dst.SetColored(left+width, top+dy, SmearChar, core.ColorHeroAccent)
			}
		}
	}

	if info.Dust > 0 && !pv.Airborne {
		_, ground, _, _ := p.project(core.Vec3{X: pv.Position.X, Z: pv.Position.Z})
		spread := width/2 + 2
		for dx := -spread; dx <= spread; dx += 2 {
			if dx > -width/2-1 && dx < width/2+1 {
				continue
			}
			dst.SetColored(col+dx, ground, DustChar, core.ColorDust)
		}
	}
}

// healthBar renders health as a fixed width gauge.
func healthBar(health, maxHealth, width int) string {
	if maxHealth <= 0 {
		return strings.Repeat("░", width)
	}
	filled := core.Clamp(health*width/maxHealth, 0, width)
	if health > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// drawHUD draws the score line, the hint line and the help footer.
func drawHUD(dst *core.Screen, snap runner.Snapshot, info SceneInfo) {
	w, h := dst.Width(), dst.Height()

	score := fmt.Sprintf(" SCORE %d ", snap.Score)
	dst.DrawText(1, 0, score, core.ColorHUD)

	healthColor := core.ColorHUD
	if snap.LowHealth {
		healthColor = core.ColorDanger
	}
	health := fmt.Sprintf("HEALTH %s %3d", healthBar(snap.Health, snap.MaxHealth, 10), snap.Health)
	hx := 1 + len([]rune(score)) + 1
	dst.DrawText(hx, 0, health, healthColor)

	right := fmt.Sprintf("WRONG %d/%d  SPD %.0f ", snap.Wrong, snap.MaxWrong, snap.Speed)
	if info.Best > 0 {
		right = fmt.Sprintf("BEST %d  ", info.Best) + right
	}
	dst.DrawText(w-len([]rune(right))-1, 0, right, core.ColorMuted)

	hint := info.Character.Hint
	if hint == "" {
		hint = info.Character.Title
	}
	if snap.InGrace && snap.Phase == core.PhaseRunning {
		hint = "GET READY · " + hint
	}
	dst.DrawText(2, 1, hint, core.ColorMuted)

	if info.Toast != "" {
		c := core.ColorSapling
		if info.ToastBad {
			c = core.ColorDanger
		}
		dst.DrawTextCentered(hudRows+2, info.Toast, c)
	}

	if info.Help != "" {
		lines := strings.Split(info.Help, "\n")
		for i, l := range lines {
			dst.DrawText(1, h-len(lines)+i, l, core.ColorMuted)
		}
	}
}

// drawMessageBox draws a framed block of centered lines in the middle of the screen.
func drawMessageBox(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := min(width+6, dst.Width())
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	for i, l := range lines {
		n := len([]rune(l))
		dst.DrawText(boxX+(boxW-n)/2, boxY+1+i*2, l, c)
	}
}

// wrapText wraps s to width columns.
func wrapText(s string, width int) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// drawQuizCard draws the chance card with the question and numbered choices.
func drawQuizCard(dst *core.Screen, snap runner.Snapshot) {
	q := snap.Question
	boxW := min(64, dst.Width()-2)
	inner := boxW - 4

	var body []string
	body = append(body, wrapText(q.Prompt, inner)...)
	body = append(body, "")
	for i, choice := range q.Choices {
		body = append(body, wrapText(fmt.Sprintf("%d) %s", i+1, choice), inner)...)
	}

	boxH := len(body) + 6
	boxX := (dst.Width() - boxW) / 2
	boxY := max(hudRows, (dst.Height()-boxH)/2)

	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorCard)
	dst.DrawTextCentered(boxY+1, "CHANCE CARD", core.ColorCard)
	for i, l := range body {
		dst.DrawText(boxX+2, boxY+3+i, l, core.ColorHUD)
	}
	footer := fmt.Sprintf("Press 1-%d · correct +%d · wrong -%d health", len(q.Choices), snap.CorrectBonus, snap.WrongPenalty)
	dst.DrawTextCentered(boxY+boxH-2, footer, core.ColorMuted)
}

// endReasonText describes why the run ended.
func endReasonText(r runner.EndReason) string {
	switch r {
	case runner.EndObstacle:
		return "You ran into an obstacle"
	case runner.EndQuiz:
		return "Too many wrong answers"
	case runner.EndHealth:
		return "Your health ran out"
	default:
		return "Run over"
	}
}

func drawGameOver(dst *core.Screen, snap runner.Snapshot, info SceneInfo) {
	result := fmt.Sprintf("Score: %d  ·  Time: %ds", snap.Score, int(snap.Elapsed))
	if info.Best > 0 && snap.Score >= info.Best {
		result += "  ·  New best!"
	}
	drawMessageBox(dst, core.ColorDanger,
		"GAME OVER",
		endReasonText(snap.EndReason),
		result,
		"R to restart · Esc to leave the zone",
	)
}
