package runner

import "github.com/vovakirdan/scorch-runner/internal/core"

// EntityID is a stable identifier assigned when an entity is created.
// Recycling keeps the ID.
type EntityID uint32

// EntityKind identifies what an entity is.
type EntityKind int

const (
	KindCactus EntityKind = iota
	KindTornado
	KindSapling
	KindWater
	KindSolar
	KindCard
)

var itemKinds = [...]EntityKind{KindSapling, KindWater, KindSolar}

// String returns a human-readable name for the kind.
func (k EntityKind) String() string {
	switch k {
	case KindCactus:
		return "cactus"
	case KindTornado:
		return "tornado"
	case KindSapling:
		return "sapling"
	case KindWater:
		return "water"
	case KindSolar:
		return "solar"
	case KindCard:
		return "card"
	default:
		return "unknown"
	}
}

// IsObstacle reports whether the kind ends the run on contact.
func (k EntityKind) IsObstacle() bool {
	return k == KindCactus || k == KindTornado
}

// IsItem reports whether the kind is a collectible.
func (k EntityKind) IsItem() bool {
	return k == KindSapling || k == KindWater || k == KindSolar
}

// Logical half-extents. Boxes are centered half.Y above the entity's
// ground position, except cards, which float.
var halfExtents = map[EntityKind]core.Vec3{
	KindCactus:  {X: 0.9, Y: 1.2, Z: 0.55},
	KindTornado: {X: 1.2, Y: 2.1, Z: 1.0},
	KindSapling: {X: 0.5, Y: 0.6, Z: 0.5},
	KindWater:   {X: 0.3, Y: 0.45, Z: 0.3},
	KindSolar:   {X: 0.6, Y: 0.3, Z: 0.4}, // panel on its stand
	KindCard:    {X: 0.45, Y: 0.6, Z: 0.05},
}

const cardCenterY = 1.0

// HalfExtents returns the unrotated half-extents of a kind.
func HalfExtents(k EntityKind) core.Vec3 {
	return halfExtents[k]
}

// Obstacle is a hazard that ends the run on contact after the grace window.
type Obstacle struct {
	ID     EntityID
	Kind   EntityKind
	Lane   int
	Pos    core.Vec3
	BaseX  float64 // lane center the tornado wobbles around
	Scored bool    // pass bonus already awarded for this trip

	// Tornado motion; zero for cacti.
	RotationY   float64
	Spin        float64 // rad/s
	Wobble      float64 // phase
	WobbleSpeed float64 // rad/s
}

// Bounds returns the obstacle's collision box. Tornado bounds enclose the
// box rotated by its current spin so collision follows the visual.
func (o Obstacle) Bounds() core.Box {
	half := halfExtents[o.Kind]
	if o.Kind == KindTornado {
		half = core.RotatedHalfY(half, o.RotationY)
	}
	return core.NewBox(core.Vec3{X: o.Pos.X, Y: o.Pos.Y + half.Y, Z: o.Pos.Z}, half)
}

// Item is a collectible that adds score and health.
type Item struct {
	ID   EntityID
	Kind EntityKind
	Lane int
	Pos  core.Vec3
}

// Bounds returns the item's pickup box.
func (it Item) Bounds() core.Box {
	half := halfExtents[it.Kind]
	return core.NewBox(core.Vec3{X: it.Pos.X, Y: it.Pos.Y + half.Y, Z: it.Pos.Z}, half)
}

// Card is a chance card that opens a quiz when touched.
type Card struct {
	ID   EntityID
	Lane int
	Pos  core.Vec3
	Used bool
}

// Bounds returns the card's pickup box.
func (c Card) Bounds() core.Box {
	return core.NewBox(core.Vec3{X: c.Pos.X, Y: cardCenterY, Z: c.Pos.Z}, halfExtents[KindCard])
}
