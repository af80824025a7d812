package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/scorch-runner/internal/config"
)

// Pool owns every obstacle, item and chance card. Entities are never freed:
// once they pass behind the runner they are moved back ahead of it.
type Pool struct {
	Obstacles []Obstacle
	Items     []Item
	Cards     []Card

	cfg    config.PoolConfig
	lanes  Lanes
	rng    *rand.Rand
	nextID EntityID
}

// NewPool creates an empty pool drawing placements from the given seed.
func NewPool(cfg config.PoolConfig, lanes Lanes, seed int64) *Pool {
	return &Pool{
		Obstacles: make([]Obstacle, 0, cfg.SeedGroups),
		Items:     make([]Item, 0, cfg.SeedGroups),
		Cards:     make([]Card, 0, cfg.SeedGroups/max(cfg.CardEvery, 1)+1),
		cfg:       cfg,
		lanes:     lanes,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Seed clears the pool and lays out groups of entities receding from
// SeedStartZ. Each group has one obstacle, a card every CardEvery groups
// and an item with probability ItemChance. The RNG stream continues, so a
// restarted run gets a new layout.
func (p *Pool) Seed(groups int) {
	p.Obstacles = p.Obstacles[:0]
	p.Items = p.Items[:0]
	p.Cards = p.Cards[:0]

	z := p.cfg.SeedStartZ
	for i := range groups {
		kind := KindTornado
		if p.rng.Float64() < p.cfg.StaticChance {
			kind = KindCactus
		}
		p.addObstacle(kind, p.randomLane(), z)

		if i%p.cfg.CardEvery == p.cfg.CardPhase {
			p.addCard(p.randomLane(), z-p.cfg.CardOffset)
		}
		if p.rng.Float64() < p.cfg.ItemChance {
			p.addItem(itemKinds[p.rng.Intn(len(itemKinds))], p.randomLane(), z-p.cfg.ItemOffset)
		}

		z -= p.cfg.SpacingMin + p.rng.Float64()*p.cfg.SpacingJitter
	}
}

func (p *Pool) newID() EntityID {
	p.nextID++
	return p.nextID
}

func (p *Pool) randomLane() int {
	return p.rng.Intn(p.lanes.Count())
}

func (p *Pool) addObstacle(kind EntityKind, lane int, z float64) {
	o := Obstacle{
		ID:    p.newID(),
		Kind:  kind,
		Lane:  lane,
		BaseX: p.lanes.X(lane),
	}
	o.Pos.X = o.BaseX
	o.Pos.Z = z
	if kind == KindTornado {
		o.Spin = p.cfg.SpinMin + p.rng.Float64()*p.cfg.SpinJitter
		o.Wobble = p.rng.Float64() * 2 * math.Pi
		o.WobbleSpeed = p.cfg.WobbleSpeedMin + p.rng.Float64()*p.cfg.WobbleSpeedJitter
		o.Pos.X = o.BaseX + math.Sin(o.Wobble)*p.cfg.WobbleAmplitude
	}
	p.Obstacles = append(p.Obstacles, o)
}

func (p *Pool) addItem(kind EntityKind, lane int, z float64) {
	p.Items = append(p.Items, Item{ID: p.newID(), Kind: kind, Lane: lane})
	it := &p.Items[len(p.Items)-1]
	it.Pos.X = p.lanes.X(lane)
	it.Pos.Z = z
}

func (p *Pool) addCard(lane int, z float64) {
	p.Cards = append(p.Cards, Card{ID: p.newID(), Lane: lane})
	c := &p.Cards[len(p.Cards)-1]
	c.Pos.X = p.lanes.X(lane)
	c.Pos.Z = z
}

// Advance moves every entity toward the runner by speed*dt, animates
// tornadoes and recycles anything that passed BehindZ. It returns the
// number of recycled entities.
func (p *Pool) Advance(dt, speed float64) int {
	step := speed * dt
	recycled := 0

	for i := range p.Obstacles {
		o := &p.Obstacles[i]
		o.Pos.Z += step
		if o.Kind == KindTornado {
			o.RotationY += o.Spin * dt
			o.Wobble += o.WobbleSpeed * dt
			o.Pos.X = o.BaseX + math.Sin(o.Wobble)*p.cfg.WobbleAmplitude
		}
		if o.Pos.Z > p.cfg.BehindZ {
			p.recycleObstacle(o)
			recycled++
		}
	}

	for i := range p.Items {
		it := &p.Items[i]
		it.Pos.Z += step
		if it.Pos.Z > p.cfg.BehindZ {
			it.Lane = p.randomLane()
			it.Pos.X = p.lanes.X(it.Lane)
			it.Pos.Z = p.cfg.AheadZ - p.cfg.ItemRecycleOffset - p.rng.Float64()*p.cfg.ItemRecycleJitter
			recycled++
		}
	}

	for i := range p.Cards {
		c := &p.Cards[i]
		c.Pos.Z += step
		if c.Pos.Z > p.cfg.BehindZ {
			c.Lane = p.randomLane()
			c.Pos.X = p.lanes.X(c.Lane)
			c.Pos.Z = p.cardRecycleZ()
			c.Used = false
			recycled++
		}
	}

	return recycled
}

func (p *Pool) recycleObstacle(o *Obstacle) {
	o.Lane = p.randomLane()
	o.BaseX = p.lanes.X(o.Lane)
	o.Pos.X = o.BaseX
	if o.Kind == KindTornado {
		o.Pos.X += math.Sin(o.Wobble) * p.cfg.WobbleAmplitude
	}
	o.Pos.Z = p.cfg.AheadZ - p.cfg.ObstacleRecycleOffset - p.rng.Float64()*p.cfg.ObstacleRecycleJitter
	o.Scored = false
}

func (p *Pool) cardRecycleZ() float64 {
	return p.cfg.AheadZ - p.cfg.CardRecycleOffset - p.rng.Float64()*p.cfg.CardRecycleJitter
}

// EnsureMinimumCards spawns one card far ahead when fewer than n exist.
// It returns true if a card was added.
func (p *Pool) EnsureMinimumCards(n int) bool {
	if len(p.Cards) >= n {
		return false
	}
	p.addCard(p.randomLane(), p.cardRecycleZ())
	return true
}

// ConsumeItem relocates a collected item far ahead in the same lane.
func (p *Pool) ConsumeItem(i int) {
	p.Items[i].Pos.Z = p.cfg.AheadZ - p.rng.Float64()*p.cfg.ItemConsumeJitter
}

// UseCard marks a card used and moves it far ahead so it cannot retrigger.
func (p *Pool) UseCard(i int) {
	p.Cards[i].Used = true
	p.Cards[i].Pos.Z = p.cardRecycleZ()
}

// Len returns the total number of pooled entities.
func (p *Pool) Len() int {
	return len(p.Obstacles) + len(p.Items) + len(p.Cards)
}
