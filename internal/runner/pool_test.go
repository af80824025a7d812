package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/scorch-runner/internal/config"
)

func newTestPool(seed int64) (*Pool, config.PoolConfig) {
	cfg := config.DefaultRunnerConfig()
	p := NewPool(cfg.Pool, NewLanes(cfg.Lanes.Offsets), seed)
	p.Seed(cfg.Pool.SeedGroups)
	return p, cfg.Pool
}

func TestSeedLayout(t *testing.T) {
	p, cfg := newTestPool(1)

	if len(p.Obstacles) != 22 {
		t.Fatalf("obstacles = %d, want 22", len(p.Obstacles))
	}
	// Groups 1, 4, 7, 10, 13, 16, 19 carry a card.
	if len(p.Cards) != 7 {
		t.Errorf("cards = %d, want 7", len(p.Cards))
	}
	if p.Obstacles[0].Pos.Z != cfg.SeedStartZ {
		t.Errorf("first obstacle z = %v, want %v", p.Obstacles[0].Pos.Z, cfg.SeedStartZ)
	}

	for i := 1; i < len(p.Obstacles); i++ {
		gap := p.Obstacles[i-1].Pos.Z - p.Obstacles[i].Pos.Z
		if gap < cfg.SpacingMin || gap > cfg.SpacingMin+cfg.SpacingJitter {
			t.Errorf("gap %d = %v, want [%v, %v]", i, gap, cfg.SpacingMin, cfg.SpacingMin+cfg.SpacingJitter)
		}
	}

	// Card i sits CardOffset behind obstacle 3*i+1.
	for i, c := range p.Cards {
		want := p.Obstacles[3*i+1].Pos.Z - cfg.CardOffset
		if c.Pos.Z != want {
			t.Errorf("card %d z = %v, want %v", i, c.Pos.Z, want)
		}
	}

	ids := make(map[EntityID]bool)
	for _, o := range p.Obstacles {
		checkLane(t, o.Lane)
		if !o.Kind.IsObstacle() {
			t.Errorf("obstacle %d has kind %v", o.ID, o.Kind)
		}
		ids[o.ID] = true
	}
	for _, it := range p.Items {
		checkLane(t, it.Lane)
		if !it.Kind.IsItem() {
			t.Errorf("item %d has kind %v", it.ID, it.Kind)
		}
		ids[it.ID] = true
	}
	for _, c := range p.Cards {
		checkLane(t, c.Lane)
		ids[c.ID] = true
	}
	if len(ids) != p.Len() {
		t.Errorf("ids not unique: %d distinct for %d entities", len(ids), p.Len())
	}
}

func checkLane(t *testing.T, lane int) {
	t.Helper()
	if lane < 0 || lane > 2 {
		t.Errorf("lane %d out of range", lane)
	}
}

func TestSeedDeterministic(t *testing.T) {
	a, _ := newTestPool(99)
	b, _ := newTestPool(99)
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Fatalf("obstacle %d differs with the same seed", i)
		}
	}
}

func TestAdvanceRecyclesPassedObstacle(t *testing.T) {
	p, cfg := newTestPool(3)
	first := p.Obstacles[0].ID
	p.Obstacles[0].Scored = true

	// Move the first group from -70 to +15, past BehindZ.
	p.Advance(85.0/18, 18)

	o := p.Obstacles[0]
	if o.ID != first {
		t.Fatalf("recycling changed the id: %d -> %d", first, o.ID)
	}
	if o.Pos.Z > -150 {
		t.Errorf("recycled z = %v, want <= -150", o.Pos.Z)
	}
	if o.Pos.Z < cfg.AheadZ-cfg.ObstacleRecycleOffset-cfg.ObstacleRecycleJitter {
		t.Errorf("recycled z = %v beyond the recycle window", o.Pos.Z)
	}
	if o.Scored {
		t.Error("recycled obstacle should not be scored")
	}
	checkLane(t, o.Lane)
	if o.BaseX != NewLanes([]float64{-6, 0, 6}).X(o.Lane) {
		t.Errorf("baseX %v does not match lane %d", o.BaseX, o.Lane)
	}
}

func TestAdvanceKeepsPoolSizes(t *testing.T) {
	p, cfg := newTestPool(5)
	obstacles, items, cards := len(p.Obstacles), len(p.Items), len(p.Cards)

	for range 5000 {
		p.Advance(1.0/60, 30)
		p.EnsureMinimumCards(cfg.MinCards)

		if len(p.Obstacles) != obstacles || len(p.Items) != items {
			t.Fatalf("pool size changed: %d/%d, want %d/%d", len(p.Obstacles), len(p.Items), obstacles, items)
		}
		if len(p.Cards) < cards || len(p.Cards) > cards+1 {
			t.Fatalf("cards = %d, want [%d, %d]", len(p.Cards), cards, cards+1)
		}
		for _, o := range p.Obstacles {
			if o.Pos.Z > cfg.BehindZ {
				t.Fatalf("obstacle %d left behind at z=%v", o.ID, o.Pos.Z)
			}
		}
	}
}

func TestAdvanceRecyclesItemsAndCards(t *testing.T) {
	p, cfg := newTestPool(8)
	p.Items = p.Items[:1]
	p.Cards = p.Cards[:1]
	p.Items[0].Pos.Z = cfg.BehindZ - 0.1
	p.Cards[0].Pos.Z = cfg.BehindZ - 0.1
	p.Cards[0].Used = true

	p.Advance(0.1, 18)

	if z := p.Items[0].Pos.Z; z > cfg.AheadZ-cfg.ItemRecycleOffset || z < cfg.AheadZ-cfg.ItemRecycleOffset-cfg.ItemRecycleJitter {
		t.Errorf("item recycled to %v", z)
	}
	if z := p.Cards[0].Pos.Z; z > cfg.AheadZ-cfg.CardRecycleOffset || z < cfg.AheadZ-cfg.CardRecycleOffset-cfg.CardRecycleJitter {
		t.Errorf("card recycled to %v", z)
	}
	if p.Cards[0].Used {
		t.Error("recycled card should be unused")
	}
}

func TestTornadoMotion(t *testing.T) {
	p, cfg := newTestPool(11)
	var idx = -1
	for i, o := range p.Obstacles {
		if o.Kind == KindTornado {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Skip("seed produced no tornado")
	}

	before := p.Obstacles[idx]
	if before.Spin < cfg.SpinMin || before.Spin > cfg.SpinMin+cfg.SpinJitter {
		t.Errorf("spin %v out of range", before.Spin)
	}
	p.Advance(0.1, 0)
	after := p.Obstacles[idx]

	if after.RotationY <= before.RotationY {
		t.Error("tornado should spin")
	}
	if math.Abs(after.Pos.X-after.BaseX) > cfg.WobbleAmplitude+1e-9 {
		t.Errorf("wobble %v exceeds amplitude", after.Pos.X-after.BaseX)
	}
}

func TestTornadoBoundsFollowRotation(t *testing.T) {
	o := Obstacle{Kind: KindTornado}
	flat := o.Bounds().Size()
	o.RotationY = math.Pi / 4
	turned := o.Bounds().Size()

	if turned.X <= flat.X || turned.Z <= flat.Z {
		t.Errorf("rotated bounds %+v should enclose unrotated %+v", turned, flat)
	}
	if turned.Y != flat.Y {
		t.Errorf("rotation about Y changed height: %v vs %v", turned.Y, flat.Y)
	}
}

func TestEnsureMinimumCards(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	p := NewPool(cfg.Pool, NewLanes(cfg.Lanes.Offsets), 1)
	p.Seed(2)
	if len(p.Cards) != 1 {
		t.Fatalf("two groups should seed one card, got %d", len(p.Cards))
	}

	if !p.EnsureMinimumCards(3) {
		t.Error("expected a card to be added")
	}
	if len(p.Cards) != 2 {
		t.Errorf("one card per call, got %d", len(p.Cards))
	}
	p.EnsureMinimumCards(3)
	if p.EnsureMinimumCards(3) {
		t.Error("no card should be added at the minimum")
	}
	if len(p.Cards) != 3 {
		t.Errorf("cards = %d, want 3", len(p.Cards))
	}
}

func TestConsumeItemAndUseCard(t *testing.T) {
	p, cfg := newTestPool(2)
	lane := p.Items[0].Lane
	p.ConsumeItem(0)
	if z := p.Items[0].Pos.Z; z > cfg.AheadZ || z < cfg.AheadZ-cfg.ItemConsumeJitter {
		t.Errorf("consumed item at %v", z)
	}
	if p.Items[0].Lane != lane {
		t.Error("consumed item should keep its lane")
	}

	p.UseCard(0)
	if !p.Cards[0].Used {
		t.Error("card should be marked used")
	}
	if z := p.Cards[0].Pos.Z; z > cfg.AheadZ-cfg.CardRecycleOffset {
		t.Errorf("used card at %v, want far ahead", z)
	}
}
