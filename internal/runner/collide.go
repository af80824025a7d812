package runner

import (
	"github.com/vovakirdan/scorch-runner/internal/config"
	"github.com/vovakirdan/scorch-runner/internal/core"
)

// Outcome lists what the resolver found in one frame.
type Outcome struct {
	Fatal     bool
	HitBy     EntityID
	Passed    []EntityID
	Collected []Item // items as they were when touched
	Card      EntityID
	CardTaken bool
}

// Resolver tests the player against every pooled entity and applies
// score and health effects.
type Resolver struct {
	scoring config.ScoringConfig
}

// NewResolver creates a resolver with the given scoring rules.
func NewResolver(scoring config.ScoringConfig) *Resolver {
	return &Resolver{scoring: scoring}
}

// Resolve checks obstacles, then items, then cards.
//
// A fatal obstacle stops resolution for the frame. Obstacles that moved more
// than PassMargin past the player score once per trip; this happens during
// the grace window too. Items heal and score on any contact. Cards are only
// considered when cardsOpen is true and outside grace; at most one card is
// taken per frame.
func (r *Resolver) Resolve(hero core.Box, heroZ float64, pool *Pool, stats *Stats, grace, cardsOpen bool) Outcome {
	var out Outcome

	for i := range pool.Obstacles {
		o := &pool.Obstacles[i]
		if !grace && o.Bounds().Intersects(hero) {
			out.Fatal = true
			out.HitBy = o.ID
			return out
		}
		if !o.Scored && o.Pos.Z > heroZ+r.scoring.PassMargin {
			o.Scored = true
			stats.AddScore(r.scoring.PassBonus)
			out.Passed = append(out.Passed, o.ID)
		}
	}

	for i := range pool.Items {
		if !pool.Items[i].Bounds().Intersects(hero) {
			continue
		}
		out.Collected = append(out.Collected, pool.Items[i])
		stats.AddScore(r.scoring.ItemScore)
		stats.Heal(r.scoring.ItemHeal)
		pool.ConsumeItem(i)
	}

	if !cardsOpen || grace {
		return out
	}
	for i := range pool.Cards {
		c := &pool.Cards[i]
		if c.Used || !c.Bounds().Intersects(hero) {
			continue
		}
		pool.UseCard(i)
		out.Card = c.ID
		out.CardTaken = true
		break
	}

	return out
}
