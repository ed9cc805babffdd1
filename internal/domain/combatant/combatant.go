// Package combatant defines the creatures a character fights below the surface.
// This package is PURE and must NOT import any infrastructure packages.
package combatant

import (
	"fmt"
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/rules"
)

// Kind identifies a creature template.
type Kind string

const (
	KindWorm   Kind = "worm"
	KindRat    Kind = "rat"
	KindSpider Kind = "spider"
	KindGhoul  Kind = "ghoul"
	KindWraith Kind = "wraith"
	KindBoss   Kind = "warden"
)

// Target is whatever a combatant can hit.
type Target interface {
	DamageReduction() float64
	TakeDamage(amount int)
}

// Combatant is a spawned creature. Its behavior is limited to timer-gated
// attacks driven by the controller.
type Combatant struct {
	Kind           Kind
	Name           string
	Health         int
	Damage         int
	AttackInterval float64 // milliseconds
	AttackTimer    float64 // milliseconds accumulated toward the next attack
}

// IsBoss reports whether the combatant guards a boss depth.
func (c *Combatant) IsBoss() bool {
	def, ok := Registry[c.Kind]
	return ok && def.Boss
}

// Alive reports whether the combatant still has health left.
func (c *Combatant) Alive() bool {
	return c.Health > 0
}

// Attack hits target once, reduced by the target's damage reduction, and
// narrates the blow. It returns the damage dealt.
func (c *Combatant) Attack(target Target, n narration.Narrator) int {
	dealt := rules.Mitigate(c.Damage, target.DamageReduction())
	target.TakeDamage(dealt)
	n.AppendLogLine(fmt.Sprintf("The %s attacked and dealt %d damage.", c.Name, dealt), narration.StyleCombat)
	return dealt
}

// TakeHit subtracts damage from the combatant, flooring health at zero.
func (c *Combatant) TakeHit(amount int) {
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// AdvanceTimer adds elapsed time and returns how many whole attack intervals
// are due, keeping the remainder.
func (c *Combatant) AdvanceTimer(elapsed float64) int {
	c.AttackTimer += elapsed
	if c.AttackInterval <= 0 {
		return 0
	}
	hits := int(math.Floor(c.AttackTimer / c.AttackInterval))
	c.AttackTimer -= float64(hits) * c.AttackInterval
	return hits
}

// Data is the inert persisted form of a combatant.
type Data struct {
	Kind           Kind    `json:"kind"`
	Name           string  `json:"name"`
	Health         int     `json:"health"`
	Damage         int     `json:"damage"`
	AttackInterval float64 `json:"attack_interval"`
	AttackTimer    float64 `json:"attack_timer"`
}

// Data captures the combatant for a snapshot.
func (c *Combatant) Data() Data {
	return Data{
		Kind:           c.Kind,
		Name:           c.Name,
		Health:         c.Health,
		Damage:         c.Damage,
		AttackInterval: c.AttackInterval,
		AttackTimer:    c.AttackTimer,
	}
}
