package combatant

import (
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// Spawn scaling.
const (
	BaseHealth        = 20
	BaseDamage        = 4
	MinAttackInterval = 4000.0
	MaxAttackInterval = 10000.0

	BossHealthFactor = 5
	BossDamageFactor = 2
)

// Definition is the static template for a creature kind.
type Definition struct {
	Name string
	Boss bool
}

// Registry maps each kind to its template. It is also the rehydration table
// for combatants restored from a snapshot.
var Registry = map[Kind]Definition{
	KindWorm:   {Name: "Worm"},
	KindRat:    {Name: "Cave Rat"},
	KindSpider: {Name: "Spider"},
	KindGhoul:  {Name: "Ghoul"},
	KindWraith: {Name: "Wraith"},
	KindBoss:   {Name: "Hollow Warden", Boss: true},
}

// Bestiary lists regular kinds by increasing danger. A depth with N monster
// types draws from the first N.
var Bestiary = []Kind{KindWorm, KindRat, KindSpider, KindGhoul, KindWraith}

// Spawn creates a regular creature for depth, scaled by strength.
func Spawn(rng random.Source, depth, types int, strength float64) *Combatant {
	if types < 1 {
		types = 1
	}
	if types > len(Bestiary) {
		types = len(Bestiary)
	}
	kind := Bestiary[rng.Intn(types)]
	return build(rng, kind, depth, strength, 1, 1)
}

// SpawnBoss creates the guardian of a boss depth.
func SpawnBoss(rng random.Source, depth int, strength float64) *Combatant {
	return build(rng, KindBoss, depth, strength, BossHealthFactor, BossDamageFactor)
}

func build(rng random.Source, kind Kind, depth int, strength float64, healthFactor, damageFactor int) *Combatant {
	if depth < 1 {
		depth = 1
	}
	if strength <= 0 {
		strength = 1
	}
	health := float64(rng.Intn(100)+BaseHealth*depth) * strength * float64(healthFactor)
	damage := float64(rng.Intn(20)+BaseDamage*depth) * strength * float64(damageFactor)
	interval := random.Between(rng, MinAttackInterval, MaxAttackInterval)

	return &Combatant{
		Kind:           kind,
		Name:           Registry[kind].Name,
		Health:         int(math.Max(1, math.Floor(health))),
		Damage:         int(math.Floor(damage)),
		AttackInterval: interval,
	}
}

// Rehydrate rebuilds live combatants from persisted data. Entries of unknown
// kind or without health are dropped.
func Rehydrate(data []Data) []*Combatant {
	out := make([]*Combatant, 0, len(data))
	for _, d := range data {
		def, ok := Registry[d.Kind]
		if !ok || d.Health <= 0 {
			continue
		}
		interval := d.AttackInterval
		if interval <= 0 {
			interval = MaxAttackInterval
		}
		out = append(out, &Combatant{
			Kind:           d.Kind,
			Name:           def.Name,
			Health:         d.Health,
			Damage:         max(d.Damage, 0),
			AttackInterval: interval,
			AttackTimer:    math.Max(d.AttackTimer, 0),
		})
	}
	return out
}
