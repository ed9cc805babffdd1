package engine

import (
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/rules"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// HazardSystem applies poison and environmental hazards at the current depth.
type HazardSystem struct {
	cfg Config
	rng random.Source
}

// NewHazardSystem creates the per-depth hazard manager.
func NewHazardSystem(cfg Config, rng random.Source) *HazardSystem {
	return &HazardSystem{cfg: cfg, rng: rng}
}

// OnTick runs poison then hazards. It reports whether the character died.
func (hs *HazardSystem) OnTick(c *character.Character, cfg depth.Config, elapsed float64) bool {
	if cfg.Poisonous && hs.poison(c, elapsed) {
		return true
	}
	if cfg.HazardsEnabled {
		return hs.hazards(c, cfg, elapsed)
	}
	return false
}

func (hs *HazardSystem) poison(c *character.Character, elapsed float64) bool {
	c.Timers.Poison += elapsed
	ticks := math.Floor(c.Timers.Poison / hs.cfg.PoisonInterval)
	if ticks < 1 {
		return false
	}
	c.Timers.Poison -= ticks * hs.cfg.PoisonInterval
	dmg := hs.cfg.PoisonDamage * int(ticks)
	c.TakeDamage(dmg)
	c.Log(narration.StyleWarning, "The poisonous air burns your lungs for %d damage.", dmg)
	return !c.Alive()
}

func (hs *HazardSystem) hazards(c *character.Character, cfg depth.Config, elapsed float64) bool {
	c.Timers.Hazard += elapsed
	rounds := int(math.Floor(c.Timers.Hazard / hs.cfg.HazardInterval))
	if rounds < 1 {
		return false
	}
	c.Timers.Hazard -= float64(rounds) * hs.cfg.HazardInterval

	for range rounds {
		if !random.Chance(hs.rng, hs.cfg.HazardChance) {
			continue
		}
		danger := max(hs.cfg.HazardDangerPerDepth*c.Depth, 1)
		raw := int(math.Floor(float64(hs.rng.Intn(danger)+hs.cfg.HazardBaseDamage) * cfg.HazardSeverity))
		hs.applyHazardDamage(c, raw)
		if !c.Alive() {
			return true
		}
		xp := c.GainExperience(int(math.Floor(c.XPBoost()*float64(c.Depth)*float64(hs.rng.Intn(20)) + 5)))
		c.Log(narration.StylePlain, "You survived and gained %d experience.", xp)
	}
	return false
}

// applyHazardDamage reduces a raw hazard roll by armor and applies it.
func (hs *HazardSystem) applyHazardDamage(c *character.Character, raw int) int {
	taken := rules.Mitigate(raw, c.DamageReduction())
	c.TakeDamage(taken)
	c.Log(narration.StyleWarning, "You encountered a hazard and took %d damage.", taken)
	return taken
}
