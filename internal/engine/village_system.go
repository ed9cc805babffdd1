package engine

import (
	"fmt"
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// VillageSystem runs the village-wide hazard. It ticks regardless of depth.
type VillageSystem struct {
	cfg    Config
	rng    random.Source
	logger *logger.Logger
}

// NewVillageSystem creates the village hazard manager.
func NewVillageSystem(cfg Config, rng random.Source, log *logger.Logger) *VillageSystem {
	return &VillageSystem{cfg: cfg, rng: rng, logger: log}
}

// Protection is the fraction by which village hazard chances are reduced.
func (vs *VillageSystem) Protection(c *character.Character) float64 {
	p := 0.15*float64(c.Buildings[building.GuardTower]) +
		0.02*float64(c.Buildings.Total()) +
		0.005*float64(c.LastDepthVisited)
	return math.Max(0, math.Min(p, vs.cfg.VillageMaxProtection))
}

// OnTick advances the cooldown or the active hazard. It reports whether a
// hazard ended on this tick.
func (vs *VillageSystem) OnTick(c *character.Character, elapsed float64) bool {
	if c.RecordDepth < vs.cfg.VillageMinDepth {
		return false
	}
	if !c.Village.Active {
		c.Timers.VillageHazard += elapsed
		if c.Timers.VillageHazard < vs.cfg.VillageCooldown {
			return false
		}
		vs.start(c)
		return false
	}

	shield := 1 - vs.Protection(c)
	if random.Chance(vs.rng, vs.cfg.VillageDestroyChance*shield) {
		vs.destroy(c)
	}
	if random.Chance(vs.rng, vs.cfg.VillageDebuffChance*shield) {
		vs.afflict(c)
	}

	c.Village.Remaining -= elapsed
	if c.Village.Remaining > 0 {
		return false
	}
	c.Village = character.VillageHazard{}
	c.Timers.VillageHazard = 0
	c.Log(narration.StylePlain, "The village is calm again.")
	vs.logger.Event("VILLAGE_HAZARD_ENDED", c.Name, "")
	return true
}

func (vs *VillageSystem) start(c *character.Character) {
	d := random.Between(vs.rng, vs.cfg.VillageMinDuration, vs.cfg.VillageMaxDuration)
	c.Village = character.VillageHazard{Active: true, Remaining: d}
	c.Timers.VillageHazard = 0
	c.Log(narration.StyleWarning, "Trouble is brewing in the village!")
	vs.logger.Event("VILLAGE_HAZARD_STARTED", c.Name, fmt.Sprintf("%.0f ms", d))
}

func (vs *VillageSystem) destroy(c *character.Character) {
	kind := resource.Raw[vs.rng.Intn(len(resource.Raw))]
	held := c.Resource(kind)
	if held <= 0 {
		return
	}
	lost := -c.ModifyResource(kind, -(1 + vs.rng.Intn(held)))
	c.Log(narration.StyleWarning, "Raiders carried off %d %s from the village.", lost, kind)
}

func (vs *VillageSystem) afflict(c *character.Character) {
	debuff := character.VillageDebuffs[vs.rng.Intn(len(character.VillageDebuffs))]
	if c.ApplyEffect(debuff) {
		c.Log(narration.StyleWarning, "A sickness spreads through the village. You suffer from %s.", debuff.Name)
	}
}
