package engine

import (
	"fmt"
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/combatant"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// CombatSystem spawns creatures and resolves exchanges between them and the
// character.
type CombatSystem struct {
	cfg    Config
	rng    random.Source
	loot   LootGenerator
	logger *logger.Logger
}

// NewCombatSystem creates the combat resolver.
func NewCombatSystem(cfg Config, rng random.Source, loot LootGenerator, log *logger.Logger) *CombatSystem {
	return &CombatSystem{cfg: cfg, rng: rng, loot: loot, logger: log}
}

// OnTick runs spawning and one batch of exchanges. It reports whether the
// character died.
func (cs *CombatSystem) OnTick(c *character.Character, cfg depth.Config, elapsed float64) bool {
	cs.rollSpawn(c, cfg, elapsed)

	speed := c.AttackSpeed()
	c.Timers.Attack += elapsed
	if len(c.Monsters) == 0 {
		// No stored burst while there is nothing to hit.
		c.Timers.Attack = math.Min(c.Timers.Attack, speed)
		return false
	}
	rounds := int(math.Floor(c.Timers.Attack / speed))

	died := false
	for _, m := range c.Monsters {
		hits := m.AdvanceTimer(elapsed)
		if cs.exchange(c, m, rounds, hits) {
			died = true
			break
		}
	}
	c.Timers.Attack -= float64(rounds) * speed

	alive := c.Monsters[:0]
	for _, m := range c.Monsters {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	c.Monsters = alive
	return died
}

func (cs *CombatSystem) rollSpawn(c *character.Character, cfg depth.Config, elapsed float64) {
	if !cfg.SpawnEnabled || len(c.Monsters) >= cs.cfg.MaxMonsters {
		return
	}
	p := math.Min(cfg.SpawnProbability*elapsed/1000, 1)
	if !random.Chance(cs.rng, p) {
		return
	}
	m := combatant.Spawn(cs.rng, c.Depth, cfg.MonsterTypes, cfg.MonsterStrength)
	c.Monsters = append(c.Monsters, m)
	c.Log(narration.StyleCombat, "A wild %s has appeared with %d HP!", m.Name, m.Health)
}

// exchange resolves one creature's batch against the character. A coin flip
// decides whose hits land first; a side that dies does not strike back.
func (cs *CombatSystem) exchange(c *character.Character, m *combatant.Combatant, rounds, hits int) bool {
	if random.Chance(cs.rng, 0.5) {
		cs.playerStrikes(c, m, rounds)
		if !m.Alive() {
			cs.reward(c, m)
			return false
		}
		return cs.creatureStrikes(c, m, hits)
	}

	if cs.creatureStrikes(c, m, hits) {
		return true
	}
	cs.playerStrikes(c, m, rounds)
	if !m.Alive() {
		cs.reward(c, m)
	}
	return false
}

func (cs *CombatSystem) playerStrikes(c *character.Character, m *combatant.Combatant, rounds int) {
	if rounds <= 0 || !m.Alive() {
		return
	}
	total := 0
	for range rounds {
		total += c.DamageRoll(cs.rng)
	}
	m.TakeHit(total)
	if rounds == 1 {
		c.Log(narration.StyleCombat, "You dealt %d damage to the %s.", total, m.Name)
	} else {
		c.Log(narration.StyleCombat, "You dealt %dx attacks for %d damage to the %s.", rounds, total, m.Name)
	}
}

func (cs *CombatSystem) creatureStrikes(c *character.Character, m *combatant.Combatant, hits int) bool {
	for range hits {
		m.Attack(c, c.Narrator())
		if !c.Alive() {
			return true
		}
	}
	return false
}

func (cs *CombatSystem) reward(c *character.Character, m *combatant.Combatant) {
	base := int(math.Floor(c.XPBoost()*float64(c.Depth)*float64(cs.rng.Intn(6)) + 5))
	coins := 1 + c.Depth/10
	if m.IsBoss() {
		base *= cs.cfg.BossXPFactor
		coins *= cs.cfg.BossXPFactor
	}
	xp := c.GainExperience(base)
	c.ModifyResource(resource.Coins, coins)
	c.Log(narration.StyleAchievement, "You defeated the %s and gained %d experience and %d coins.", m.Name, xp, coins)

	if !m.IsBoss() {
		return
	}
	loot := cs.loot.GenerateEquipment(c.Depth, c.Level, c.QualityBoost())
	c.AddItemToInventory(loot)
	defeated := c.Depth
	c.NextBossDepth = defeated + cs.cfg.BossDepthGap + cs.rng.Intn(cs.cfg.BossDepthSpread+1)
	c.Notify("Boss defeated", fmt.Sprintf("The %s has fallen and left behind %s. The way down is open.", m.Name, loot.Name))
	cs.logger.Event("BOSS_DEFEATED", c.Name, fmt.Sprintf("depth %d, next boss at %d", defeated, c.NextBossDepth))
}
