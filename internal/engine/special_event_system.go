package engine

import (
	"fmt"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// SpecialEventSystem runs the countdown-to-damage event some depths carry.
// While a depth's event is pending it replaces the normal tick.
type SpecialEventSystem struct {
	cfg    Config
	rng    random.Source
	loot   LootGenerator
	logger *logger.Logger

	running bool
}

// NewSpecialEventSystem creates the special event manager.
func NewSpecialEventSystem(cfg Config, rng random.Source, loot LootGenerator, log *logger.Logger) *SpecialEventSystem {
	return &SpecialEventSystem{cfg: cfg, rng: rng, loot: loot, logger: log}
}

// Running reports whether a countdown is in flight.
func (ss *SpecialEventSystem) Running() bool {
	return ss.running
}

// Cancel stops an in-flight countdown.
func (ss *SpecialEventSystem) Cancel(c *character.Character) {
	ss.running = false
	c.Timers.SpecialEvent = 0
}

// OnTick starts or advances the countdown. The tick that starts it already
// counts toward it. It reports whether the character died when it elapsed.
func (ss *SpecialEventSystem) OnTick(c *character.Character, elapsed float64) bool {
	if !ss.running {
		ss.running = true
		c.Timers.SpecialEvent = 0
		c.Log(narration.StyleWarning, "The walls begin to shake. Something is coming. Leave now or brace yourself!")
	}

	c.Timers.SpecialEvent += elapsed
	if c.Timers.SpecialEvent < ss.cfg.SpecialEventCountdown {
		return false
	}
	ss.Cancel(c)

	dmg := ss.cfg.SpecialEventBaseDamage + ss.cfg.SpecialEventDamagePerDepth*c.Depth
	c.TakeDamage(dmg)
	c.Log(narration.StyleWarning, "The cave collapses around you for %d damage!", dmg)
	if !c.Alive() {
		return true
	}

	reward := ss.loot.GenerateEquipment(c.Depth, c.Level, ss.cfg.SpecialEventQuality)
	c.AddItemToInventory(reward)
	attr := character.Attributes[ss.rng.Intn(len(character.Attributes))]
	c.RaiseAttribute(attr, ss.cfg.SpecialEventStatBonus)
	c.ClearedEvents[c.Depth] = true

	c.Notify("You survived", fmt.Sprintf("You found %s in the rubble and feel your %s grow by %d.", reward.Name, attr, ss.cfg.SpecialEventStatBonus))
	ss.logger.Event("SPECIAL_EVENT_SURVIVED", c.Name, fmt.Sprintf("depth %d", c.Depth))
	return false
}
