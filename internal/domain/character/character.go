// Package character defines the player's stat and resource aggregate.
// This package is PURE and must NOT import any infrastructure packages.
package character

import (
	"fmt"
	"math"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/combatant"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/domain/rules"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// Starting values for a fresh character.
const (
	DefaultName       = "Soldier"
	StartingAttribute = 10
	StartingLifeRegen = 1
	StartingRegenRate = 20.0 // seconds per regeneration tick
	StartingStorage   = 100
	FirstBossDepth    = 5

	PointsPerLevel = 5
	LevelingFlagMs = 3000.0
)

// Timers holds the independent elapsed-time accumulators, in milliseconds.
type Timers struct {
	Regen         float64
	Treasure      float64
	Hazard        float64
	Attack        float64
	Poison        float64
	Leveling      float64
	SpecialEvent  float64
	VillageHazard float64
	Generation    map[building.Kind]float64
}

// VillageHazard is the state of the village-wide hazard subsystem.
type VillageHazard struct {
	Active    bool    `json:"active"`
	Remaining float64 `json:"remaining"` // ms left while active
}

// OngoingResearch is the single research in progress.
type OngoingResearch struct {
	Name   string
	EndsAt time.Time
}

// Options carries the ports and flags a character is constructed with.
type Options struct {
	Narrator narration.Narrator
	Notifier narration.Notifier
	Debug    bool
}

// Character is the player's aggregate, mutated in place every tick.
type Character struct {
	Name string

	Level             int
	Experience        int
	UnallocatedPoints int
	Strength          int
	Dexterity         int
	Vitality          int
	Intelligence      int
	CurrentHealth     int
	LifeRegen         int
	RegenRate         float64 // seconds
	ExpBoost          float64

	Resources resource.Amounts
	MaxWood   int
	MaxStone  int
	Buildings building.Owned

	Depth            int
	LastDepthVisited int
	RecordDepth      int
	NextBossDepth    int
	LastSpecialDepth int
	Exploring        bool
	TimeSurvived     float64 // ms at the current depth

	Inventory []item.Item
	Equipment map[item.Slot]*item.Item

	Buffs   []Effect
	Debuffs []Effect

	Research          *OngoingResearch
	CompletedResearch []string

	DepthConfigs  map[int]depth.Config
	ClearedEvents map[int]bool
	Monsters      []*combatant.Combatant

	Timers  Timers
	Village VillageHazard

	Deaths     int
	LevelingUp bool

	log    narration.Narrator
	notify narration.Notifier
	debug  bool
}

// New creates a fresh character.
func New(name string, opts Options) *Character {
	if name == "" {
		name = DefaultName
	}
	c := &Character{
		Name:          name,
		Level:         1,
		Strength:      StartingAttribute,
		Dexterity:     StartingAttribute,
		Vitality:      StartingAttribute,
		Intelligence:  StartingAttribute,
		LifeRegen:     StartingLifeRegen,
		RegenRate:     StartingRegenRate,
		ExpBoost:      1,
		Resources:     resource.Amounts{resource.Coins: 0},
		MaxWood:       StartingStorage,
		MaxStone:      StartingStorage,
		Buildings:     building.Owned{},
		NextBossDepth: FirstBossDepth,
		Equipment:     make(map[item.Slot]*item.Item, len(item.Slots)),
		DepthConfigs:  make(map[int]depth.Config),
		ClearedEvents: make(map[int]bool),
		Timers:        Timers{Generation: make(map[building.Kind]float64)},
	}
	c.CurrentHealth = c.MaxHealth()
	c.attach(opts)
	return c
}

func (c *Character) attach(opts Options) {
	c.log = opts.Narrator
	if c.log == nil {
		c.log = narration.Discard{}
	}
	c.notify = opts.Notifier
	if c.notify == nil {
		c.notify = narration.Discard{}
	}
	c.debug = opts.Debug
}

// Log narrates a line through the character's narrator.
func (c *Character) Log(style narration.Style, format string, args ...any) {
	c.log.AppendLogLine(fmt.Sprintf(format, args...), style)
}

// Debugf narrates only when the debug flag is set.
func (c *Character) Debugf(format string, args ...any) {
	if c.debug {
		c.log.AppendLogLine(fmt.Sprintf(format, args...), narration.StyleDebug)
	}
}

// Narrator returns the port the character narrates through.
func (c *Character) Narrator() narration.Narrator {
	return c.log
}

// Notify raises a modal through the notification port.
func (c *Character) Notify(title, message string) {
	c.notify.ShowModal(title, message)
}

// Derived values

func (c *Character) MaxHealth() int {
	return rules.MaxHealth(c.Vitality)
}

// Armor is base armor from strength plus every equipped armor bonus.
func (c *Character) Armor() int {
	armor := rules.BaseArmor(c.Strength)
	for _, it := range c.Equipment {
		if it != nil {
			armor += it.Bonus.Armor
		}
	}
	return armor
}

func (c *Character) DamageReduction() float64 {
	return rules.DamageReduction(c.Armor())
}

func (c *Character) AttackSpeed() float64 {
	return rules.AttackSpeedMs(c.Dexterity)
}

func (c *Character) WeaponAttack() int {
	if w := c.Equipment[item.SlotWeapon]; w != nil {
		return w.Bonus.Attack
	}
	return 0
}

// DamageRoll draws one player hit.
func (c *Character) DamageRoll(rng random.Source) int {
	return rules.DamageRoll(c.Strength, c.WeaponAttack(), 1+rng.Float64())
}

func (c *Character) XPBoost() float64       { return rules.Boost(c.Intelligence) }
func (c *Character) QualityBoost() float64  { return rules.Boost(c.Intelligence) }
func (c *Character) QuantityBoost() float64 { return rules.Boost(c.Dexterity) }

// XPNeeded is the experience required to leave the current level.
func (c *Character) XPNeeded() int {
	return rules.XPNeeded(c.Level)
}

// Alive reports whether the character has health left.
func (c *Character) Alive() bool {
	return c.CurrentHealth > 0
}

func (c *Character) setHealth(h int) {
	c.CurrentHealth = min(max(h, 0), c.MaxHealth())
}

// TakeDamage subtracts health, flooring at zero.
func (c *Character) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	c.setHealth(c.CurrentHealth - amount)
}

// Heal adds health, capped at max health. It returns the amount healed.
func (c *Character) Heal(amount int) int {
	before := c.CurrentHealth
	c.setHealth(c.CurrentHealth + amount)
	return c.CurrentHealth - before
}

// RegenerateHealth advances the regeneration accumulator and heals
// LifeRegen per whole interval elapsed, keeping the remainder.
func (c *Character) RegenerateHealth(elapsed float64) {
	c.Timers.Regen += elapsed
	interval := c.RegenRate * 1000
	if interval <= 0 || c.Timers.Regen < interval {
		return
	}
	rounds := math.Floor(c.Timers.Regen / interval)
	if c.CurrentHealth < c.MaxHealth() {
		healed := c.Heal(c.LifeRegen * int(rounds))
		c.Debugf("Regenerated %d health.", healed)
	}
	c.Timers.Regen -= rounds * interval
}

// GainExperience adds experience scaled by the research boost and levels
// up as many times as the new total allows. It returns the amount gained.
func (c *Character) GainExperience(base int) int {
	gained := int(math.Floor(float64(base) * c.ExpBoost))
	if gained <= 0 {
		return 0
	}
	c.Experience += gained
	for c.Experience >= c.XPNeeded() {
		c.LevelUp()
	}
	return gained
}

// LevelUp increments the level and grants unallocated points.
func (c *Character) LevelUp() {
	c.Level++
	c.UnallocatedPoints += PointsPerLevel
	c.LevelingUp = true
	c.Timers.Leveling = 0
	c.Log(narration.StyleAchievement, "Level up! You are now level %d and gained %d unallocated stat points.", c.Level, PointsPerLevel)
}

// AdvanceLeveling clears the leveling flag once it has been shown long enough.
func (c *Character) AdvanceLeveling(elapsed float64) {
	if !c.LevelingUp {
		return
	}
	c.Timers.Leveling += elapsed
	if c.Timers.Leveling >= LevelingFlagMs {
		c.LevelingUp = false
		c.Timers.Leveling = 0
	}
}

// UpgradeStat spends one unallocated point on a.
func (c *Character) UpgradeStat(a Attribute) bool {
	if !a.Upgradeable() {
		c.Log(narration.StyleWarning, "You cannot upgrade %s.", a)
		return false
	}
	if c.UnallocatedPoints <= 0 {
		c.Log(narration.StyleWarning, "No unallocated points available.")
		return false
	}
	c.adjustStat(a, 1)
	c.UnallocatedPoints--
	c.Log(narration.StylePlain, "Upgraded %s. Remaining points: %d", a, c.UnallocatedPoints)
	return true
}

// Die applies the death penalty. Moving back to the surface is the
// controller's job.
func (c *Character) Die() {
	c.Log(narration.StyleDeath, "You have died and lost all resources gathered during the journey. Now you need to rest.")
	for k := range c.Resources {
		c.Resources[k] = 0
	}
	c.CurrentHealth = 0
	c.Deaths++
	c.Timers.Treasure = 0
	c.TimeSurvived = 0
	c.Experience = rules.XPNeeded(c.Level - 1)
	if c.Deaths == 1 {
		c.Notify("You died", "Or not really. You will slowly regenerate, but all resources are lost. Giving up might be a good choice.")
	}
}

// Config returns the cached configuration for depth d.
func (c *Character) Config(d int) (depth.Config, bool) {
	cfg, ok := c.DepthConfigs[d]
	if !ok {
		return depth.Config{}, false
	}
	return cfg.Clone(), true
}

// CacheConfig stores a freshly generated configuration. An existing entry
// is never replaced.
func (c *Character) CacheConfig(cfg depth.Config) {
	if _, ok := c.DepthConfigs[cfg.Depth]; ok {
		return
	}
	c.DepthConfigs[cfg.Depth] = cfg.Clone()
	if cfg.SpecialEvent {
		c.LastSpecialDepth = cfg.Depth
	}
}

// SpecialEventPending reports whether the current depth's special event has
// not yet been survived.
func (c *Character) SpecialEventPending() bool {
	cfg, ok := c.DepthConfigs[c.Depth]
	return ok && cfg.SpecialEvent && !c.ClearedEvents[c.Depth]
}

// ClearMonsters removes every active combatant.
func (c *Character) ClearMonsters() {
	c.Monsters = nil
}

// Boss returns the living boss at the current depth, if any.
func (c *Character) Boss() *combatant.Combatant {
	for _, m := range c.Monsters {
		if m.IsBoss() && m.Alive() {
			return m
		}
	}
	return nil
}
