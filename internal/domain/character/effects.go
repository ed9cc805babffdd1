package character

import (
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
)

// Effect is a timed buff or debuff.
type Effect struct {
	Name      string    `json:"name"`
	Target    Attribute `json:"target"`
	Magnitude int       `json:"magnitude"`
	Remaining float64   `json:"remaining"` // ms

	// TickInterval > 0 marks an over-time effect: Magnitude is applied to the
	// target every TickInterval ms instead of once.
	TickInterval float64 `json:"tick_interval,omitempty"`
	TickTimer    float64 `json:"tick_timer,omitempty"`

	// Applied is the static delta actually applied, reversed on expiry.
	Applied int  `json:"applied,omitempty"`
	Debuff  bool `json:"debuff"`
}

// OverTime reports whether the effect ticks on its own sub-interval.
func (e Effect) OverTime() bool {
	return e.TickInterval > 0
}

// HasEffect reports whether an effect of that name is active.
func (c *Character) HasEffect(name string) bool {
	for _, e := range c.Buffs {
		if e.Name == name {
			return true
		}
	}
	for _, e := range c.Debuffs {
		if e.Name == name {
			return true
		}
	}
	return false
}

// ApplyEffect adds e unless an effect with the same name is already active.
// Static effects change their target immediately.
func (c *Character) ApplyEffect(e Effect) bool {
	if c.HasEffect(e.Name) {
		return false
	}
	if !e.OverTime() {
		e.Applied = c.adjustStat(e.Target, e.Magnitude)
		if e.Target == Health {
			// A one-off health change has nothing to reverse.
			e.Applied = 0
		}
	}
	if e.Debuff {
		c.Debuffs = append(c.Debuffs, e)
		c.Log(narration.StyleWarning, "You are afflicted by %s.", e.Name)
	} else {
		c.Buffs = append(c.Buffs, e)
		c.Log(narration.StyleAchievement, "You are blessed by %s.", e.Name)
	}
	return true
}

// ProcessEffects advances every effect by elapsed ms, ticking over-time
// effects and expiring the ones whose duration ran out.
func (c *Character) ProcessEffects(elapsed float64) {
	c.Buffs = c.processList(c.Buffs, elapsed)
	c.Debuffs = c.processList(c.Debuffs, elapsed)
}

func (c *Character) processList(list []Effect, elapsed float64) []Effect {
	kept := list[:0]
	for _, e := range list {
		if e.OverTime() {
			// Ticks never outlast the effect itself.
			e.TickTimer += math.Min(elapsed, math.Max(e.Remaining, 0))
			ticks := math.Floor(e.TickTimer / e.TickInterval)
			if ticks > 0 {
				c.adjustStat(e.Target, e.Magnitude*int(ticks))
				e.TickTimer -= ticks * e.TickInterval
			}
		}
		e.Remaining -= elapsed
		if e.Remaining <= 0 {
			if e.Applied != 0 {
				c.adjustStat(e.Target, -e.Applied)
			}
			c.Log(narration.StylePlain, "%s has worn off.", e.Name)
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// VillageDebuffs are the timed afflictions a village hazard can cause.
var VillageDebuffs = []Effect{
	{Name: "Weakness", Target: Strength, Magnitude: -3, Remaining: 60000, Debuff: true},
	{Name: "Sluggishness", Target: Dexterity, Magnitude: -3, Remaining: 60000, Debuff: true},
	{Name: "Fatigue", Target: Vitality, Magnitude: -2, Remaining: 60000, Debuff: true},
	{Name: "Sickness", Target: Health, Magnitude: -1, Remaining: 30000, TickInterval: 2000, Debuff: true},
}
