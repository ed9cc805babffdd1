package character

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/research"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

// Resource returns the balance of kind k.
func (c *Character) Resource(k resource.Kind) int {
	return c.Resources[k]
}

// ModifyResource adds delta to k, clamping at zero and at the storage cap
// for wood and stone. It returns the delta actually applied.
func (c *Character) ModifyResource(k resource.Kind, delta int) int {
	if !k.Valid() {
		return 0
	}
	if c.Resources == nil {
		c.Resources = resource.Amounts{}
	}
	before := c.Resources[k]
	next := max(before+delta, 0)
	if limit, ok := c.storageCap(k); ok && next > limit && delta > 0 {
		next = max(limit, before)
	}
	c.Resources[k] = next
	return next - before
}

func (c *Character) storageCap(k resource.Kind) (int, bool) {
	switch k {
	case resource.Wood:
		return c.MaxWood, true
	case resource.Stone:
		return c.MaxStone, true
	}
	return 0, false
}

// CanAfford reports whether the balance covers cost.
func (c *Character) CanAfford(cost resource.Amounts) bool {
	return c.Resources.Covers(cost)
}

// Pay deducts cost, clamping each balance at zero.
func (c *Character) Pay(cost resource.Amounts) {
	for k, v := range cost {
		c.ModifyResource(k, -v)
	}
}

// AddBuilding records a purchased building and applies its storage effect.
func (c *Character) AddBuilding(def building.Definition) {
	if c.Buildings == nil {
		c.Buildings = building.Owned{}
	}
	c.Buildings[def.Kind]++
	if def.Category == building.CategoryStorage {
		switch def.Stores {
		case resource.Wood:
			c.MaxWood += def.Capacity
		case resource.Stone:
			c.MaxStone += def.Capacity
		}
	}
}

// GenerateResources runs every owned generator building for elapsed ms.
func (c *Character) GenerateResources(elapsed float64) {
	if c.Timers.Generation == nil {
		c.Timers.Generation = make(map[building.Kind]float64)
	}
	for _, def := range building.Generators() {
		c.Timers.Generation[def.Kind] += elapsed
		timer := c.Timers.Generation[def.Kind]
		if timer < def.Interval {
			continue
		}
		rounds := math.Floor(timer / def.Interval)
		c.Timers.Generation[def.Kind] = timer - rounds*def.Interval
		if owned := c.Buildings[def.Kind]; owned > 0 {
			got := c.ModifyResource(def.Produces, owned*int(rounds))
			c.Debugf("Generated %d %s.", got, def.Produces)
		}
	}
}

// StartResearch deducts the research cost and records its end time.
// Callers check availability first.
func (c *Character) StartResearch(def research.Definition, duration time.Duration, now time.Time) bool {
	if c.Research != nil {
		c.Log(narration.StyleWarning, "Research %q is already in progress.", c.Research.Name)
		return false
	}
	c.Pay(def.Cost)
	end := now.Add(duration)
	c.Research = &OngoingResearch{Name: def.Name, EndsAt: end}
	c.Log(narration.StylePlain, "Research %q started. It completes in %s.", def.Name,
		strings.TrimSpace(humanize.RelTime(now, end, "", "")))
	return true
}

// ResearchProgress returns the time left on the ongoing research, or zero.
func (c *Character) ResearchProgress(now time.Time) time.Duration {
	if c.Research == nil {
		return 0
	}
	return max(c.Research.EndsAt.Sub(now), 0)
}

// CompleteResearch applies the ongoing research's effect and records it.
func (c *Character) CompleteResearch() bool {
	if c.Research == nil {
		return false
	}
	name := c.Research.Name
	c.Research = nil
	if def, ok := research.Lookup(name); ok {
		switch def.Effect {
		case research.EffectFasterRegen:
			c.RegenRate = def.Value
		case research.EffectExperienceBoost:
			c.ExpBoost = def.Value
		}
	}
	c.CompletedResearch = append(c.CompletedResearch, name)
	c.Log(narration.StyleAchievement, "Research %q completed!", name)
	return true
}

// ResearchCompleted reports whether name is in the completed list.
func (c *Character) ResearchCompleted(name string) bool {
	for _, n := range c.CompletedResearch {
		if n == name {
			return true
		}
	}
	return false
}
