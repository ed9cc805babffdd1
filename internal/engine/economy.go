package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/research"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

// BuyBuilding purchases one building of kind k.
func (e *Engine) BuyBuilding(k building.Kind) bool {
	c := e.char
	def, ok := building.Lookup(k)
	if !ok {
		c.Log(narration.StyleWarning, "There is no such building.")
		return false
	}
	if !def.Unlocked(c.Buildings, c.Intelligence) {
		c.Log(narration.StyleWarning, "%s is not unlocked yet.", def.Name)
		return false
	}
	if !c.CanAfford(def.Cost) {
		c.Log(narration.StyleWarning, "Not enough resources to build %s.", def.Name)
		return false
	}
	c.Pay(def.Cost)
	c.AddBuilding(def)
	c.Log(narration.StyleAchievement, "You built a %s.", def.Name)
	e.logger.Event("BUILDING_PURCHASED", c.Name, def.Name)
	e.Save()
	return true
}

// StartResearch begins the named research if it is available and affordable.
func (e *Engine) StartResearch(name string) bool {
	c := e.char
	def, ok := research.Lookup(name)
	if !ok {
		c.Log(narration.StyleWarning, "Unknown research %q.", name)
		return false
	}
	if c.ResearchCompleted(def.Name) {
		c.Log(narration.StyleWarning, "%q has already been researched.", def.Name)
		return false
	}
	if !def.Available(c.Buildings, c.Intelligence) {
		c.Log(narration.StyleWarning, "%q is not available yet.", def.Name)
		return false
	}
	if !c.CanAfford(def.Cost) {
		c.Log(narration.StyleWarning, "Not enough resources to research %q.", def.Name)
		return false
	}
	if !c.StartResearch(def, def.Duration, e.clock.Now()) {
		return false
	}
	e.logger.Event("RESEARCH_STARTED", c.Name, def.Name)
	e.Save()
	return true
}

// ConvertResource sells amount units of k to the shop for coins.
func (e *Engine) ConvertResource(k resource.Kind, amount int) bool {
	c := e.char
	rate, ok := k.ConversionRate()
	if !ok {
		c.Log(narration.StyleWarning, "The shop does not buy %s.", k)
		return false
	}
	if amount <= 0 || c.Resource(k) < amount {
		c.Log(narration.StyleWarning, "You don't have %d %s to sell.", amount, k)
		return false
	}
	c.ModifyResource(k, -amount)
	coins := amount * rate
	c.ModifyResource(resource.Coins, coins)
	c.Log(narration.StyleItem, "Sold %s %s for %s coins.",
		humanize.Comma(int64(amount)), k, humanize.Comma(int64(coins)))
	return true
}

// EquipItem moves an inventory item into slot.
func (e *Engine) EquipItem(slot item.Slot, id string) bool {
	return e.char.EquipItem(slot, id)
}

// UnequipItem moves the item in slot back to the inventory.
func (e *Engine) UnequipItem(slot item.Slot) bool {
	if !e.char.UnequipItem(slot) {
		e.char.Log(narration.StyleWarning, "Nothing is equipped in the %s slot.", slot)
		return false
	}
	return true
}

// UseItem consumes a consumable from the inventory.
func (e *Engine) UseItem(id string) bool {
	return e.char.UseItem(id)
}

// UpgradeStat spends one unallocated point on a.
func (e *Engine) UpgradeStat(a character.Attribute) bool {
	if !e.char.UpgradeStat(a) {
		return false
	}
	e.logger.Event("STAT_UPGRADED", e.char.Name, fmt.Sprintf("%s=%d", a, e.char.Stat(a)))
	return true
}
