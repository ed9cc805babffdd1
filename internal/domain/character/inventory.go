package character

import (
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
)

func (c *Character) inventoryIndex(id string) int {
	for i, it := range c.Inventory {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (c *Character) inventoryIndexByName(name string) int {
	for i, it := range c.Inventory {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// AddItemToInventory merges stackable items into an existing stack of the
// same name, otherwise appends a new entry.
func (c *Character) AddItemToInventory(it item.Item) {
	if it.Stacks {
		qty := max(it.Quantity, 1)
		if i := c.inventoryIndexByName(it.Name); i >= 0 {
			c.Inventory[i].Quantity += qty
		} else {
			it.Quantity = qty
			c.Inventory = append(c.Inventory, it)
		}
	} else {
		c.Inventory = append(c.Inventory, it)
	}
	c.Log(narration.StyleItem, "You acquired %s.", it.Name)
}

// EquipItem moves the inventory item with the given ID into slot. Whatever
// the slot held goes back to the inventory first.
func (c *Character) EquipItem(slot item.Slot, id string) bool {
	i := c.inventoryIndex(id)
	if i < 0 {
		c.Log(narration.StyleWarning, "You do not carry that item.")
		return false
	}
	it := c.Inventory[i]
	if !it.IsEquipment() || it.Slot != slot {
		c.Log(narration.StyleWarning, "%s does not fit the %s slot.", it.Name, slot)
		return false
	}
	c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)

	if prev := c.Equipment[slot]; prev != nil {
		c.Equipment[slot] = nil
		c.Log(narration.StylePlain, "You unequipped %s.", prev.Name)
		c.AddItemToInventory(*prev)
	}
	c.Equipment[slot] = &it
	c.Log(narration.StyleItem, "You equipped %s.", it.Name)
	return true
}

// UnequipItem returns the item in slot to the inventory.
func (c *Character) UnequipItem(slot item.Slot) bool {
	prev := c.Equipment[slot]
	if prev == nil {
		return false
	}
	c.Equipment[slot] = nil
	c.AddItemToInventory(*prev)
	c.Log(narration.StylePlain, "You unequipped %s.", prev.Name)
	return true
}

// UseItem consumes one consumable from the inventory.
func (c *Character) UseItem(id string) bool {
	i := c.inventoryIndex(id)
	if i < 0 {
		c.Log(narration.StyleWarning, "You do not carry that item.")
		return false
	}
	it := c.Inventory[i]
	if it.Kind != item.KindConsumable {
		c.Log(narration.StyleWarning, "%s cannot be used.", it.Name)
		return false
	}
	c.takeOne(i)
	c.Consume(it)
	return true
}

// Consume applies a consumable's effect without touching the inventory.
func (c *Character) Consume(it item.Item) {
	switch it.Effect {
	case item.EffectHeal:
		healed := c.Heal(it.Magnitude)
		c.Log(narration.StyleItem, "You used %s and recovered %d health.", it.Name, healed)
	default:
		c.Log(narration.StyleItem, "You used %s.", it.Name)
	}
}

// ConsumeRope spends one rope charge, removing the stack when it runs out.
func (c *Character) ConsumeRope() bool {
	i := c.inventoryIndexByName(item.RopeName)
	if i < 0 {
		return false
	}
	c.takeOne(i)
	return true
}

func (c *Character) takeOne(i int) {
	if c.Inventory[i].Stacks && c.Inventory[i].Quantity > 1 {
		c.Inventory[i].Quantity--
		return
	}
	c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
}

// ItemCount returns how many of the named item the inventory holds.
func (c *Character) ItemCount(name string) int {
	n := 0
	for _, it := range c.Inventory {
		if it.Name != name {
			continue
		}
		if it.Stacks {
			n += it.Quantity
		} else {
			n++
		}
	}
	return n
}
