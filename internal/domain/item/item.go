// Package item defines the core domain entities for in-game items and loot.
// This package is PURE and must NOT import any infrastructure packages.
package item

import "github.com/google/uuid"

// Kind represents the broad category of an item.
type Kind string

const (
	KindEquipment  Kind = "equipable"
	KindSpecial    Kind = "special"
	KindConsumable Kind = "consumable"
)

// Slot is an equipment slot on the character.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotChest  Slot = "chest"
	SlotBoots  Slot = "boots"
	SlotGloves Slot = "gloves"
)

// Slots lists the four fixed equipment slots.
var Slots = []Slot{SlotWeapon, SlotChest, SlotBoots, SlotGloves}

// Valid reports whether s is one of the fixed slots.
func (s Slot) Valid() bool {
	switch s {
	case SlotWeapon, SlotChest, SlotBoots, SlotGloves:
		return true
	}
	return false
}

// Effect is what a consumable does when used.
type Effect string

const (
	EffectNone Effect = ""
	EffectHeal Effect = "heal"
)

// Bonus holds the numeric stats equipment grants.
type Bonus struct {
	Attack int `json:"attack,omitempty"`
	Armor  int `json:"armor,omitempty"`
}

// Item is a single inventory entry. Stackable items carry a Quantity.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        Kind   `json:"type"`
	Slot        Slot   `json:"slot,omitempty"`
	Stacks      bool   `json:"stacks"`
	Quantity    int    `json:"quantity,omitempty"`
	Description string `json:"description"`
	Cost        int    `json:"cost"` // coins
	Bonus       Bonus  `json:"bonus"`
	Effect      Effect `json:"effect,omitempty"`
	Magnitude   int    `json:"magnitude,omitempty"`
}

// Well-known item names.
const (
	RopeName          = "Rope"
	HealthRestoreName = "Health restore"

	// HealAmount is how much a Health restore heals.
	HealAmount = 100
)

// Template is the static definition of a non-generated item.
type Template struct {
	Name        string
	Kind        Kind
	Stacks      bool
	Description string
	Cost        int
	Effect      Effect
	Magnitude   int
}

// Registry contains the fixed special and consumable items.
var Registry = map[string]Template{
	RopeName: {
		Name:        RopeName,
		Kind:        KindSpecial,
		Stacks:      true,
		Description: "Used to climb up one depth.",
		Cost:        10,
	},
	HealthRestoreName: {
		Name:        HealthRestoreName,
		Kind:        KindConsumable,
		Description: "Restores 100 health points.",
		Cost:        10,
		Effect:      EffectHeal,
		Magnitude:   HealAmount,
	},
}

// FromTemplate builds a fresh item instance of a registered template.
func FromTemplate(name string) (Item, bool) {
	tpl, ok := Registry[name]
	if !ok {
		return Item{}, false
	}
	it := Item{
		ID:          uuid.NewString(),
		Name:        tpl.Name,
		Kind:        tpl.Kind,
		Stacks:      tpl.Stacks,
		Description: tpl.Description,
		Cost:        tpl.Cost,
		Effect:      tpl.Effect,
		Magnitude:   tpl.Magnitude,
	}
	if it.Stacks {
		it.Quantity = 1
	}
	return it, true
}

// IsEquipment reports whether the item can go into an equipment slot.
func (i Item) IsEquipment() bool {
	return i.Kind == KindEquipment && i.Slot.Valid()
}
