// Package building holds the village building catalogue.
package building

import (
	"encoding/json"
	"fmt"

	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

// Kind identifies a building.
type Kind int

const (
	LumberMill Kind = iota + 1
	StoneQuarry
	WoodWarehouse
	StoneWarehouse
	Library
	AlchemyCenter
	Blacksmith
	GuardTower
)

// Category describes what owning a building does.
type Category int

const (
	CategoryGenerator Category = iota + 1
	CategoryStorage
	CategoryFeature
	CategoryDefense
)

// Owned is the per-kind count of buildings a character holds.
type Owned map[Kind]int

// Has reports whether at least one building of kind k is owned.
func (o Owned) Has(k Kind) bool { return o[k] > 0 }

// Total is the number of buildings owned across all kinds.
func (o Owned) Total() int {
	n := 0
	for _, c := range o {
		n += c
	}
	return n
}

// Definition is one catalogue entry.
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Category    Category
	Cost        resource.Amounts

	// Generators: Produces one unit of Produces per building every Interval ms.
	Produces resource.Kind
	Interval float64

	// Storage: raises the cap of Stores by Capacity.
	Stores   resource.Kind
	Capacity int

	Requires        []Kind
	MinIntelligence int
}

// Unlocked reports whether the building can be bought given what the
// character owns and its intelligence.
func (d Definition) Unlocked(owned Owned, intelligence int) bool {
	for _, r := range d.Requires {
		if !owned.Has(r) {
			return false
		}
	}
	return intelligence >= d.MinIntelligence
}

// Catalogue lists every building in shop order.
var Catalogue = []Definition{
	{
		Kind: LumberMill, Name: "Lumber Mill", Category: CategoryGenerator,
		Description: "Generates 1 wood every 10 seconds.",
		Cost:        resource.Amounts{resource.Coins: 150},
		Produces:    resource.Wood, Interval: 10000,
	},
	{
		Kind: StoneQuarry, Name: "Stone Quarry", Category: CategoryGenerator,
		Description: "Generates 1 stone every 15 seconds.",
		Cost:        resource.Amounts{resource.Wood: 100, resource.Coins: 300},
		Produces:    resource.Stone, Interval: 15000,
		Requires:    []Kind{LumberMill},
	},
	{
		Kind: WoodWarehouse, Name: "Wood Warehouse", Category: CategoryStorage,
		Description: "Increases the maximum storage of wood by 200.",
		Cost:        resource.Amounts{resource.Wood: 100, resource.Stone: 50, resource.Coins: 300},
		Stores:      resource.Wood, Capacity: 200,
		Requires:    []Kind{LumberMill},
	},
	{
		Kind: StoneWarehouse, Name: "Stone Warehouse", Category: CategoryStorage,
		Description: "Increases the maximum storage of stone by 200.",
		Cost:        resource.Amounts{resource.Wood: 100, resource.Stone: 50, resource.Coins: 300},
		Stores:      resource.Stone, Capacity: 200,
		Requires:    []Kind{StoneQuarry},
	},
	{
		Kind: Library, Name: "Library", Category: CategoryFeature,
		Description: "Unlocks the ability to research.",
		Cost:        resource.Amounts{resource.Wood: 300, resource.Iron: 50, resource.Coins: 300},
		Requires:    []Kind{StoneQuarry}, MinIntelligence: 20,
	},
	{
		Kind: AlchemyCenter, Name: "Alchemy Center", Category: CategoryFeature,
		Description: "Unlocks more consumables.",
		Cost:        resource.Amounts{resource.Wood: 300, resource.Iron: 50, resource.Coins: 300},
		Requires:    []Kind{Library}, MinIntelligence: 20,
	},
	{
		Kind: Blacksmith, Name: "Blacksmith", Category: CategoryFeature,
		Description: "Unlocks better equipment.",
		Cost:        resource.Amounts{resource.Wood: 500, resource.Iron: 50, resource.Coins: 300},
		Requires:    []Kind{Library}, MinIntelligence: 20,
	},
	{
		Kind: GuardTower, Name: "Guard Tower", Category: CategoryDefense,
		Description: "Protects the village from hazards.",
		Cost:        resource.Amounts{resource.Wood: 200, resource.Stone: 100, resource.Coins: 200},
		Requires:    []Kind{StoneQuarry},
	},
}

var byKind = func() map[Kind]Definition {
	m := make(map[Kind]Definition, len(Catalogue))
	for _, d := range Catalogue {
		m[d.Kind] = d
	}
	return m
}()

// Lookup returns the catalogue entry for k.
func Lookup(k Kind) (Definition, bool) {
	d, ok := byKind[k]
	return d, ok
}

// Parse resolves a building by its display name.
func Parse(name string) (Kind, error) {
	for _, d := range Catalogue {
		if d.Name == name {
			return d.Kind, nil
		}
	}
	return 0, fmt.Errorf("unknown building %q", name)
}

func (k Kind) String() string {
	if d, ok := byKind[k]; ok {
		return d.Name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Generators returns the generator definitions.
func Generators() []Definition {
	var out []Definition
	for _, d := range Catalogue {
		if d.Category == CategoryGenerator {
			out = append(out, d)
		}
	}
	return out
}

// MarshalJSON writes counts keyed by building name.
func (o Owned) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(o))
	for k, n := range o {
		if d, ok := byKind[k]; ok && n > 0 {
			m[d.Name] = n
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON drops unknown buildings and non-positive counts.
func (o *Owned) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(Owned, len(m))
	for name, n := range m {
		k, err := Parse(name)
		if err != nil || n <= 0 {
			continue
		}
		out[k] = n
	}
	*o = out
	return nil
}
