// Package research holds the research catalogue. Effects are a closed set
// so an ongoing research restored by name regains its behavior.
package research

import (
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

// Effect is what completing a research does to the character.
type Effect int

const (
	EffectFasterRegen Effect = iota + 1
	EffectExperienceBoost
)

// Definition describes one research option.
type Definition struct {
	Name            string
	Description     string
	Duration        time.Duration
	Cost            resource.Amounts
	Effect          Effect
	Value           float64
	MinIntelligence int
	Requires        building.Kind
}

// Available reports whether the research can be started.
func (d Definition) Available(owned building.Owned, intelligence int) bool {
	return owned.Has(d.Requires) && intelligence >= d.MinIntelligence
}

var Catalogue = []Definition{
	{
		Name:            "Increased Life Regen",
		Description:     "Increase life regeneration rate from 1 every 20 seconds to 1 every 10 seconds.",
		Duration:        30 * time.Minute,
		Cost:            resource.Amounts{resource.Coins: 200, resource.Iron: 20},
		Effect:          EffectFasterRegen,
		Value:           10,
		MinIntelligence: 15,
		Requires:        building.Library,
	},
	{
		Name:        "Increased Experience Boost",
		Description: "Increase experience gained by 15%.",
		Duration:    time.Hour,
		Cost:        resource.Amounts{resource.Coins: 500, resource.Gold: 20},
		Effect:      EffectExperienceBoost,
		Value:       1.15,
		Requires:    building.Library,
	},
}

// Lookup finds a research by name.
func Lookup(name string) (Definition, bool) {
	for _, d := range Catalogue {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
