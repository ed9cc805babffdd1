package item

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// CoinsPerBonusPoint prices generated equipment.
const CoinsPerBonusPoint = 10

type tier struct {
	below  int
	prefix string
	weapon string
}

var tiers = []tier{
	{5, "rotten", "stick"},
	{15, "worn", "club"},
	{30, "sturdy", "blade"},
	{60, "fine", "sword"},
	{math.MaxInt, "masterwork", "greatsword"},
}

var armorNouns = map[Slot]string{
	SlotChest:  "chestplate",
	SlotBoots:  "boots",
	SlotGloves: "gloves",
}

var armorSlots = []Slot{SlotChest, SlotGloves, SlotBoots}

// Generator produces loot from a seedable source.
type Generator struct {
	rng   random.Source
	title cases.Caser
}

// NewGenerator creates a loot generator drawing from rng.
func NewGenerator(rng random.Source) *Generator {
	return &Generator{rng: rng, title: cases.Title(language.English)}
}

// Generate returns equipment, a special item or a consumable with equal odds.
func (g *Generator) Generate(depth, level int, quality float64) Item {
	switch g.rng.Intn(3) {
	case 0:
		return g.GenerateEquipment(depth, level, quality)
	case 1:
		it, _ := FromTemplate(RopeName)
		return it
	default:
		it, _ := FromTemplate(HealthRestoreName)
		return it
	}
}

// GenerateEquipment returns a weapon or an armor piece.
func (g *Generator) GenerateEquipment(depth, level int, quality float64) Item {
	if g.rng.Intn(2) == 0 {
		return g.generateWeapon(depth, level, quality)
	}
	return g.generateArmor(depth, level, quality)
}

func (g *Generator) generateWeapon(depth, level int, quality float64) Item {
	attack := g.rollBonus(1+float64(depth)+float64(level)*0.5, quality)
	tier := tierFor(attack)
	return Item{
		ID:          uuid.NewString(),
		Name:        g.title.String(tier.prefix + " " + tier.weapon),
		Kind:        KindEquipment,
		Slot:        SlotWeapon,
		Description: fmt.Sprintf("Provides %d extra attack.", attack),
		Cost:        attack * CoinsPerBonusPoint,
		Bonus:       Bonus{Attack: attack},
	}
}

func (g *Generator) generateArmor(depth, level int, quality float64) Item {
	armor := g.rollBonus(2+float64(depth)*1.5+float64(level)*0.5, quality)
	slot := armorSlots[g.rng.Intn(len(armorSlots))]
	tier := tierFor(armor)
	return Item{
		ID:          uuid.NewString(),
		Name:        g.title.String(tier.prefix + " " + armorNouns[slot]),
		Kind:        KindEquipment,
		Slot:        slot,
		Description: fmt.Sprintf("Provides %d extra armor points.", armor),
		Cost:        armor * CoinsPerBonusPoint,
		Bonus:       Bonus{Armor: armor},
	}
}

// rollBonus scales base by quality and a [0.5, 1.5) spread, never below 1.
func (g *Generator) rollBonus(base, quality float64) int {
	if quality <= 0 {
		quality = 1
	}
	v := int(math.Floor(base * quality * random.Between(g.rng, 0.5, 1.5)))
	if v < 1 {
		return 1
	}
	return v
}

func tierFor(bonus int) tier {
	for _, t := range tiers {
		if bonus < t.below {
			return t
		}
	}
	return tiers[len(tiers)-1]
}
