package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// TreasureSystem grants resources and items on the treasure interval.
type TreasureSystem struct {
	cfg  Config
	rng  random.Source
	loot LootGenerator
}

// NewTreasureSystem creates the treasure manager.
func NewTreasureSystem(cfg Config, rng random.Source, loot LootGenerator) *TreasureSystem {
	return &TreasureSystem{cfg: cfg, rng: rng, loot: loot}
}

// OnTick advances the treasure accumulator and pays out every whole
// interval elapsed in one batch.
func (ts *TreasureSystem) OnTick(c *character.Character, cfg depth.Config, elapsed float64) {
	c.Timers.Treasure += elapsed
	if c.Timers.Treasure < ts.cfg.TreasureInterval {
		return
	}
	rounds := math.Floor(c.Timers.Treasure / ts.cfg.TreasureInterval)
	c.Timers.Treasure -= rounds * ts.cfg.TreasureInterval

	ts.grantResources(c, cfg, rounds)
	ts.rollItem(c)
}

func (ts *TreasureSystem) grantResources(c *character.Character, cfg depth.Config, rounds float64) {
	var found []string
	for _, entry := range cfg.Resources {
		if !random.Chance(ts.rng, entry.Probability) {
			continue
		}
		qty := int(math.Floor(float64(1+ts.rng.Intn(4)) * float64(c.Depth) * rounds * c.QuantityBoost()))
		if got := c.ModifyResource(entry.Kind, qty); got > 0 {
			found = append(found, fmt.Sprintf("%s %s", humanize.Comma(int64(got)), entry.Kind))
		}
	}
	if len(found) > 0 {
		c.Log(narration.StyleItem, "You found %s.", strings.Join(found, " and "))
	}
}

// ItemFindChance is the per-payout chance of finding an item.
func (ts *TreasureSystem) ItemFindChance(c *character.Character) float64 {
	p := ts.cfg.ItemFindChance * c.QuantityBoost() * (1 + 0.02*float64(c.Depth))
	return math.Min(p, ts.cfg.MaxItemFindChance)
}

func (ts *TreasureSystem) rollItem(c *character.Character) {
	if !random.Chance(ts.rng, ts.ItemFindChance(c)) {
		return
	}
	it := ts.loot.Generate(c.Depth, c.Level, c.QualityBoost())
	c.Log(narration.StyleItem, "You found a %s!", it.Name)
	if it.Kind == item.KindConsumable {
		c.Consume(it)
		return
	}
	c.AddItemToInventory(it)
}
