package character

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/combatant"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

func TestSnapshotRoundTrip(t *testing.T) {
	c, _ := newTestCharacter()
	c.Level = 4
	c.Experience = 1000
	c.Strength = 14
	c.Dexterity = 12
	c.Vitality = 15
	c.Intelligence = 21
	c.CurrentHealth = 77
	c.Resources = resource.Amounts{resource.Iron: 30, resource.Coins: 120, resource.Diamonds: 2}
	c.Buildings = building.Owned{building.LumberMill: 2}
	c.MaxWood = 300
	c.Depth = 6
	c.Exploring = true
	c.NextBossDepth = 9

	rope, _ := item.FromTemplate(item.RopeName)
	rope.Quantity = 3
	c.AddItemToInventory(rope)
	club := item.Item{ID: "club", Name: "Worn Club", Kind: item.KindEquipment, Slot: item.SlotWeapon, Bonus: item.Bonus{Attack: 7}, Cost: 70}
	chest := item.Item{ID: "chest", Name: "Sturdy Chestplate", Kind: item.KindEquipment, Slot: item.SlotChest, Bonus: item.Bonus{Armor: 18}, Cost: 180}
	c.AddItemToInventory(club)
	c.AddItemToInventory(chest)
	c.EquipItem(item.SlotChest, "chest")

	c.DepthConfigs[6] = depth.Generate(6, depth.Params{NextBossDepth: 9}, random.New(5))
	c.Monsters = []*combatant.Combatant{{Kind: combatant.KindRat, Name: "Cave Rat", Health: 40, Damage: 9, AttackInterval: 5000}}
	c.Research = &OngoingResearch{Name: "Increased Life Regen", EndsAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	c.ApplyEffect(Effect{Name: "Weakness", Target: Strength, Magnitude: -3, Remaining: 5000, Debuff: true})

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, defaulted := Restore(raw, Options{})
	if len(defaulted) != 0 {
		t.Errorf("defaulted fields on a full snapshot: %v", defaulted)
	}

	if got.Strength != c.Strength || got.Dexterity != c.Dexterity || got.Vitality != c.Vitality || got.Intelligence != c.Intelligence {
		t.Errorf("attributes differ")
	}
	if got.CurrentHealth != 77 || got.Level != 4 || got.Depth != 6 || !got.Exploring {
		t.Errorf("progress differs: %+v", got.Snapshot())
	}
	if !reflect.DeepEqual(got.Resources, c.Resources) {
		t.Errorf("resources = %v, want %v", got.Resources, c.Resources)
	}
	if !reflect.DeepEqual(got.Inventory, c.Inventory) {
		t.Errorf("inventory = %+v, want %+v", got.Inventory, c.Inventory)
	}
	if !reflect.DeepEqual(got.Equipment, c.Equipment) {
		t.Errorf("equipment differs")
	}
	if !reflect.DeepEqual(got.DepthConfigs, c.DepthConfigs) {
		t.Errorf("depth configs differ")
	}
	if len(got.Monsters) != 1 || got.Monsters[0].Health != 40 {
		t.Errorf("monsters not rehydrated: %+v", got.Monsters)
	}
	if got.Research == nil || !got.Research.EndsAt.Equal(c.Research.EndsAt) {
		t.Errorf("research not restored")
	}
	if len(got.Debuffs) != 1 || got.Debuffs[0].Applied != -3 {
		t.Errorf("debuffs not restored: %+v", got.Debuffs)
	}
	if got.Buildings[building.LumberMill] != 2 || got.MaxWood != 300 {
		t.Errorf("village not restored")
	}
}

func TestFreshCharacterRoundTrip(t *testing.T) {
	raw, err := json.Marshal(New("Ada", Options{}).Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, defaulted := Restore(raw, Options{})
	if len(defaulted) != 0 {
		t.Errorf("defaulted fields on a fresh character: %v", defaulted)
	}
	if got.Research != nil {
		t.Errorf("research = %+v, want none", got.Research)
	}
}

func TestRestoreMalformedResearch(t *testing.T) {
	raw, err := json.Marshal(New("Ada", Options{}).Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	fields["ongoing_research"] = json.RawMessage(`"soon"`)
	raw, _ = json.Marshal(fields)

	got, defaulted := Restore(raw, Options{})
	if !reflect.DeepEqual(defaulted, []string{"ongoing_research"}) {
		t.Errorf("defaulted = %v, want [ongoing_research]", defaulted)
	}
	if got.Research != nil {
		t.Errorf("malformed research restored: %+v", got.Research)
	}
}

func TestRestoreDefaultsPerField(t *testing.T) {
	raw := []byte(`{
		"level": "three",
		"strength": 15,
		"vitality": -4,
		"resources": {"gold": 10, "mithril": 3},
		"inventory": 12,
		"equipment": {"weapon": {"id":"x","name":"Chest","type":"equipable","slot":"chest"}},
		"current_health": 5000,
		"ongoing_research": {"name": "Alchemy Of Doom"},
		"current_monsters": [{"kind": "dragon", "health": 10}]
	}`)
	c, defaulted := Restore(raw, Options{})

	if c.Level != 1 {
		t.Errorf("level = %d, want default 1", c.Level)
	}
	if c.Strength != 15 {
		t.Errorf("strength = %d, want 15", c.Strength)
	}
	if c.Vitality != StartingAttribute {
		t.Errorf("vitality = %d, want default", c.Vitality)
	}
	if c.Resources[resource.Gold] != 10 || len(c.Resources) != 1 {
		t.Errorf("resources = %v", c.Resources)
	}
	if len(c.Inventory) != 0 || c.Equipment[item.SlotWeapon] != nil {
		t.Errorf("malformed items restored")
	}
	if c.CurrentHealth != c.MaxHealth() {
		t.Errorf("health %d not clamped to %d", c.CurrentHealth, c.MaxHealth())
	}
	if c.Research != nil || len(c.Monsters) != 0 {
		t.Errorf("unknown research or monster restored")
	}

	found := map[string]bool{}
	for _, f := range defaulted {
		found[f] = true
	}
	for _, want := range []string{"level", "inventory", "depth"} {
		if !found[want] {
			t.Errorf("%q not reported as defaulted", want)
		}
	}
}

func TestRestoreGarbage(t *testing.T) {
	c, defaulted := Restore([]byte("not json"), Options{})
	if c == nil || c.Level != 1 || c.CurrentHealth != 100 {
		t.Fatalf("garbage snapshot should yield a fresh character")
	}
	if len(defaulted) != 1 || defaulted[0] != "*" {
		t.Errorf("defaulted = %v", defaulted)
	}
}
