package character

import (
	"encoding/json"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/building"
	"github.com/PatrikSjolin/hollowheart/internal/domain/combatant"
	"github.com/PatrikSjolin/hollowheart/internal/domain/depth"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/domain/research"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
)

// ResearchData is the persisted form of an ongoing research.
type ResearchData struct {
	Name   string    `json:"name"`
	EndsAt time.Time `json:"ends_at"`
}

// TimerData is the persisted form of the accumulators.
type TimerData struct {
	Regen        float64            `json:"regen"`
	Treasure     float64            `json:"treasure"`
	Hazard       float64            `json:"hazard"`
	Attack       float64            `json:"attack"`
	Poison       float64            `json:"poison"`
	Village      float64            `json:"village"`
	Generation   map[string]float64 `json:"generation,omitempty"`
	TimeSurvived float64            `json:"time_survived"`
}

// Snapshot is the plain, self-describing form of a character.
type Snapshot struct {
	Name              string                  `json:"name"`
	Level             int                     `json:"level"`
	Experience        int                     `json:"experience"`
	UnallocatedPoints int                     `json:"unallocated_points"`
	Strength          int                     `json:"strength"`
	Dexterity         int                     `json:"dexterity"`
	Vitality          int                     `json:"vitality"`
	Intelligence      int                     `json:"intelligence"`
	CurrentHealth     int                     `json:"current_health"`
	LifeRegen         int                     `json:"life_regen"`
	RegenRate         float64                 `json:"regen_rate"`
	ExpBoost          float64                 `json:"exp_boost"`
	Resources         resource.Amounts        `json:"resources"`
	MaxWood           int                     `json:"max_wood"`
	MaxStone          int                     `json:"max_stone"`
	Buildings         building.Owned          `json:"buildings"`
	Depth             int                     `json:"depth"`
	LastDepthVisited  int                     `json:"last_depth_visited"`
	RecordDepth       int                     `json:"record_depth"`
	NextBossDepth     int                     `json:"next_boss_depth"`
	LastSpecialDepth  int                     `json:"last_special_depth"`
	Exploring         bool                    `json:"is_exploring"`
	Inventory         []item.Item             `json:"inventory"`
	Equipment         map[item.Slot]item.Item `json:"equipment"`
	Buffs             []Effect                `json:"buffs"`
	Debuffs           []Effect                `json:"debuffs"`
	Research          *ResearchData           `json:"ongoing_research"`
	CompletedResearch []string                `json:"completed_research"`
	DepthConfigs      map[int]depth.Config    `json:"depth_configs"`
	ClearedEvents     []int                   `json:"cleared_events"`
	Monsters          []combatant.Data        `json:"current_monsters"`
	Timers            TimerData               `json:"timers"`
	Village           VillageHazard           `json:"village_hazard"`
	Deaths            int                     `json:"number_of_deaths"`
}

// Snapshot captures every persisted field. The result shares no memory with c.
func (c *Character) Snapshot() Snapshot {
	s := Snapshot{
		Name:              c.Name,
		Level:             c.Level,
		Experience:        c.Experience,
		UnallocatedPoints: c.UnallocatedPoints,
		Strength:          c.Strength,
		Dexterity:         c.Dexterity,
		Vitality:          c.Vitality,
		Intelligence:      c.Intelligence,
		CurrentHealth:     c.CurrentHealth,
		LifeRegen:         c.LifeRegen,
		RegenRate:         c.RegenRate,
		ExpBoost:          c.ExpBoost,
		Resources:         c.Resources.Clone(),
		MaxWood:           c.MaxWood,
		MaxStone:          c.MaxStone,
		Buildings:         building.Owned{},
		Depth:             c.Depth,
		LastDepthVisited:  c.LastDepthVisited,
		RecordDepth:       c.RecordDepth,
		NextBossDepth:     c.NextBossDepth,
		LastSpecialDepth:  c.LastSpecialDepth,
		Exploring:         c.Exploring,
		Inventory:         append([]item.Item{}, c.Inventory...),
		Equipment:         make(map[item.Slot]item.Item),
		Buffs:             append([]Effect{}, c.Buffs...),
		Debuffs:           append([]Effect{}, c.Debuffs...),
		CompletedResearch: append([]string{}, c.CompletedResearch...),
		DepthConfigs:      make(map[int]depth.Config, len(c.DepthConfigs)),
		ClearedEvents:     []int{},
		Monsters:          make([]combatant.Data, 0, len(c.Monsters)),
		Timers: TimerData{
			Regen:        c.Timers.Regen,
			Treasure:     c.Timers.Treasure,
			Hazard:       c.Timers.Hazard,
			Attack:       c.Timers.Attack,
			Poison:       c.Timers.Poison,
			Village:      c.Timers.VillageHazard,
			Generation:   make(map[string]float64),
			TimeSurvived: c.TimeSurvived,
		},
		Village: c.Village,
		Deaths:  c.Deaths,
	}
	for k, n := range c.Buildings {
		s.Buildings[k] = n
	}
	for slot, it := range c.Equipment {
		if it != nil {
			s.Equipment[slot] = *it
		}
	}
	if c.Research != nil {
		s.Research = &ResearchData{Name: c.Research.Name, EndsAt: c.Research.EndsAt}
	}
	for d, cfg := range c.DepthConfigs {
		s.DepthConfigs[d] = cfg.Clone()
	}
	for d, cleared := range c.ClearedEvents {
		if cleared {
			s.ClearedEvents = append(s.ClearedEvents, d)
		}
	}
	for _, m := range c.Monsters {
		s.Monsters = append(s.Monsters, m.Data())
	}
	for k, v := range c.Timers.Generation {
		s.Timers.Generation[k.String()] = v
	}
	return s
}

// MarshalJSON encodes the character as its snapshot.
func (c *Character) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

type restorer struct {
	fields    map[string]json.RawMessage
	defaulted []string
}

// field decodes one snapshot field. Missing, null or malformed fields
// report false and leave the default in place.
func field[T any](r *restorer, name string) (T, bool) {
	var v T
	raw, ok := r.fields[name]
	if !ok || string(raw) == "null" {
		r.defaulted = append(r.defaulted, name)
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		r.defaulted = append(r.defaulted, name)
		return v, false
	}
	return v, true
}

// optional decodes a nullable field. An explicit null is the valid value
// "none" and is not reported; missing or malformed fields are.
func optional[T any](r *restorer, name string) (*T, bool) {
	if raw, ok := r.fields[name]; ok && string(raw) == "null" {
		return nil, true
	}
	v, ok := field[T](r, name)
	if !ok {
		return nil, false
	}
	return &v, true
}

func atLeast(r *restorer, name string, floor int, dst *int) {
	if v, ok := field[int](r, name); ok && v >= floor {
		*dst = v
	}
}

// Restore rebuilds a character from snapshot JSON. Every field falls back to
// its fresh-character default on its own, so a partial or damaged snapshot
// still loads. It returns the names of the fields that were defaulted.
func Restore(raw []byte, opts Options) (*Character, []string) {
	c := New("", opts)
	r := &restorer{}
	if err := json.Unmarshal(raw, &r.fields); err != nil {
		return c, []string{"*"}
	}

	if v, ok := field[string](r, "name"); ok && v != "" {
		c.Name = v
	}
	atLeast(r, "level", 1, &c.Level)
	atLeast(r, "experience", 0, &c.Experience)
	atLeast(r, "unallocated_points", 0, &c.UnallocatedPoints)
	atLeast(r, "strength", 1, &c.Strength)
	atLeast(r, "dexterity", 1, &c.Dexterity)
	atLeast(r, "vitality", 1, &c.Vitality)
	atLeast(r, "intelligence", 1, &c.Intelligence)
	atLeast(r, "life_regen", 0, &c.LifeRegen)
	if v, ok := field[float64](r, "regen_rate"); ok && v > 0 {
		c.RegenRate = v
	}
	if v, ok := field[float64](r, "exp_boost"); ok && v > 0 {
		c.ExpBoost = v
	}
	if v, ok := field[resource.Amounts](r, "resources"); ok {
		c.Resources = v
	}
	atLeast(r, "max_wood", 0, &c.MaxWood)
	atLeast(r, "max_stone", 0, &c.MaxStone)
	if v, ok := field[building.Owned](r, "buildings"); ok {
		c.Buildings = v
	}

	atLeast(r, "depth", 0, &c.Depth)
	atLeast(r, "last_depth_visited", 0, &c.LastDepthVisited)
	atLeast(r, "record_depth", 0, &c.RecordDepth)
	atLeast(r, "next_boss_depth", 1, &c.NextBossDepth)
	atLeast(r, "last_special_depth", 0, &c.LastSpecialDepth)
	// Exploring and depth > 0 always go together; the depth wins.
	field[bool](r, "is_exploring")
	c.Exploring = c.Depth > 0

	if v, ok := field[map[item.Slot]item.Item](r, "equipment"); ok {
		for slot, it := range v {
			if slot.Valid() && it.IsEquipment() && it.Slot == slot {
				c.Equipment[slot] = &it
			}
		}
	}
	if v, ok := field[[]item.Item](r, "inventory"); ok {
		equipped := make(map[string]bool)
		for _, it := range c.Equipment {
			if it != nil && it.ID != "" {
				equipped[it.ID] = true
			}
		}
		for _, it := range v {
			if it.Name == "" || equipped[it.ID] {
				continue
			}
			if it.Stacks && it.Quantity < 1 {
				continue
			}
			c.Inventory = append(c.Inventory, it)
		}
	}

	if v, ok := field[[]Effect](r, "buffs"); ok {
		c.Buffs = validEffects(v)
	}
	if v, ok := field[[]Effect](r, "debuffs"); ok {
		c.Debuffs = validEffects(v)
	}

	if v, ok := optional[ResearchData](r, "ongoing_research"); ok && v != nil {
		if _, known := research.Lookup(v.Name); known {
			c.Research = &OngoingResearch{Name: v.Name, EndsAt: v.EndsAt}
		}
	}
	if v, ok := field[[]string](r, "completed_research"); ok {
		c.CompletedResearch = v
	}

	if v, ok := field[map[int]depth.Config](r, "depth_configs"); ok {
		for d, cfg := range v {
			if d < 1 {
				continue
			}
			cfg.Depth = d
			c.DepthConfigs[d] = cfg
		}
	}
	if v, ok := field[[]int](r, "cleared_events"); ok {
		for _, d := range v {
			c.ClearedEvents[d] = true
		}
	}
	if v, ok := field[[]combatant.Data](r, "current_monsters"); ok {
		c.Monsters = combatant.Rehydrate(v)
	}

	if v, ok := field[TimerData](r, "timers"); ok {
		c.Timers.Regen = nonNegative(v.Regen)
		c.Timers.Treasure = nonNegative(v.Treasure)
		c.Timers.Hazard = nonNegative(v.Hazard)
		c.Timers.Attack = nonNegative(v.Attack)
		c.Timers.Poison = nonNegative(v.Poison)
		c.Timers.VillageHazard = nonNegative(v.Village)
		c.TimeSurvived = nonNegative(v.TimeSurvived)
		for name, t := range v.Generation {
			if k, err := building.Parse(name); err == nil {
				c.Timers.Generation[k] = nonNegative(t)
			}
		}
	}
	if v, ok := field[VillageHazard](r, "village_hazard"); ok {
		c.Village = v
	}
	atLeast(r, "number_of_deaths", 0, &c.Deaths)

	// Health depends on vitality and the restored debuffs, so it goes last.
	c.CurrentHealth = c.MaxHealth()
	if v, ok := field[int](r, "current_health"); ok {
		c.setHealth(v)
	}
	return c, r.defaulted
}

func validEffects(in []Effect) []Effect {
	out := make([]Effect, 0, len(in))
	seen := make(map[string]bool)
	for _, e := range in {
		if e.Name == "" || seen[e.Name] || e.Remaining <= 0 || e.Target == 0 {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
