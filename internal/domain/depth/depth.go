// Package depth generates the per-depth parameters that govern spawning,
// hazards and resources. A Config is created once, on first visit, and
// never regenerated for that depth during a run.
package depth

import (
	"math"

	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// Generator tuning.
const (
	MaxResourcesPerDepth = 2
	SpecialEventWindow   = 5
	SpecialEventMinDepth = 3
	SpecialEventChance   = 0.08
	MaxSpawnProbability  = 0.2
	MaxPoisonChance      = 0.5
	MaxMonsterTypes      = 5
)

// ResourceEntry is one row of a depth's resource table.
type ResourceEntry struct {
	Kind        resource.Kind `json:"kind"`
	Probability float64       `json:"probability"`
}

// Config is the cached parameter set for one depth.
type Config struct {
	Depth            int             `json:"depth"`
	SpawnEnabled     bool            `json:"spawn_enabled"`
	SpawnProbability float64         `json:"spawn_probability"` // per second
	MonsterTypes     int             `json:"monster_types"`
	MonsterStrength  float64         `json:"monster_strength"`
	HazardsEnabled   bool            `json:"hazards_enabled"`
	HazardSeverity   float64         `json:"hazard_severity"`
	Poisonous        bool            `json:"poisonous"`
	Resources        []ResourceEntry `json:"resources"`
	SpecialEvent     bool            `json:"special_event"`
	Boss             bool            `json:"boss"`
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	out := c
	out.Resources = append([]ResourceEntry(nil), c.Resources...)
	return out
}

// Params carries the character state the generator depends on.
type Params struct {
	NextBossDepth    int
	LastSpecialDepth int
}

type candidate struct {
	kind     resource.Kind
	minDepth int
	lo, hi   float64
}

var candidates = []candidate{
	{resource.Iron, 1, 0.4, 0.8},
	{resource.Gold, 3, 0.2, 0.5},
	{resource.Emerald, 8, 0.1, 0.3},
	{resource.Diamonds, 10, 0.05, 0.2},
}

// Generate builds the configuration for depth d. Draws happen in a fixed
// order so a seeded source always yields the same config.
func Generate(d int, p Params, rng random.Source) Config {
	fd := float64(d)
	cfg := Config{Depth: d}

	cfg.SpawnEnabled = random.Chance(rng, math.Min(0.5+0.05*fd, 0.95))
	cfg.SpawnProbability = math.Min(0.02+0.005*fd, MaxSpawnProbability)
	cfg.MonsterTypes = min(1+d/5, MaxMonsterTypes)
	cfg.MonsterStrength = 1 + 0.1*fd*random.Between(rng, 0.8, 1.2)

	cfg.HazardsEnabled = d >= 2 || random.Chance(rng, 0.5)
	cfg.HazardSeverity = random.Between(rng, 0.5, 1.0+0.05*fd)
	cfg.Poisonous = random.Chance(rng, math.Min(0.02*fd, MaxPoisonChance))

	cfg.Resources = rollResources(d, rng)

	cfg.Boss = d == p.NextBossDepth
	if !cfg.Boss && d >= SpecialEventMinDepth && d-p.LastSpecialDepth > SpecialEventWindow {
		cfg.SpecialEvent = random.Chance(rng, SpecialEventChance)
	}
	return cfg
}

func rollResources(d int, rng random.Source) []ResourceEntry {
	var unlocked []candidate
	for _, c := range candidates {
		if d >= c.minDepth {
			unlocked = append(unlocked, c)
		}
	}
	out := make([]ResourceEntry, 0, MaxResourcesPerDepth)
	for len(out) < MaxResourcesPerDepth && len(unlocked) > 0 {
		i := rng.Intn(len(unlocked))
		c := unlocked[i]
		unlocked = append(unlocked[:i], unlocked[i+1:]...)
		out = append(out, ResourceEntry{Kind: c.kind, Probability: random.Between(rng, c.lo, c.hi)})
	}
	return out
}
