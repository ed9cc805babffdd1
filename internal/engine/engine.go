package engine

import (
	"fmt"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

// Deps are the collaborators the engine is wired with. Nil fields fall back
// to inert defaults, except RNG which falls back to a time-seeded source.
type Deps struct {
	RNG         random.Source
	Loot        LootGenerator
	Clock       Clock
	Persister   Persister
	Leaderboard Leaderboard
	Logger      *logger.Logger
}

// Engine is the simulation controller. It owns the depth state machine and
// runs every mechanic once per Update.
type Engine struct {
	cfg    Config
	char   *character.Character
	rng    random.Source
	clock  Clock
	saver  Persister
	board  Leaderboard
	logger *logger.Logger

	// Sub-systems
	depths   *DepthSystem
	combat   *CombatSystem
	treasure *TreasureSystem
	hazards  *HazardSystem
	special  *SpecialEventSystem
	village  *VillageSystem
}

// NewEngine wires the controller around an existing character.
func NewEngine(c *character.Character, cfg Config, deps Deps) *Engine {
	if deps.RNG == nil {
		deps.RNG = random.New(time.Now().UnixNano())
	}
	if deps.Loot == nil {
		deps.Loot = item.NewGenerator(deps.RNG)
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Persister == nil {
		deps.Persister = noPersister{}
	}
	if deps.Leaderboard == nil {
		deps.Leaderboard = noLeaderboard{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewLogger()
	}

	return &Engine{
		cfg:    cfg,
		char:   c,
		rng:    deps.RNG,
		clock:  deps.Clock,
		saver:  deps.Persister,
		board:  deps.Leaderboard,
		logger: deps.Logger,

		depths:   NewDepthSystem(deps.RNG, deps.Logger),
		combat:   NewCombatSystem(cfg, deps.RNG, deps.Loot, deps.Logger),
		treasure: NewTreasureSystem(cfg, deps.RNG, deps.Loot),
		hazards:  NewHazardSystem(cfg, deps.RNG),
		special:  NewSpecialEventSystem(cfg, deps.RNG, deps.Loot, deps.Logger),
		village:  NewVillageSystem(cfg, deps.RNG, deps.Logger),
	}
}

// Character exposes the simulated character.
func (e *Engine) Character() *character.Character {
	return e.char
}

// Config returns the balance the engine runs with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Update advances the simulation by elapsed milliseconds. It is the single
// per-tick entry point and always runs to completion.
func (e *Engine) Update(elapsed float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	c := e.char

	c.RegenerateHealth(elapsed)
	c.GenerateResources(elapsed)
	c.ProcessEffects(elapsed)
	c.AdvanceLeveling(elapsed)
	e.checkResearch()

	if e.village.OnTick(c, elapsed) {
		e.Save()
	}

	if !c.Exploring {
		return
	}
	if !c.Alive() {
		e.handleDeath()
		return
	}
	c.TimeSurvived += elapsed

	cfg := e.depths.ConfigFor(c, c.Depth)
	if c.SpecialEventPending() {
		if died := e.special.OnTick(c, elapsed); died {
			e.handleDeath()
		}
		return
	}

	if died := e.combat.OnTick(c, cfg, elapsed); died {
		e.handleDeath()
		return
	}
	e.treasure.OnTick(c, cfg, elapsed)
	if died := e.hazards.OnTick(c, cfg, elapsed); died {
		e.handleDeath()
	}
}

func (e *Engine) checkResearch() {
	c := e.char
	if c.Research == nil || c.ResearchProgress(e.clock.Now()) > 0 {
		return
	}
	name := c.Research.Name
	if c.CompleteResearch() {
		e.logger.Event("RESEARCH_COMPLETED", c.Name, name)
		e.Save()
	}
}

// handleDeath applies the death penalty and forces the character back to
// the surface.
func (e *Engine) handleDeath() {
	c := e.char
	depthAtDeath := c.Depth
	c.Die()
	e.Ascend()
	e.logger.Event("DEATH", c.Name, fmt.Sprintf("depth %d, deaths %d", depthAtDeath, c.Deaths))
	e.Save()
}

// Save hands the current snapshot to the persister.
func (e *Engine) Save() {
	e.saver.Save(e.char.Snapshot())
}
